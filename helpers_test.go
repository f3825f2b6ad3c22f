package drawpool

// fakeTexture is a minimal Texture for batching tests.
type fakeTexture struct {
	id          uint64
	size        Point
	opaque      bool
	superimpose bool
}

func (t *fakeTexture) ID() uint64           { return t.id }
func (t *fakeTexture) Size() Point          { return t.size }
func (t *fakeTexture) IsEmpty() bool        { return t.size.X <= 0 || t.size.Y <= 0 }
func (t *fakeTexture) IsOpaque() bool       { return t.opaque }
func (t *fakeTexture) CanSuperimpose() bool { return t.superimpose }

func newFakeTexture(id uint64) *fakeTexture {
	return &fakeTexture{id: id, size: Pt(32, 32)}
}

// submission records one DrawCoords call as seen by the device.
type submission struct {
	state    RenderState
	topology Topology
	vertices int
	hash     uint64
}

// fakePainter records every state load and batch submission.
type fakePainter struct {
	state       RenderState
	saved       []RenderState
	submissions []submission
	stateLoads  int
}

func (p *fakePainter) ExecuteState(s RenderState) {
	p.state = s
	p.stateLoads++
}

func (p *fakePainter) DrawCoords(buf *CoordsBuffer, topology Topology) {
	p.submissions = append(p.submissions, submission{
		state:    p.state,
		topology: topology,
		vertices: buf.VertexCount(),
		hash:     buf.VertexHash(),
	})
}

func (p *fakePainter) SaveAndResetState() {
	p.saved = append(p.saved, p.state)
	p.state = defaultRenderState()
}

func (p *fakePainter) RestoreSavedState() {
	if n := len(p.saved); n > 0 {
		p.state = p.saved[n-1]
		p.saved = p.saved[:n-1]
	}
}

// fakeFrameBuffer records target lifecycle calls.
type fakeFrameBuffer struct {
	drawable bool

	binds    int
	releases int
	draws    int
	lastDest Rect
	lastSrc  Rect
	resizes  []Point

	blendDisabled bool
	composition   CompositionMode
	smooth        bool
}

func (f *fakeFrameBuffer) IsDrawable() bool { return f.drawable }
func (f *fakeFrameBuffer) Bind()            { f.binds++ }
func (f *fakeFrameBuffer) Release()         { f.releases++ }

func (f *fakeFrameBuffer) Draw(dest, src Rect) {
	f.draws++
	f.lastDest = dest
	f.lastSrc = src
}

func (f *fakeFrameBuffer) Resize(size Point) {
	f.resizes = append(f.resizes, size)
}

func (f *fakeFrameBuffer) DisableBlend()                        { f.blendDisabled = true }
func (f *fakeFrameBuffer) SetCompositionMode(m CompositionMode) { f.composition = m }
func (f *fakeFrameBuffer) SetSmooth(enabled bool)               { f.smooth = enabled }

// newTestEngine creates a single-threaded engine with a recording painter
// and a framebuffer allocator that tracks every allocated target.
func newTestEngine(opts ...Option) (*Engine, *fakePainter, *[]*fakeFrameBuffer) {
	painter := &fakePainter{}
	var buffers []*fakeFrameBuffer
	alloc := func() FrameBuffer {
		fb := &fakeFrameBuffer{drawable: true}
		buffers = append(buffers, fb)
		return fb
	}
	opts = append([]Option{WithFrameBufferAllocator(alloc)}, opts...)
	return NewEngine(painter, opts...), painter, &buffers
}
