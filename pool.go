package drawpool

import "sync"

// PoolType identifies a logical rendering layer. Pools draw in PoolType
// order, so later types layer on top of earlier ones.
type PoolType uint8

const (
	// PoolMap is the framebuffer-backed base map layer (blending disabled
	// on its target).
	PoolMap PoolType = iota

	// PoolCreatureInfo holds per-creature overlays (names, health bars).
	PoolCreatureInfo

	// PoolLight is the framebuffer-backed light accumulation layer
	// (composited with CompositionLight).
	PoolLight

	// PoolText holds floating text.
	PoolText

	// PoolForeground holds the UI overlay drawn above everything else.
	PoolForeground

	poolTypeCount
)

// String returns the pool type's layer name.
func (t PoolType) String() string {
	switch t {
	case PoolMap:
		return "map"
	case PoolCreatureInfo:
		return "creatureinfo"
	case PoolLight:
		return "light"
	case PoolText:
		return "text"
	case PoolForeground:
		return "foreground"
	}
	return "invalid"
}

// Pool is an ordered sequence of DrawObjects for one logical rendering
// layer. A plain pool's object list is authoritative only for the current
// frame and is cleared after each draw phase; a framed pool (framed != nil)
// additionally caches its output in an offscreen target.
type Pool struct {
	objects []*DrawObject
	action  func()
	pending sync.WaitGroup

	// batchBreak forces the next add to start a new object instead of
	// coalescing with the previous one (set by Engine.Flush).
	batchBreak bool

	framed *FramedState
}

// Len returns the number of batched objects currently in the pool.
func (p *Pool) Len() int {
	return len(p.objects)
}

// IsFramed reports whether the pool caches its output in an offscreen
// target.
func (p *Pool) IsFramed() bool {
	return p.framed != nil
}

// Framed returns the framed payload, or nil for a plain pool.
func (p *Pool) Framed() *FramedState {
	return p.framed
}

// FramedState is the framebuffer-backed payload of a framed pool: the
// offscreen target, the compositing rectangles, the running content hash
// used for change detection, and the before/after draw hooks.
type FramedState struct {
	target FrameBuffer

	dest, src Rect

	// currentHash accumulates this frame's draw calls; committedHash is
	// the value committed at the end of the previous draw pass. The target
	// pixels are valid exactly while the two match.
	currentHash   uint64
	committedHash uint64

	enabled bool

	beforeDraw func()
	afterDraw  func()
}

func newFramedState(target FrameBuffer) *FramedState {
	return &FramedState{
		target:        target,
		currentHash:   hashSeed,
		committedHash: hashSeed,
		enabled:       true,
	}
}

// resetStatus reseeds the running hash at the start of a build pass.
func (f *FramedState) resetStatus() {
	f.currentHash = hashSeed
}

// updateHash folds one draw call (state identity plus method cache key)
// into the running content hash, order-sensitively.
func (f *FramedState) updateHash(state RenderState, m DrawMethod) {
	f.currentHash = hashCombine(hashCombine(f.currentHash, state.hash()), m.cacheKey())
}

// hasModification reports whether this frame's content differs from the
// committed baseline.
func (f *FramedState) hasModification() bool {
	return f.currentHash != f.committedHash
}

// updateStatus commits the running hash as the new baseline and reports
// whether it differed (i.e. whether the target must be re-rendered).
func (f *FramedState) updateStatus() bool {
	modified := f.hasModification()
	f.committedHash = f.currentHash
	return modified
}

// Target returns the pool's offscreen render target.
func (f *FramedState) Target() FrameBuffer {
	return f.target
}

// SetEnabled toggles the pool for the current frame. A disabled framed
// pool is skipped entirely during Draw, including compositing.
func (f *FramedState) SetEnabled(enabled bool) {
	f.enabled = enabled
}

// Enabled reports whether the pool participates in Draw.
func (f *FramedState) Enabled() bool {
	return f.enabled
}

// SetDest sets the frame rectangle the target is composited onto.
func (f *FramedState) SetDest(dest Rect) {
	f.dest = dest
}

// SetSrc sets the target region read during compositing.
func (f *FramedState) SetSrc(src Rect) {
	f.src = src
}

// OnBeforeDraw installs a hook invoked just before the target is
// composited into the frame.
func (f *FramedState) OnBeforeDraw(fn func()) {
	f.beforeDraw = fn
}

// OnAfterDraw installs a hook invoked just after the target is composited
// into the frame.
func (f *FramedState) OnAfterDraw(fn func()) {
	f.afterDraw = fn
}

// Resize reallocates the offscreen target and invalidates the cached
// content.
func (f *FramedState) Resize(size Point) {
	f.target.Resize(size)
	// Force a re-render: the old pixels are gone.
	f.committedHash = 0
}

// SetSmooth toggles filtered scaling when the target is composited.
func (f *FramedState) SetSmooth(enabled bool) {
	f.target.SetSmooth(enabled)
}

// SetCompositionMode selects how the target is combined with the frame.
func (f *FramedState) SetCompositionMode(mode CompositionMode) {
	f.target.SetCompositionMode(mode)
}
