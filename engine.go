package drawpool

import (
	"fmt"
	"log/slog"
)

// Engine owns every pool by logical type and runs the two-phase draw
// cycle: build actions populate pools (optionally on worker goroutines),
// Draw joins the workers and replays everything against the device.
//
// Geometry submission methods operate on the pool bound to the calling
// context (set by a linked build action or by Use). With multithreading
// enabled, calls made outside any build context are silently dropped
// instead of racing. Global state setters (SetColor, SetOpacity, ...) are
// not synchronized; with multithreading enabled, mutate state only from
// inside the build action that consumes it.
type Engine struct {
	painter          Painter
	allocFrameBuffer FrameBufferAllocator
	multiThread      bool

	pools   [poolTypeCount]*Pool
	binding poolBinding

	// state is the current global render state copied into every draw
	// request (with the texture substituted).
	state RenderState

	// scratch collects transient geometry in the draw phase, cleared
	// after every submission.
	scratch CoordsBuffer
}

// NewEngine creates an engine that submits to the given painter.
func NewEngine(painter Painter, opts ...Option) *Engine {
	cfg := defaultEngineOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := modeSingleThread
	if cfg.multiThread {
		mode = modeMultiThread
	}

	e := &Engine{
		painter:          painter,
		allocFrameBuffer: cfg.allocFrameBuffer,
		multiThread:      cfg.multiThread,
		binding:          newPoolBinding(mode),
		state:            defaultRenderState(),
	}
	e.scratch.Clear()
	return e
}

// MultiThreadEnabled reports whether build actions run on worker
// goroutines. Fixed at construction; not safely toggled mid-frame.
func (e *Engine) MultiThreadEnabled() bool {
	return e.multiThread
}

// CreatePool registers a plain (transient) pool for the given layer.
func (e *Engine) CreatePool(t PoolType) *Pool {
	e.checkType(t)
	p := &Pool{}
	e.pools[t] = p
	return p
}

// CreateFramedPool registers a framebuffer-backed pool for the given
// layer. The map layer's target has blending disabled; the light layer's
// target composites with CompositionLight.
func (e *Engine) CreateFramedPool(t PoolType) *Pool {
	e.checkType(t)
	if e.allocFrameBuffer == nil {
		panic("drawpool: CreateFramedPool requires WithFrameBufferAllocator")
	}

	target := e.allocFrameBuffer()
	switch t {
	case PoolMap:
		target.DisableBlend()
	case PoolLight:
		target.SetCompositionMode(CompositionLight)
	}

	p := &Pool{framed: newFramedState(target)}
	e.pools[t] = p

	Logger().Debug("drawpool: framed pool created", slog.String("type", t.String()))
	return p
}

// Pool returns the registered pool for the given layer. It panics if the
// type is out of range or was never registered: dereferencing an unknown
// pool is a programming error, not a runtime condition.
func (e *Engine) Pool(t PoolType) *Pool {
	e.checkType(t)
	p := e.pools[t]
	if p == nil {
		panic(fmt.Sprintf("drawpool: pool %q not registered", t))
	}
	return p
}

func (e *Engine) checkType(t PoolType) {
	if t >= poolTypeCount {
		panic(fmt.Sprintf("drawpool: invalid pool type %d", t))
	}
}

// Link installs a build action on the pool. When the action runs (via
// Build) it binds the current-pool context, resets the pool's per-frame
// state, invokes build to populate geometry, then executes every produced
// object once so worker builds materialize their cached coordinate
// buffers before the context is cleared. Device submission never happens
// here; it is deferred to Draw.
func (e *Engine) Link(t PoolType, build func()) {
	p := e.Pool(t)
	p.action = func() {
		e.binding.bind(p)
		defer e.binding.clear()

		if fs := p.framed; fs != nil {
			fs.resetStatus()
		}
		p.objects = p.objects[:0]
		p.batchBreak = false

		build()

		// Cache coordinate buffers while still inside the build context.
		for _, obj := range p.objects {
			e.drawObject(obj)
		}
	}
}

// Build runs the pool's linked build action: on its own goroutine when
// multithreading is enabled (joined by Draw), synchronously otherwise.
// A pool without a linked action is left untouched.
func (e *Engine) Build(t PoolType) {
	p := e.Pool(t)
	if p.action == nil {
		Logger().Debug("drawpool: build requested for unlinked pool", slog.String("type", t.String()))
		return
	}
	if e.multiThread {
		p.pending.Add(1)
		go func() {
			defer p.pending.Done()
			p.action()
		}()
		return
	}
	p.action()
}

// Use binds the pool to the calling context for immediate geometry
// submission outside a linked build action, starting a fresh frame of
// content for it. For framed pools it also records the compositing
// rectangles used by Draw.
func (e *Engine) Use(t PoolType, dest, src Rect) {
	p := e.Pool(t)
	e.binding.bind(p)
	p.objects = p.objects[:0]
	p.batchBreak = false
	if fs := p.framed; fs != nil {
		fs.resetStatus()
		fs.dest = dest
		fs.src = src
	}
}

// currentPool returns the pool bound to the calling context, or nil. A nil
// result makes every geometry submission a silent no-op, which covers both
// the multithreaded outside-build guard and plain unbound calls.
func (e *Engine) currentPool() *Pool {
	return e.binding.current()
}

// inBuildContext reports whether the calling context currently has a pool
// bound, i.e. geometry is being recorded rather than drawn.
func (e *Engine) inBuildContext() bool {
	return e.binding.current() != nil
}

// Draw runs the frame-end pass: join all outstanding builds, then replay
// every pool in layer order. Framed pools re-render into their offscreen
// target only when their content hash changed, then composite the target
// into the frame; plain pools execute directly and are cleared. Must be
// called exactly once per frame, from the goroutine that owns the device.
func (e *Engine) Draw() {
	if e.multiThread {
		for _, p := range e.pools {
			if p != nil {
				p.pending.Wait()
			}
		}
	}

	// The drawing goroutine must not look like a build context, or object
	// execution would materialize buffers instead of submitting them.
	e.binding.clear()

	for _, p := range e.pools {
		if p == nil {
			continue
		}
		fs := p.framed
		if fs == nil {
			for _, obj := range p.objects {
				e.drawObject(obj)
			}
			p.objects = p.objects[:0]
			continue
		}

		if !fs.enabled || fs.target == nil || !fs.target.IsDrawable() {
			continue
		}

		e.painter.SaveAndResetState()
		if fs.updateStatus() {
			fs.target.Bind()
			for _, obj := range p.objects {
				e.drawObject(obj)
			}
			fs.target.Release()
		}
		if fs.beforeDraw != nil {
			fs.beforeDraw()
		}
		fs.target.Draw(fs.dest, fs.src)
		if fs.afterDraw != nil {
			fs.afterDraw()
		}
		e.painter.RestoreSavedState()
	}
}

// drawObject executes one batched unit. Inside a build context it only
// materializes the object's cached coordinate buffer (deferred actions are
// skipped, never run early). On the drawing goroutine it activates the
// object's state and submits either the cached buffer or freshly built
// transient geometry. The two phases make execution idempotent: a cached
// buffer always short-circuits rebuilding.
func (e *Engine) drawObject(obj *DrawObject) {
	if e.inBuildContext() {
		if obj.Action == nil && obj.Buffer == nil && len(obj.Methods) > 0 {
			buf := NewCoordsBuffer()
			obj.addCoords(buf)
			obj.Buffer = buf
		}
		return
	}

	if obj.Action != nil {
		obj.Action()
		return
	}
	if len(obj.Methods) == 0 {
		return
	}

	e.painter.ExecuteState(obj.State)

	if obj.Buffer != nil {
		e.painter.DrawCoords(obj.Buffer, obj.Topology)
		return
	}

	obj.addCoords(&e.scratch)
	e.painter.DrawCoords(&e.scratch, obj.Topology)
	e.scratch.Clear()
}

// add batches one draw request into the current pool. It coalesces with
// the immediately preceding object when the render state matches, and
// removes a previous method that the new request provably overdraws:
// either an exact duplicate (same state, same source) or any method at the
// same destination when the new texture is opaque and the old one declares
// itself superimposable. Only the last object is inspected; same-state
// geometry can be reordered relative to itself without visual change, and
// adjacency keeps the scan O(1).
func (e *Engine) add(texture Texture, m DrawMethod, topology Topology) {
	p := e.currentPool()
	if p == nil {
		return
	}

	st := e.state
	st.Texture = texture

	if fs := p.framed; fs != nil {
		fs.updateHash(st, m)
	}

	if len(p.objects) > 0 && !p.batchBreak {
		prev := p.objects[len(p.objects)-1]
		sameState := prev.State == st

		if !m.Dest.IsEmpty() {
			for i, pm := range prev.Methods {
				if pm.Dest != m.Dest {
					continue
				}
				if (sameState && pm.Src == m.Src) ||
					(texture != nil && texture.IsOpaque() &&
						prev.State.Texture != nil && prev.State.Texture.CanSuperimpose()) {
					prev.Methods = append(prev.Methods[:i], prev.Methods[i+1:]...)
					break
				}
			}
		}

		if sameState {
			// Mixed shapes can no longer share a strip.
			prev.Topology = TopologyTriangles
			prev.Methods = append(prev.Methods, m)
			return
		}
	}

	p.batchBreak = false
	p.objects = append(p.objects, &DrawObject{
		State:    st,
		Methods:  []DrawMethod{m},
		Topology: topology,
	})
}

// addRepeated batches a repeated fill. Repeats must stay visually
// distinct, so adjacency-based coalescing is wrong here; instead the whole
// object list is searched for any batch with an identical state.
func (e *Engine) addRepeated(texture Texture, m DrawMethod, topology Topology) {
	p := e.currentPool()
	if p == nil {
		return
	}

	st := e.state
	st.Texture = texture

	if fs := p.framed; fs != nil {
		fs.updateHash(st, m)
	}

	for _, obj := range p.objects {
		if obj.Action == nil && obj.State == st {
			obj.Methods = append(obj.Methods, m)
			return
		}
	}

	p.objects = append(p.objects, &DrawObject{
		State:    st,
		Methods:  []DrawMethod{m},
		Topology: topology,
	})
}

// AddTexturedRect batches the whole texture mapped onto dest.
func (e *Engine) AddTexturedRect(dest Rect, texture Texture) {
	if texture == nil {
		return
	}
	e.AddTexturedRectSub(dest, texture, RectFromSize(texture.Size()))
}

// AddTexturedRectSub batches the src region of the texture mapped onto
// dest. Degenerate rectangles and empty textures are silently discarded.
func (e *Engine) AddTexturedRectSub(dest Rect, texture Texture, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() || texture == nil || texture.IsEmpty() {
		return
	}
	e.add(texture, DrawMethod{Kind: DrawTexturedRect, Dest: dest, Src: src}, TopologyTriangleStrip)
}

// AddUpsideDownTexturedRect batches the src region mapped onto dest
// vertically flipped.
func (e *Engine) AddUpsideDownTexturedRect(dest Rect, texture Texture, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() || texture == nil || texture.IsEmpty() {
		return
	}
	e.add(texture, DrawMethod{Kind: DrawUpsideDownTexturedRect, Dest: dest, Src: src}, TopologyTriangleStrip)
}

// AddRepeatedTexturedRect batches the whole texture tiled onto dest under
// repeated-fill batching rules.
func (e *Engine) AddRepeatedTexturedRect(dest Rect, texture Texture) {
	if texture == nil {
		return
	}
	e.AddRepeatedTexturedRectSub(dest, texture, RectFromSize(texture.Size()))
}

// AddRepeatedTexturedRectSub batches the src region tiled onto dest under
// repeated-fill batching rules.
func (e *Engine) AddRepeatedTexturedRectSub(dest Rect, texture Texture, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() || texture == nil || texture.IsEmpty() {
		return
	}
	e.addRepeated(texture, DrawMethod{Kind: DrawRepeatedTexturedRect, Dest: dest, Src: src}, TopologyTriangleStrip)
}

// AddFilledRect batches a rectangle filled with the current color.
func (e *Engine) AddFilledRect(dest Rect) {
	if dest.IsEmpty() {
		return
	}
	e.add(nil, DrawMethod{Kind: DrawFilledRect, Dest: dest}, TopologyTriangles)
}

// AddRepeatedFilledRect batches a filled rectangle under repeated-fill
// batching rules.
func (e *Engine) AddRepeatedFilledRect(dest Rect) {
	if dest.IsEmpty() {
		return
	}
	e.addRepeated(nil, DrawMethod{Kind: DrawRepeatedFilledRect, Dest: dest}, TopologyTriangles)
}

// AddFilledTriangle batches a triangle filled with the current color.
// Coincident vertices are silently discarded.
func (e *Engine) AddFilledTriangle(a, b, c Point) {
	if a == b || a == c || b == c {
		return
	}
	e.add(nil, DrawMethod{Kind: DrawFilledTriangle, A: a, B: b, C: c}, TopologyTriangles)
}

// AddBoundingRect batches a rectangular outline with the given inner line
// width in pixels. Zero width is silently discarded.
func (e *Engine) AddBoundingRect(dest Rect, innerLineWidth int) {
	if dest.IsEmpty() || innerLineWidth <= 0 {
		return
	}
	e.add(nil, DrawMethod{Kind: DrawBoundingRect, Dest: dest, IntValue: uint64(innerLineWidth)}, TopologyTriangles)
}

// AddFillCoords batches a caller-provided coordinate buffer as solid
// geometry under the current state. The buffer must not be mutated until
// after the next Draw.
func (e *Engine) AddFillCoords(buf *CoordsBuffer) {
	p := e.currentPool()
	if p == nil || buf == nil {
		return
	}

	m := DrawMethod{Kind: DrawFillCoords, IntValue: buf.VertexHash()}
	st := e.state
	st.Texture = nil

	if fs := p.framed; fs != nil {
		fs.updateHash(st, m)
	}

	p.objects = append(p.objects, &DrawObject{
		State:    st,
		Methods:  []DrawMethod{m},
		Topology: TopologyTriangles,
		Buffer:   buf,
	})
}

// AddTextureCoords batches a caller-provided coordinate buffer drawn with
// the given texture and topology. The buffer must not be mutated until
// after the next Draw.
func (e *Engine) AddTextureCoords(buf *CoordsBuffer, texture Texture, topology Topology) {
	p := e.currentPool()
	if p == nil || buf == nil {
		return
	}
	if texture != nil && texture.IsEmpty() {
		return
	}

	m := DrawMethod{Kind: DrawTextureCoords, IntValue: buf.VertexHash()}
	st := e.state
	st.Texture = texture

	if fs := p.framed; fs != nil {
		fs.updateHash(st, m)
	}

	p.objects = append(p.objects, &DrawObject{
		State:    st,
		Methods:  []DrawMethod{m},
		Topology: topology,
		Buffer:   buf,
	})
}

// AddAction batches an arbitrary deferred action. The action runs exactly
// once, during the draw phase, in order with the surrounding geometry.
// Actions are never invoked by worker builds.
func (e *Engine) AddAction(action func()) {
	p := e.currentPool()
	if p == nil || action == nil {
		return
	}
	p.objects = append(p.objects, &DrawObject{
		Topology: TopologyNone,
		Action:   action,
	})
}

// Flush forces the next add on the current pool to start a new batch,
// so state changes such as a new blend equation never bleed into
// already-accumulated geometry.
func (e *Engine) Flush() {
	if p := e.currentPool(); p != nil {
		p.batchBreak = true
	}
}

// SetColor sets the color modulation applied to subsequent draw requests.
func (e *Engine) SetColor(c RGBA) { e.state.Color = c }

// ResetColor restores the default (white) color modulation.
func (e *Engine) ResetColor() { e.state.Color = White }

// SetOpacity sets the opacity applied to subsequent draw requests.
func (e *Engine) SetOpacity(opacity float64) { e.state.Opacity = opacity }

// ResetOpacity restores full opacity.
func (e *Engine) ResetOpacity() { e.state.Opacity = 1 }

// Opacity returns the current global opacity.
func (e *Engine) Opacity() float64 { return e.state.Opacity }

// SetBlendEquation selects the blend equation for subsequent draw
// requests.
func (e *Engine) SetBlendEquation(eq BlendEquation) { e.state.BlendEquation = eq }

// ResetBlendEquation restores the standard source-over equation.
func (e *Engine) ResetBlendEquation() { e.state.BlendEquation = BlendAdd }

// SetCompositionMode selects the composition mode for subsequent draw
// requests.
func (e *Engine) SetCompositionMode(mode CompositionMode) { e.state.CompositionMode = mode }

// ResetCompositionMode restores normal composition.
func (e *Engine) ResetCompositionMode() { e.state.CompositionMode = CompositionNormal }

// SetClipRect sets the clip rectangle for subsequent draw requests.
func (e *Engine) SetClipRect(clip Rect) { e.state.ClipRect = clip }

// ResetClipRect removes the clip rectangle.
func (e *Engine) ResetClipRect() { e.state.ClipRect = Rect{} }

// SetShaderProgram selects a named shader for subsequent draw requests.
func (e *Engine) SetShaderProgram(name string) { e.state.ShaderProgram = name }

// ResetShaderProgram restores the default shader.
func (e *Engine) ResetShaderProgram() { e.state.ShaderProgram = "" }

// ResetState restores every global state field to its default.
func (e *Engine) ResetState() { e.state = defaultRenderState() }
