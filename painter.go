package drawpool

// Painter executes render state and submits vertex data to the rendering
// device. Implementations are not required to be safe for concurrent use:
// the engine only calls a Painter from the goroutine that owns Draw.
type Painter interface {
	// ExecuteState makes the given render state (including its texture)
	// current for subsequent geometry submission.
	ExecuteState(state RenderState)

	// DrawCoords submits the buffer's vertices with the given topology.
	DrawCoords(buf *CoordsBuffer, topology Topology)

	// SaveAndResetState captures the current device state and resets it to
	// defaults. Used around framed-pool rendering so nested targets start
	// from a clean state.
	SaveAndResetState()

	// RestoreSavedState restores the state captured by the matching
	// SaveAndResetState call.
	RestoreSavedState()
}

// FrameBuffer is an offscreen render target that caches a framed pool's
// output between frames.
type FrameBuffer interface {
	// IsDrawable reports whether the target is allocated and usable.
	IsDrawable() bool

	// Bind redirects subsequent painter submissions into the target.
	Bind()

	// Release restores the previous render target.
	Release()

	// Draw composites the target's content into the current frame,
	// scaling the src region of the target onto the dest region.
	Draw(dest, src Rect)

	// Resize reallocates the target to the given pixel size.
	Resize(size Point)

	// DisableBlend makes Draw overwrite the destination instead of
	// blending into it.
	DisableBlend()

	// SetCompositionMode selects how Draw combines the target with the
	// frame.
	SetCompositionMode(mode CompositionMode)

	// SetSmooth toggles filtered scaling for Draw.
	SetSmooth(enabled bool)
}

// FrameBufferAllocator creates offscreen targets for framed pools.
// Supplied to the engine via WithFrameBufferAllocator.
type FrameBufferAllocator func() FrameBuffer
