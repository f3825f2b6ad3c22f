// Package drawpool provides a draw-call batching and deferred-rendering
// engine for real-time 2D clients.
//
// # Overview
//
// Drawing requests issued during a frame (textured rectangles, filled
// shapes, triangles, raw coordinate buffers, deferred actions) are grouped
// into pools, one per logical rendering layer. Within a pool, adjacent
// requests that share a render state are coalesced into a single batch and
// fully overdrawn geometry is discarded. At frame end a single Draw pass
// replays every pool in layer order against the rendering device.
//
// Pools whose content changes infrequently (for example map tiles) can be
// framebuffer-backed: their output is cached in an offscreen target and
// re-rendered only when an order-sensitive content hash of the frame's
// draw calls differs from the previous frame.
//
// # Two-phase execution
//
// Each pool may be linked to a build action that repopulates it every
// frame. With multithreading enabled, build actions run on their own
// goroutines and prepare CPU-side vertex buffers; Draw joins all
// outstanding builds before any device submission, so the device is only
// ever touched from the goroutine that owns Draw.
//
//	engine := drawpool.NewEngine(painter,
//	    drawpool.WithMultithreading(),
//	    drawpool.WithFrameBufferAllocator(alloc))
//
//	engine.CreateFramedPool(drawpool.PoolMap)
//	engine.Link(drawpool.PoolMap, func() {
//	    engine.AddTexturedRect(tileRect, tileTexture)
//	})
//
//	// per frame:
//	engine.Build(drawpool.PoolMap)
//	engine.Draw()
//
// # Device interfaces
//
// The engine talks to the device through the narrow Painter, FrameBuffer
// and Texture contracts. Package software provides a pure-CPU reference
// implementation; GPU backends can plug in the same way.
//
// By default drawpool produces no log output. Call SetLogger to enable
// structured logging.
package drawpool
