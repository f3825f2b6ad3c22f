package drawpool

// Option configures an Engine during creation.
//
// Example:
//
//	engine := drawpool.NewEngine(painter,
//	    drawpool.WithMultithreading(),
//	    drawpool.WithFrameBufferAllocator(alloc))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	multiThread      bool
	allocFrameBuffer FrameBufferAllocator
}

func defaultEngineOptions() engineOptions {
	return engineOptions{}
}

// WithMultithreading runs each pool's build action on its own goroutine.
// Draw joins all outstanding builds before submitting to the device. The
// flag is process-wide and fixed at construction.
func WithMultithreading() Option {
	return func(o *engineOptions) {
		o.multiThread = true
	}
}

// WithFrameBufferAllocator supplies the factory used by CreateFramedPool
// to allocate offscreen targets. Required before any framed pool is
// created.
func WithFrameBufferAllocator(alloc FrameBufferAllocator) Option {
	return func(o *engineOptions) {
		o.allocFrameBuffer = alloc
	}
}
