package drawpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// concurrencyMode selects how the "current pool" context is resolved.
// The selection is an explicit indirection (rather than implicit
// goroutine-local state) so both bindings stay visible and testable.
type concurrencyMode uint8

const (
	// modeSingleThread uses one process-wide current-pool slot.
	modeSingleThread concurrencyMode = iota

	// modeMultiThread binds the current pool per goroutine, so build
	// actions running concurrently never observe each other's pool.
	modeMultiThread
)

// poolBinding resolves the pool bound to the calling context.
type poolBinding interface {
	// bind makes p the current pool for the calling context.
	bind(p *Pool)

	// current returns the pool bound to the calling context, or nil.
	current() *Pool

	// clear removes the calling context's binding.
	clear()
}

func newPoolBinding(mode concurrencyMode) poolBinding {
	if mode == modeMultiThread {
		return &goroutineBinding{}
	}
	return &sharedBinding{}
}

// sharedBinding is the single-threaded binding: one shared slot.
type sharedBinding struct {
	p atomic.Pointer[Pool]
}

func (b *sharedBinding) bind(p *Pool)   { b.p.Store(p) }
func (b *sharedBinding) current() *Pool { return b.p.Load() }
func (b *sharedBinding) clear()         { b.p.Store(nil) }

// goroutineBinding is the multithreaded binding: one slot per goroutine.
// Calls from goroutines that never bound a pool resolve to nil, which is
// what makes stray add-geometry calls a safe no-op.
type goroutineBinding struct {
	m sync.Map // goroutine id -> *Pool
}

func (b *goroutineBinding) bind(p *Pool) {
	b.m.Store(gid(), p)
}

func (b *goroutineBinding) current() *Pool {
	v, ok := b.m.Load(gid())
	if !ok {
		return nil
	}
	return v.(*Pool)
}

func (b *goroutineBinding) clear() {
	b.m.Delete(gid())
}

// gid returns the calling goroutine's id, parsed from the first line of
// the runtime stack ("goroutine N [...]").
func gid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	var id uint64
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
