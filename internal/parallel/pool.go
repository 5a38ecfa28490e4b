// Package parallel runs index ranges across a fixed set of goroutines.
//
// It backs the multi-threaded mode of the CPU backend: a ray batch is cut
// into contiguous chunks, each chunk is traced by one worker, and every
// worker writes only the output slots of its own chunk.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultChunkSize is the number of indices per work item when the caller
// passes a non-positive chunk size.
const DefaultChunkSize = 256

// Pool is a pool of goroutines that execute range work items.
//
// Each worker owns a queue. Items are dealt round-robin; a worker whose queue
// is empty steals from the others so slow chunks do not stall the batch.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Range calls fn(lo, hi) for consecutive, disjoint [lo, hi) chunks covering
// [0, n) and waits for all of them. Chunks are at most chunk long.
//
// If the pool is closed, Range runs every chunk on the calling goroutine.
func (p *Pool) Range(n, chunk int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	if !p.running.Load() {
		for lo := 0; lo < n; lo += chunk {
			fn(lo, min(lo+chunk, n))
		}
		return
	}

	var pending sync.WaitGroup
	item := 0
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		pending.Add(1)
		work := func() {
			defer pending.Done()
			fn(lo, hi)
		}

		select {
		case p.queues[item%p.workers] <- work:
		case <-p.done:
			work()
		}
		item++
	}
	pending.Wait()
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
