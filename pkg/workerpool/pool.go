// Package workerpool runs fire-and-forget tasks on a fixed set of goroutines.
//
// The event dispatcher uses it for listeners that must not hold up a
// response (logging, counters):
//
//	pool := workerpool.New(4)
//	defer pool.Shutdown()
//	pool.Go(func() { ... })
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when every worker is busy and the
// backlog is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool with a backlog of twice its size.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	wg     sync.WaitGroup
}

func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{tasks: make(chan func(), size*2)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

// Submit queues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Go queues task, or runs it on the caller's goroutine when the pool is full
// or closed. The task always runs.
func (p *Pool) Go(task func()) {
	if p == nil || p.Submit(task) != nil {
		safeRun(task)
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish. It is
// safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun keeps a panicking task from killing its worker.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
