package wrap

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

var ErrPoolClosed = errors.New("pool is closed")

// PanicError carries a value recovered from a panicking function.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Pool runs submitted functions on a fixed number of goroutines. Submission
// never blocks, so functions running on a pool may submit to it. A function
// that waits on a future of its own pool holds a worker while it waits.
type Pool struct {
	mu     sync.Mutex
	ready  *sync.Cond
	queue  []func()
	closed bool
	wg     sync.WaitGroup
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// DefaultPool returns the process-wide pool sized runtime.GOMAXPROCS(0). It
// is never closed.
func DefaultPool() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewPool(runtime.GOMAXPROCS(0))
	})
	return defaultPool
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{}
	p.ready = sync.NewCond(&p.mu)
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		task, ok := p.next()
		if !ok {
			return
		}
		task()
	}
}

// next blocks until a task is queued. It reports false once the pool is
// closed and drained.
func (p *Pool) next() (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.ready.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}
	task := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return task, true
}

// Close stops accepting work and waits for queued functions to finish. It
// must not be called from a function running on p.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.ready.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) submit(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	p.queue = append(p.queue, task)
	p.ready.Signal()
	return true
}

// Future is the pending result of a function running on a Pool.
type Future[R any] struct {
	done chan struct{}
	val  R
	err  error
}

func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the function has returned.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.val, f.err
}

// GetContext is Get bounded by ctx. The function keeps running when ctx ends
// first.
func (f *Future[R]) GetContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Go schedules fn on p, or on DefaultPool when p is nil. A panic in fn is
// returned by the future as a *PanicError.
func Go[R any](p *Pool, fn Func[R]) *Future[R] {
	if p == nil {
		p = DefaultPool()
	}

	f := &Future[R]{done: make(chan struct{})}
	task := func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = &PanicError{Value: r}
			}
		}()
		f.val, f.err = fn()
	}

	if !p.submit(task) {
		f.err = ErrPoolClosed
		close(f.done)
	}
	return f
}

// Threaded turns fn into a function that runs it in the background on p.
func Threaded[R any](p *Pool, fn Func[R]) func() *Future[R] {
	return func() *Future[R] {
		return Go(p, fn)
	}
}
