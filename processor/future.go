package processor

import (
	"context"

	"github.com/kbukum/webclient/params"
)

// Future is the handle to one asynchronous Process run.
type Future[T any] struct {
	done     chan struct{}
	consumer *Consumer[T]
	err      error
}

// ProcessAsync runs Process on its own goroutine. Semantics are
// unchanged; the loop inside stays strictly sequential. Abandoning the
// future, or timing out a Wait, does NOT stop the run — cooperative
// stop requires an explicit Interrupt.
func (p *Processor[T]) ProcessAsync(ctx context.Context, set *params.Set) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.consumer, f.err = p.Process(ctx, set)
	}()
	return f
}

// Done is closed when the run has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the run finishes or ctx expires. A ctx expiry
// bounds only the wait: the run keeps going and a later Wait can still
// collect it.
func (f *Future[T]) Wait(ctx context.Context) (*Consumer[T], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.consumer, f.err
	}
}
