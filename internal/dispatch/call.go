package dispatch

import (
	"context"

	"github.com/lizzyg/chatwork/internal/core"
	"github.com/lizzyg/chatwork/internal/form"
)

// Call is a prepared request for one endpoint. It can be run any number of times
// through Do, Go or Then; each run sends exactly one request.
type Call[T any] struct {
	d      *Dispatcher
	token  string
	method string
	path   string
	params form.Encoder
}

// NewCall prepares a request. params may be nil for endpoints without parameters.
func NewCall[T any](d *Dispatcher, token, method, path string, params form.Encoder) *Call[T] {
	return &Call[T]{d: d, token: token, method: method, path: path, params: params}
}

func (c *Call[T]) Method() string { return c.method }
func (c *Call[T]) Path() string   { return c.path }

// Do sends the request and blocks until it completes.
func (c *Call[T]) Do(ctx context.Context) (core.Response[T], error) {
	return c.Go(ctx).Await()
}

// Go starts the request in its own goroutine and returns immediately.
func (c *Call[T]) Go(ctx context.Context) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.resp, p.err = Send[T](ctx, c.d, c.token, c.method, c.path, c.params)
	}()
	return p
}

// Then starts the request and invokes fn exactly once with its outcome from a
// background goroutine. The returned channel is closed after fn returns.
func (c *Call[T]) Then(ctx context.Context, fn func(core.Response[T], error)) <-chan struct{} {
	p := c.Go(ctx)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		resp, err := p.Await()
		if fn != nil {
			fn(resp, err)
		}
	}()
	return finished
}

// Pending is an in-flight request started by Call.Go.
type Pending[T any] struct {
	done chan struct{}
	resp core.Response[T]
	err  error
}

// Done is closed when the outcome is available.
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Await blocks until the request completes. It may be called repeatedly and from
// several goroutines; all observe the same outcome.
func (p *Pending[T]) Await() (core.Response[T], error) {
	<-p.done
	return p.resp, p.err
}
