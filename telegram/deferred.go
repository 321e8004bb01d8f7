package telegram

import "sync"

// Deferred is the typed result of a submitted call. In synchronous mode it
// is already resolved when Submit returns.
type Deferred[T any] struct {
	resp   *Response
	decode func(*Response) (T, error)

	once  sync.Once
	value T
	err   error
}

// Get waits for the call and returns its decoded result. Repeated calls
// return the same value and error.
func (d *Deferred[T]) Get() (T, error) {
	d.once.Do(func() {
		if err := d.resp.Err(); err != nil {
			d.err = err
			return
		}
		d.value, d.err = d.decode(d.resp)
	})
	return d.value, d.err
}

// Ready reports whether the underlying exchange has settled.
func (d *Deferred[T]) Ready() bool { return d.resp.Ready() }

// Response returns the envelope behind the result.
func (d *Deferred[T]) Response() *Response { return d.resp }
