package execshell

// Pending is a handle to an execution that completes in the background.
type Pending[T any] struct {
	done  chan struct{}
	value T
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// Resolved returns a handle that has already completed with value.
func Resolved[T any](value T) *Pending[T] {
	pending := newPending[T]()
	pending.resolve(value)
	return pending
}

// Then returns a handle resolving with transform applied to the outcome of source.
// transform runs on a background goroutine once source completes.
func Then[T any, U any](source *Pending[T], transform func(T) U) *Pending[U] {
	derived := newPending[U]()
	go func() {
		derived.resolve(transform(source.Wait()))
	}()
	return derived
}

func (pending *Pending[T]) resolve(value T) {
	pending.value = value
	close(pending.done)
}

// Done is closed once the execution has completed.
func (pending *Pending[T]) Done() <-chan struct{} {
	return pending.done
}

// Wait blocks until the execution completes and returns its outcome.
func (pending *Pending[T]) Wait() T {
	<-pending.done
	return pending.value
}
