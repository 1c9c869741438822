package internal

import (
	"runtime/debug"
	"sync"
)

// failureKey stores the per-request guard that lets a failure reach the
// error sink only once, however many wrapped stages return it.
type failureKey struct{}

// Wrap adapts a handler or composed middleware stage so that its failure
// is forwarded to sink. Panics are converted into *PanicError.
//
// Every stage of a request shares one guard, so when a failure travels
// back up through several wrapped stages the sink still runs exactly once.
// The error is returned unchanged to let outer middleware observe it.
func Wrap(h HandlerFunc, sink ErrorSink) HandlerFunc {
	return func(c Context) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = &PanicError{Value: p, Stack: debug.Stack()}
			}
			if err != nil && sink != nil {
				failureGuard(c).Do(func() { sink(c, err) })
			}
		}()
		return h(c)
	}
}

// Reported reports whether a failure of this request already reached the sink.
func Reported(c Context) bool {
	g, ok := c.Get(failureKey{}).(*failure)
	return ok && g.done()
}

type failure struct {
	once sync.Once
	mu   sync.Mutex
	ran  bool
}

func (f *failure) Do(fn func()) {
	f.once.Do(func() {
		f.mu.Lock()
		f.ran = true
		f.mu.Unlock()
		fn()
	})
}

func (f *failure) done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ran
}

func failureGuard(c Context) *failure {
	if g, ok := c.Get(failureKey{}).(*failure); ok {
		return g
	}
	g := new(failure)
	c.Set(failureKey{}, g)
	return g
}
