package internal

import (
	"bytes"
	"context"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter and records what was sent.
// The error stage checks Written so it never renders over a started
// response, and the access log reads Status and Size.
//
// Calls are serialized. A sealed writer hands out a detached header map and
// refuses body writes with http.ErrHandlerTimeout, so a handler that
// outlives its request cannot touch the response.
type ResponseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	started bool
	sealed  bool
	status  int
	size    int64
	discard http.Header
}

// NewResponseWriter wraps w. Status reports 200 until a header is sent.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

func (w *ResponseWriter) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sealed {
		if w.discard == nil {
			w.discard = http.Header{}
		}
		return w.discard
	}
	return w.ResponseWriter.Header()
}

// WriteHeader sends code unless a header was already sent.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sealed {
		return
	}
	w.sendHeader(code)
}

// Write sends an implicit 200 first.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sealed {
		return 0, http.ErrHandlerTimeout
	}
	w.sendHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *ResponseWriter) sendHeader(code int) {
	if w.started {
		return
	}
	w.started = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Seal stops every later write from reaching the underlying writer.
func (w *ResponseWriter) Seal() {
	w.mu.Lock()
	w.sealed = true
	w.mu.Unlock()
}

// Status is the code that was sent, or 200 before anything was.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != 0 {
		return w.status
	}
	return http.StatusOK
}

// Size is the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent or the writer is sealed.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started || w.sealed
}

func (w *ResponseWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sealed {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// bufferedResponse holds a response in memory until it is copied out.
type bufferedResponse struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) { b.code = code }

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferedResponse) copyTo(w *ResponseWriter) {
	h := w.Header()
	for k, v := range b.header {
		h[k] = v
	}
	if b.code != 0 {
		w.WriteHeader(b.code)
	}
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}

// Buffer returns a Context for running later stages on another goroutine.
// It shares the request and stored values of c, but its response and its
// failure state are held in memory. commit copies both into c once the
// stages returned; discard seals the buffered response so that every later
// write fails with http.ErrHandlerTimeout. Exactly one of them must be
// called.
//
// A Context not created by an App is returned unchanged.
func Buffer(c Context) (bc Context, commit, discard func()) {
	parent, ok := c.(*requestContext)
	if !ok {
		return c, func() {}, func() {}
	}

	header := parent.responseWriter.Header().Clone()
	if header == nil {
		header = http.Header{}
	}
	buf := &bufferedResponse{header: header}

	fork := &requestContext{
		responseWriter: NewResponseWriter(buf),
		logger:         parent.logger,
		validator:      parent.validator,
	}
	r := parent.Request()
	fork.request = r.WithContext(context.WithValue(r.Context(), contextKey{}, fork))
	fork.Set(failureKey{}, new(failure))

	commit = func() {
		fork.responseWriter.Seal()
		parent.adopt(fork.Request())
		buf.copyTo(parent.responseWriter)
	}
	discard = func() {
		fork.responseWriter.Seal()
	}
	return fork, commit, discard
}
