package cstream

import "io"

// Filter is the capability set shared by ReadFilter and WriteFilter: a
// component that transforms bytes between a caller-facing interface and
// an upstream byte source or sink.
//
// A filter is created cold, armed with Init, driven by Read or Write,
// and torn down with Close. Init on a live filter tears down the prior
// codec session before starting a new one. Close is idempotent.
//
// Filters must not be copied: a codec session cannot be duplicated
// safely. Moving a live filter, buffered state included, is done with
// the concrete types' Transfer methods; the transferred-from instance
// is inert afterwards and only Close may still be called on it.
type Filter interface {
	Close() error
}

// inputWindow is the fixed-capacity window of compressed bytes pulled
// from upstream but not yet consumed by the codec session. The session
// reads from the window, never from upstream directly, which is what
// makes relocation possible: pending bytes live in storage the filter
// owns, addressed by explicit begin/end cursors rather than by slices
// borrowed from anyone else.
type inputWindow struct {
	buf      []byte
	begin    int // next byte to hand to the session
	end      int // one past the last valid byte
	upstream io.Reader
	err      error // sticky upstream error, io.EOF included
}

func newInputWindow(upstream io.Reader, size int) *inputWindow {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &inputWindow{buf: make([]byte, size), upstream: upstream}
}

// Read hands the session pending bytes, refilling from upstream only
// when the window is empty.
func (w *inputWindow) Read(p []byte) (int, error) {
	if w.begin == w.end {
		if w.err != nil {
			return 0, w.err
		}
		w.begin, w.end = 0, 0
		n, err := w.upstream.Read(w.buf)
		w.end = n
		if err != nil {
			w.err = err
		} else if n == 0 {
			// Upstream yielded zero new bytes; treat as exhausted.
			w.err = io.EOF
		}
		if w.end == 0 {
			return 0, w.err
		}
	}
	n := copy(p, w.buf[w.begin:w.end])
	w.begin += n
	return n, nil
}

// pending reports how many buffered bytes the session has not consumed yet.
func (w *inputWindow) pending() int {
	return w.end - w.begin
}

// relocate copies the pending bytes verbatim into fresh storage and
// rebases the cursors to its start. After relocation nothing references
// the old array, so the old owner can be discarded while the codec
// session keeps reading without losing a byte.
func (w *inputWindow) relocate() {
	fresh := make([]byte, len(w.buf))
	n := copy(fresh, w.buf[w.begin:w.end])
	w.buf, w.begin, w.end = fresh, 0, n
}

// fullWriter fails any downstream write that lands fewer bytes than
// requested. Short writes are fatal for the whole stream and are never
// retried.
type fullWriter struct {
	w io.Writer
}

func (fw fullWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}
