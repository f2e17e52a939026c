package cstream

import "io"

// Compile-time check that WriteFilter implements Filter.
var _ Filter = (*WriteFilter)(nil)

// WriteFilter is a push-driven compressing filter. Raw bytes from the
// caller accumulate in a fixed-capacity write buffer; when the buffer
// fills, its contents are fed through the codec session, which pushes
// every produced compressed chunk to the downstream sink.
//
// Close drives the codec to its finish state exactly once, so the
// container trailer and checksum are emitted exactly once; writes after
// Close fail.
type WriteFilter struct {
	algo  Algorithm
	level int
	size  int

	// session is the live codec engine state. It writes produced chunks
	// straight to the downstream sink, guarded against short writes.
	session io.WriteCloser

	// buf holds raw bytes not yet fed to the codec; n is the fill count.
	buf []byte
	n   int

	err error // sticky failure; once set, every Write returns it
}

// NewWriteFilter returns a cold filter for algo at maximum compression
// effort. It does nothing until Init binds it to a downstream sink.
func NewWriteFilter(algo Algorithm) *WriteFilter {
	return NewWriteFilterLevel(algo, 0)
}

// NewWriteFilterLevel is like NewWriteFilter with an explicit compression
// level. Level <= 0 selects maximum effort.
func NewWriteFilterLevel(algo Algorithm, level int) *WriteFilter {
	return &WriteFilter{algo: algo, level: level, size: DefaultBufferSize}
}

// NewWriteFilterSize is like NewWriteFilter with an explicit write buffer
// capacity.
func NewWriteFilterSize(algo Algorithm, size int) *WriteFilter {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &WriteFilter{algo: algo, size: size}
}

// Algorithm returns the codec this filter encodes with.
func (f *WriteFilter) Algorithm() Algorithm {
	return f.algo
}

// Init creates the codec session writing to upstream and arms the write
// buffer. A prior session is driven to completion and torn down first.
//
// The upstream reference is borrowed, never owned: closing upstream
// remains the caller's job.
func (f *WriteFilter) Init(upstream io.Writer) error {
	if err := f.teardown(); err != nil {
		return err
	}

	session, err := newCompressor(f.algo, fullWriter{upstream}, f.level)
	if err != nil {
		return err
	}

	f.session = session
	f.buf = make([]byte, f.size)
	f.n = 0
	f.err = nil
	return nil
}

// Write accumulates p into the write buffer, flushing through the codec
// whenever the buffer fills; the byte that did not fit is then accepted
// into the emptied buffer. A failed or short downstream write is fatal:
// the error sticks and nothing is retried.
func (f *WriteFilter) Write(p []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.session == nil {
		return 0, ErrFilterClosed
	}

	var written int
	for len(p) > 0 {
		if f.n == len(f.buf) {
			if err := f.flush(); err != nil {
				return written, err
			}
		}
		n := copy(f.buf[f.n:], p)
		f.n += n
		p = p[n:]
		written += n
	}
	return written, nil
}

// flush feeds the buffered raw bytes through the codec session, which
// writes all produced chunks downstream before returning.
func (f *WriteFilter) flush() error {
	if f.err != nil {
		return f.err
	}
	if f.n == 0 {
		return nil
	}
	if _, err := f.session.Write(f.buf[:f.n]); err != nil {
		f.err = err
		return err
	}
	f.n = 0
	return nil
}

// Transfer moves the codec session and any buffered-but-unflushed bytes
// to a fresh instance and returns it. The pending bytes are copied
// verbatim into storage the new instance owns. The receiver is inert
// afterwards: further writes fail and only Close remains safe, which
// will no longer emit a trailer.
func (f *WriteFilter) Transfer() *WriteFilter {
	nf := &WriteFilter{
		algo:    f.algo,
		level:   f.level,
		size:    f.size,
		session: f.session,
		err:     f.err,
	}
	if f.buf != nil {
		nf.buf = make([]byte, len(f.buf))
		nf.n = copy(nf.buf, f.buf[:f.n])
	}

	f.session = nil
	f.buf = nil
	f.n = 0
	return nf
}

// Close flushes the remaining buffered bytes and drives the codec to
// completion, emitting the container trailer exactly once. Calling Close
// again is a no-op. Writes after Close fail with ErrFilterClosed.
func (f *WriteFilter) Close() error {
	return f.teardown()
}

func (f *WriteFilter) teardown() error {
	if f.session == nil {
		f.buf = nil
		f.n = 0
		return nil
	}

	err := f.flush()
	if cerr := f.session.Close(); err == nil {
		err = cerr
	}
	f.session = nil
	f.buf = nil
	f.n = 0
	return err
}
