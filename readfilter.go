package cstream

import (
	"errors"
	"fmt"
	"io"
)

// Compile-time check that ReadFilter implements Filter.
var _ Filter = (*ReadFilter)(nil)

// ReadFilter is a pull-driven decompressing filter. It pulls compressed
// bytes from an upstream source on demand and exposes the decompressed
// bytes through Read.
//
// The filter owns a fixed-capacity input window of compressed bytes not
// yet consumed by the codec session, and a fixed-capacity output buffer
// of decoded bytes not yet taken by the caller. Both live in storage the
// filter allocates itself, addressed by explicit cursors.
type ReadFilter struct {
	algo Algorithm
	size int

	// session is the live codec engine state, at most one per filter.
	// It reads compressed input exclusively through in.
	session io.ReadCloser
	in      *inputWindow

	// out holds decoded bytes between outBegin and outEnd.
	out      []byte
	outBegin int
	outEnd   int

	eof bool
	err error // sticky failure; once set, every Read returns it
}

// NewReadFilter returns a cold filter for algo. It does nothing until
// Init binds it to an upstream source.
func NewReadFilter(algo Algorithm) *ReadFilter {
	return NewReadFilterSize(algo, DefaultBufferSize)
}

// NewReadFilterSize is like NewReadFilter with an explicit capacity for
// the input window and output buffer.
func NewReadFilterSize(algo Algorithm, size int) *ReadFilter {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &ReadFilter{algo: algo, size: size}
}

// Algorithm returns the codec this filter decodes.
func (f *ReadFilter) Algorithm() Algorithm {
	return f.algo
}

// Init creates the codec session and binds it to upstream. Any prior
// session is torn down first. Creating the session parses the container
// header, which primes the input window with the first chunk of
// compressed bytes; if the engine rejects the header, Init fails and the
// filter holds no session.
//
// The upstream reference is borrowed, never owned: closing upstream
// remains the caller's job.
func (f *ReadFilter) Init(upstream io.Reader) error {
	f.teardown()

	f.in = newInputWindow(upstream, f.size)
	session, err := newDecompressor(f.algo, f.in)
	if err != nil {
		f.in = nil
		if errors.Is(err, ErrUnsupportedAlgorithm) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	f.session = session
	f.out = make([]byte, f.size)
	f.outBegin, f.outEnd = 0, 0
	f.eof = false
	f.err = nil
	return nil
}

// Read copies decoded bytes into p, refilling the output buffer from the
// codec session when it runs dry. A damaged or truncated payload returns
// an error wrapping ErrCorruptData; a cleanly finished stream returns
// io.EOF.
func (f *ReadFilter) Read(p []byte) (int, error) {
	if f.outBegin == f.outEnd {
		if f.err != nil {
			return 0, f.err
		}
		if f.session == nil {
			return 0, ErrFilterClosed
		}
		if err := f.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, f.out[f.outBegin:f.outEnd])
	f.outBegin += n
	return n, nil
}

// fill runs the refill loop: feed available input to the codec and let
// it fill the output buffer, repeating until at least one byte is
// produced, the codec signals logical end-of-stream, or it fails.
func (f *ReadFilter) fill() error {
	if f.eof {
		return io.EOF
	}
	f.outBegin, f.outEnd = 0, 0
	for {
		n, err := f.session.Read(f.out)
		f.outEnd = n
		if err == io.EOF {
			f.eof = true
			if n == 0 {
				return io.EOF
			}
			return nil
		}
		if err != nil {
			// Bytes decoded on the failing call are not trustworthy;
			// drop them rather than serve them ahead of the error.
			f.outBegin, f.outEnd = 0, 0
			f.err = fmt.Errorf("%w: %v", ErrCorruptData, err)
			return f.err
		}
		if n > 0 {
			return nil
		}
	}
}

// Transfer moves the codec session and all in-flight buffered state to a
// fresh instance and returns it. Unread output bytes and pending input
// bytes are copied verbatim into the new instance's storage, and the
// input cursor is rebased to the start of the new storage; no slice
// aliasing the old instance survives. The receiver is inert afterwards:
// further reads fail and only Close remains safe.
func (f *ReadFilter) Transfer() *ReadFilter {
	nf := &ReadFilter{
		algo:    f.algo,
		size:    f.size,
		session: f.session,
		in:      f.in,
		eof:     f.eof,
		err:     f.err,
	}
	if f.out != nil {
		nf.out = make([]byte, len(f.out))
		nf.outEnd = copy(nf.out, f.out[f.outBegin:f.outEnd])
	}
	if nf.in != nil {
		nf.in.relocate()
	}

	f.session = nil
	f.in = nil
	f.out = nil
	f.outBegin, f.outEnd = 0, 0
	return nf
}

// Close tears down the codec session and clears all buffer state. It is
// safe to call on a cold, inert, or already-closed filter.
func (f *ReadFilter) Close() error {
	return f.teardown()
}

func (f *ReadFilter) teardown() error {
	var err error
	if f.session != nil {
		err = f.session.Close()
		f.session = nil
	}
	f.in = nil
	f.out = nil
	f.outBegin, f.outEnd = 0, 0
	return err
}
