package cstream

import (
	"bufio"
	"io"
	"os"
)

// Reader is the read-side stream facade: it composes a backing byte
// source with an optional decompressing filter and exposes a uniform
// sequential byte stream. The filter is chosen by sniffing the source's
// leading magic bytes; unrecognized content passes through unchanged.
type Reader struct {
	src    *bufio.Reader
	base   io.Closer // owned backing file, nil when wrapping a borrowed source
	filter *ReadFilter
	algo   Algorithm
	open   bool

	bytesRead int64
}

// OpenReader opens the named file and wraps it in a Reader. The file is
// owned by the Reader and closed by Close.
func OpenReader(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.base = f
	return r, nil
}

// NewReader wraps src in a Reader, sniffing its leading bytes to decide
// which decompressing filter to chain in, if any. src is borrowed: the
// caller keeps ownership of its lifetime.
func NewReader(src io.Reader) (*Reader, error) {
	return NewReaderSize(src, DefaultBufferSize)
}

// NewReaderSize is like NewReader with an explicit filter buffer capacity.
func NewReaderSize(src io.Reader, size int) (*Reader, error) {
	br := bufio.NewReaderSize(src, DefaultBufferSize)
	r := &Reader{src: br, open: true}

	algo, ok := SniffAlgorithm(br)
	if !ok {
		return r, nil
	}

	filter := NewReadFilterSize(algo, size)
	if err := filter.Init(br); err != nil {
		return nil, err
	}
	r.filter = filter
	r.algo = algo
	return r, nil
}

// Read reads decompressed bytes into p. On the pass-through path the
// source bytes are returned unchanged.
func (r *Reader) Read(p []byte) (int, error) {
	if !r.open {
		return 0, ErrStreamClosed
	}

	var n int
	var err error
	if r.filter != nil {
		n, err = r.filter.Read(p)
	} else {
		n, err = r.src.Read(p)
	}
	r.bytesRead += int64(n)
	return n, err
}

// Close tears down the filter and closes the backing file if the Reader
// owns one. Calling Close again is a no-op.
func (r *Reader) Close() error {
	if !r.open {
		return nil
	}
	r.open = false

	var err error
	if r.filter != nil {
		err = r.filter.Close()
	}
	if r.base != nil {
		if cerr := r.base.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// IsOpen reports whether the stream is open for reading.
func (r *Reader) IsOpen() bool {
	return r.open
}

// Algorithm returns the codec detected for this stream, or AlgorithmNone
// on the pass-through path.
func (r *Reader) Algorithm() Algorithm {
	return r.algo
}

// BytesRead returns the number of decompressed bytes delivered so far.
func (r *Reader) BytesRead() int64 {
	return r.bytesRead
}

// Writer is the write-side stream facade: it composes a backing byte
// sink with an optional compressing filter. The codec is chosen from the
// filename suffix by OpenWriter, or passed explicitly to NewWriter.
type Writer struct {
	dst    io.Writer
	base   io.Closer // owned backing file, nil when wrapping a borrowed sink
	filter *WriteFilter
	algo   Algorithm
	open   bool

	bytesWritten int64
}

// OpenWriter creates the named file and wraps it in a Writer. The codec
// follows the filename suffix: .gz selects gzip, .xz selects xz, and so
// on per the extension table; anything else writes plain bytes. The file
// is owned by the Writer and closed by Close.
func OpenWriter(name string) (*Writer, error) {
	algo, _ := DetectAlgorithmFromExtension(name)

	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, algo)
	if err != nil {
		f.Close()
		os.Remove(name)
		return nil, err
	}
	w.base = f
	return w, nil
}

// NewWriter wraps dst in a Writer compressing with algo at maximum
// effort. AlgorithmNone writes plain bytes. dst is borrowed: the caller
// keeps ownership of its lifetime.
func NewWriter(dst io.Writer, algo Algorithm) (*Writer, error) {
	return NewWriterLevel(dst, algo, 0)
}

// NewWriterLevel is like NewWriter with an explicit compression level.
// Level <= 0 selects maximum effort.
func NewWriterLevel(dst io.Writer, algo Algorithm, level int) (*Writer, error) {
	w := &Writer{dst: dst, algo: algo, open: true}
	if algo == AlgorithmNone {
		return w, nil
	}

	filter := NewWriteFilterLevel(algo, level)
	if err := filter.Init(dst); err != nil {
		return nil, err
	}
	w.filter = filter
	return w, nil
}

// Write writes p through the compressing filter, or straight to the sink
// on the pass-through path.
func (w *Writer) Write(p []byte) (int, error) {
	if !w.open {
		return 0, ErrStreamClosed
	}

	var n int
	var err error
	if w.filter != nil {
		n, err = w.filter.Write(p)
	} else {
		n, err = w.dst.Write(p)
	}
	w.bytesWritten += int64(n)
	return n, err
}

// Close finishes the compressed stream, emitting the container trailer,
// and closes the backing file if the Writer owns one. Calling Close
// again is a no-op.
func (w *Writer) Close() error {
	if !w.open {
		return nil
	}
	w.open = false

	var err error
	if w.filter != nil {
		err = w.filter.Close()
	}
	if w.base != nil {
		if cerr := w.base.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// IsOpen reports whether the stream is open for writing.
func (w *Writer) IsOpen() bool {
	return w.open
}

// Algorithm returns the codec this stream compresses with, or
// AlgorithmNone on the pass-through path.
func (w *Writer) Algorithm() Algorithm {
	return w.algo
}

// BytesWritten returns the number of raw bytes accepted so far.
func (w *Writer) BytesWritten() int64 {
	return w.bytesWritten
}
