// Package streamio implements the polymorphic streaming byte source and
// the line reader layered over it: a pull-based API that hands the caller
// one freshly produced, read-only segment of bytes (or one line) per
// call, valid only until the next call.
package streamio

import (
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultReadBufferSize is the file reader's read-buffer size unless
// overridden with WithReadBufferSize. Tests shrink it to force pathological
// chunk boundaries without needing a fake source.
const DefaultReadBufferSize = 1024

// ByteSource is a polymorphic handle over a streaming source of bytes.
// Read returns one non-empty segment, valid until the next Read call on
// the same source; io.EOF marks the end of the stream. LastError reports
// the detail behind the most recent non-EOF error, for callers (like a
// line reader) that need to surface it unchanged.
type ByteSource interface {
	Open() error
	Read() ([]byte, error)
	LastError() error
}

// FileReaderOption configures a FileReader.
type FileReaderOption func(*FileReader)

// WithReadBufferSize overrides the reader's read-buffer size. Exists
// primarily so tests can force single-byte reads to exercise chunk
// boundaries.
func WithReadBufferSize(n int) FileReaderOption {
	return func(r *FileReader) {
		r.bufSize = n
	}
}

// FileReader is the built-in ByteSource implementation: it opens one
// filesystem path in binary read mode. Paths ending in ".gz" are
// transparently decompressed, giving the "polymorphic streaming source" a
// second real transport to be polymorphic over.
type FileReader struct {
	fs      afero.Fs
	path    string
	bufSize int

	file    afero.File
	gz      *gzip.Reader
	reader  io.Reader
	buf     []byte
	lastErr error
}

// NewFileReader returns a FileReader for path on fs. Pass afero.NewOsFs()
// for the real filesystem or afero.NewMemMapFs() in tests.
func NewFileReader(fs afero.Fs, path string, opts ...FileReaderOption) *FileReader {
	r := &FileReader{
		fs:      fs,
		path:    path,
		bufSize: DefaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open prepares the reader to emit bytes.
func (r *FileReader) Open() error {
	f, err := r.fs.Open(r.path)
	if err != nil {
		r.lastErr = err
		return errors.Wrap(err, "streamio: open file")
	}
	r.file = f

	var reader io.Reader = f
	if strings.HasSuffix(r.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			r.lastErr = err
			return errors.Wrap(err, "streamio: open gzip stream")
		}
		r.gz = gz
		reader = gz
	}
	r.reader = reader
	r.buf = make([]byte, r.bufSize)
	return nil
}

// Read returns one non-empty segment of freshly read bytes, valid until
// the next Read call. Returns io.EOF at the end of the stream.
func (r *FileReader) Read() ([]byte, error) {
	n, err := r.reader.Read(r.buf)
	if n > 0 {
		return r.buf[:n], nil
	}
	if err == nil || err == io.EOF {
		return nil, io.EOF
	}
	r.lastErr = err
	return nil, errors.Wrap(err, "streamio: read file")
}

// LastError reports the most recent error detail.
func (r *FileReader) LastError() error {
	return r.lastErr
}

// Close releases the underlying file (and gzip stream, if any).
func (r *FileReader) Close() error {
	var firstErr error
	if r.gz != nil {
		if err := r.gz.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
