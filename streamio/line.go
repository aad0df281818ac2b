package streamio

import (
	"bytes"
	"io"

	"github.com/stojanovski/bueno/internal/growbuf"
)

// LineReader layers line-at-a-time reads over a ByteSource, grounded in
// the drain-then-pull algorithm from the original line reader: drain
// whatever is already buffered for a newline before pulling more bytes
// from the source. The returned line is valid until the next Read call.
//
// The final line of a stream that lacks a trailing newline is returned
// once, in full, with no terminator; the next Read call then reports
// io.EOF.
type LineReader struct {
	src ByteSource
	buf growbuf.Buffer

	pending int // bytes to discard from buf's front at the next Read call
	atEOF   bool
}

// NewLineReader wraps src. Call Open before the first Read.
func NewLineReader(src ByteSource) *LineReader {
	return &LineReader{src: src}
}

// Open opens the underlying source.
func (l *LineReader) Open() error {
	return l.src.Open()
}

// Read returns the next line, including its trailing '\n' when the
// stream supplied one. Returns io.EOF once every line (including a final
// unterminated partial line) has been returned.
func (l *LineReader) Read() ([]byte, error) {
	if l.atEOF {
		return nil, io.EOF
	}
	if l.pending > 0 {
		l.buf.DiscardFront(l.pending)
		l.pending = 0
	}

	if line, ok := l.drain(); ok {
		return line, nil
	}

	for {
		seg, err := l.src.Read()
		if err != nil {
			if err == io.EOF {
				l.atEOF = true
				if l.buf.Len() == 0 {
					return nil, io.EOF
				}
				l.pending = l.buf.Len()
				return l.buf.Bytes(), nil
			}
			return nil, err
		}
		l.buf.Append(seg)
		if line, ok := l.drain(); ok {
			return line, nil
		}
	}
}

// drain looks for a newline already sitting in the buffer.
func (l *LineReader) drain() ([]byte, bool) {
	data := l.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return nil, false
	}
	l.pending = idx + 1
	return data[:idx+1], true
}

// LastError forwards the underlying source's most recent error detail.
func (l *LineReader) LastError() error {
	return l.src.LastError()
}
