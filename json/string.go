package json

import (
	"fmt"

	"github.com/stojanovski/bueno/internal/growbuf"
)

// StringAccumulator incrementally decodes the contents strictly between a
// pair of JSON double quotes. The caller strips the opening quote before
// the first Feed call and the closing quote after Feed returns Ready.
//
// Lone \uXXXX surrogates (U+D800-U+DFFF) are not combined into a single
// code point above U+FFFF -- that's out of scope here. Each is encoded
// as UTF-8 for its raw 16-bit value, which for an unpaired surrogate
// produces a byte sequence that is not valid UTF-8. Tightening this to
// reject unpaired surrogates is left for a future revision.
type StringAccumulator struct {
	out growbuf.Buffer

	// escapeSeqLen tracks how many bytes of a pending escape have been
	// consumed: 0 none, 1 saw '\', 2..5 that many hex nibbles of a \uXXXX
	// escape collected, 6 complete (transient, cleared before returning).
	escapeSeqLen int
	// unicodeEscapedValue accumulates the 16-bit value of a \uXXXX escape,
	// left-shifted 4 bits and OR-ed with each hex nibble in turn.
	unicodeEscapedValue uint16
}

// NewStringAccumulator returns an accumulator ready to parse the bytes
// following an opening quote.
func NewStringAccumulator() *StringAccumulator {
	return &StringAccumulator{}
}

func hexNibble(c byte) (uint16, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint16(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint16(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint16(c-'A') + 10, true
	default:
		return 0, false
	}
}

// appendUTF8 encodes a 16-bit code point as UTF-8 using the standard
// 1/2/3-byte tiers: no attempt is made to combine surrogate pairs.
func appendUTF8(out *growbuf.Buffer, u uint16) {
	switch {
	case u <= 0x007f:
		out.AppendByte(byte(u))
	case u <= 0x07ff:
		out.AppendByte(byte(u>>6) | 0xc0)
		out.AppendByte(byte(u&0x3f) | 0x80)
	default:
		out.AppendByte(byte(u>>12) | 0xe0)
		out.AppendByte(byte((u>>6)&0x3f) | 0x80)
		out.AppendByte(byte(u&0x3f) | 0x80)
	}
}

// Feed consumes a prefix of chunk. Returns Ready when a bare '"' is found
// outside an escape (the quote itself is left unconsumed) or when the
// chunk runs out with no escape in flight (the caller decides whether more
// input follows); NeedMore mid-escape; InputError on an unsupported escape
// introducer or a non-hex byte inside \uXXXX.
func (s *StringAccumulator) Feed(chunk []byte) (int, Status, error) {
	assertNonEmpty(chunk)
	i := 0

	if s.escapeSeqLen > 0 {
		consumed, status, err := s.resumeEscape(chunk)
		i += consumed
		if status != Ready || err != nil {
			return i, status, err
		}
		chunk = chunk[consumed:]
	}

	for {
		if len(chunk) == 0 {
			return i, Ready, nil
		}

		runEnd := 0
		for runEnd < len(chunk) && chunk[runEnd] != '"' && chunk[runEnd] != '\\' {
			runEnd++
		}
		if runEnd > 0 {
			s.out.Append(chunk[:runEnd])
			i += runEnd
			chunk = chunk[runEnd:]
		}
		if len(chunk) == 0 {
			return i, Ready, nil
		}
		if chunk[0] == '"' {
			return i, Ready, nil
		}

		// chunk[0] == '\\'
		i++
		chunk = chunk[1:]
		s.escapeSeqLen = 1
		if len(chunk) == 0 {
			return i, NeedMore, nil
		}
		consumed, status, err := s.resumeEscape(chunk)
		i += consumed
		if status != Ready || err != nil {
			return i, status, err
		}
		chunk = chunk[consumed:]
	}
}

// resumeEscape is called with escapeSeqLen already >= 1 and the byte right
// after the backslash (or right after a previously-consumed hex nibble) at
// the front of chunk. It returns Ready once the escape has been fully
// resolved and appended to out, consuming the bytes of the escape body it
// was able to read.
func (s *StringAccumulator) resumeEscape(chunk []byte) (int, Status, error) {
	i := 0

	if s.escapeSeqLen == 1 {
		if len(chunk) == 0 {
			return i, NeedMore, nil
		}
		c := chunk[0]
		var lit byte
		switch c {
		case '"':
			lit = '"'
		case '\\':
			lit = '\\'
		case '/':
			lit = '/'
		case 'b':
			lit = '\b'
		case 'f':
			lit = '\f'
		case 'n':
			lit = '\n'
		case 'r':
			lit = '\r'
		case 't':
			lit = '\t'
		case 'u':
			s.escapeSeqLen = 2
			i++
			chunk = chunk[1:]
			return s.resumeUnicodeEscape(chunk, i)
		default:
			return i, InputError, fmt.Errorf("%w: unsupported escape \\%c", ErrSyntax, c)
		}
		s.out.AppendByte(lit)
		s.escapeSeqLen = 0
		s.unicodeEscapedValue = 0
		i++
		return i, Ready, nil
	}

	return s.resumeUnicodeEscape(chunk, i)
}

// resumeUnicodeEscape collects hex nibbles for a \uXXXX escape. base is the
// number of bytes of this chunk the caller already consumed: 1 for the 'u'
// when it arrived in this chunk, 0 when resuming after nibbles.
func (s *StringAccumulator) resumeUnicodeEscape(chunk []byte, base int) (int, Status, error) {
	i := base
	for s.escapeSeqLen < 6 {
		if len(chunk) == 0 {
			return i, NeedMore, nil
		}
		nibble, ok := hexNibble(chunk[0])
		if !ok {
			return i, InputError, fmt.Errorf("%w: invalid hex digit %q in \\u escape", ErrSyntax, chunk[0])
		}
		s.unicodeEscapedValue = (s.unicodeEscapedValue << 4) | nibble
		s.escapeSeqLen++
		i++
		chunk = chunk[1:]
	}

	appendUTF8(&s.out, s.unicodeEscapedValue)
	s.unicodeEscapedValue = 0
	s.escapeSeqLen = 0
	return i, Ready, nil
}

// Result returns the decoded bytes. Valid until the next Feed call.
func (s *StringAccumulator) Result() []byte {
	return s.out.Bytes()
}
