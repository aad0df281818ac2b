package json

import (
	"fmt"
	"math"
	"strconv"

	"github.com/stojanovski/bueno/internal/growbuf"
)

// NumberKind classifies the textual form a NumberAccumulator has seen.
type NumberKind int

const (
	// Integer means no '.', 'e' or 'E' has appeared yet (or ever, for a
	// whole number like "42"); the value is available as an int64.
	Integer NumberKind = iota
	// Floating means a decimal point or exponent was seen; the value is
	// available as a float64.
	Floating
)

func (k NumberKind) String() string {
	if k == Floating {
		return "floating"
	}
	return "integer"
}

// NumberResult is the fully decoded value of a NumberAccumulator once it
// has reached Ready.
type NumberResult struct {
	Kind  NumberKind
	Int   int64
	Float float64
}

// numberState names the grammar boundary a NumberAccumulator is sitting
// at. Expressed as a plain enum with explicit dispatch in Feed, rather
// than the computed-goto style of the C source.
type numberState int

const (
	numInit numberState = iota
	numGotNegative
	numGotZero
	numGotNonzero
	numGotSeparator
	numGotFractionDigit
	numGotExponent
	numGotExpSign
	numGotExpDigit
)

// NumberAccumulator incrementally parses the JSON number grammar
// [-]?(0|[1-9][0-9]*)([.][0-9]+)?([eE][+-]?[0-9]+)?
//
// It tracks the integer magnitude in parallel with the textual form for as
// long as the value looks like a whole number, so that the common case
// (small integers) never needs a strconv round trip.
type NumberAccumulator struct {
	state    numberState
	kind     NumberKind
	text     growbuf.Buffer
	intValue uint64
	overflow bool
	negative bool
}

// NewNumberAccumulator returns an accumulator ready to parse a number
// starting at its very first byte ('-' or a digit).
func NewNumberAccumulator() *NumberAccumulator {
	return &NumberAccumulator{}
}

func isDigit(c byte) bool        { return c >= '0' && c <= '9' }
func isNonZeroDigit(c byte) bool { return c >= '1' && c <= '9' }

// accumulateDigit folds one more decimal digit into the running int64
// magnitude, latching overflow once the magnitude can no longer be
// represented. int_negative numbers may legally reach exactly 2^63 (the
// magnitude of math.MinInt64); anything larger overflows.
func (n *NumberAccumulator) accumulateDigit(c byte) {
	if n.overflow {
		return
	}
	d := uint64(c - '0')
	if n.intValue > (math.MaxUint64-d)/10 {
		n.overflow = true
		return
	}
	next := n.intValue*10 + d

	// Positive magnitudes may reach 2^63-1 (math.MaxInt64); negative
	// magnitudes may additionally reach exactly 2^63, representing
	// math.MinInt64. Anything larger overflows.
	limit := uint64(math.MaxInt64)
	if n.negative {
		limit = 1 << 63
	}
	if next > limit {
		n.overflow = true
		return
	}
	n.intValue = next
}

func (n *NumberAccumulator) errUnexpected(c byte) error {
	return fmt.Errorf("%w: unexpected byte %q in number", ErrSyntax, c)
}

// pendingStatus reports the status to return when a chunk is exhausted
// without reaching a decisive terminator: Ready in states where the text so
// far is already a complete number (a later byte may still extend it),
// NeedMore in states where the grammar demands a specific continuation.
func pendingStatus(s numberState) Status {
	switch s {
	case numGotZero, numGotNonzero, numGotFractionDigit, numGotExpDigit:
		return Ready
	default:
		return NeedMore
	}
}

// Feed consumes a prefix of chunk, returning how many bytes were consumed
// and the resulting Status. On InputError the offending byte is left
// unconsumed.
func (n *NumberAccumulator) Feed(chunk []byte) (int, Status, error) {
	assertNonEmpty(chunk)
	i := 0
	for i < len(chunk) {
		switch n.state {
		case numInit:
			c := chunk[i]
			switch {
			case c == '0':
				n.text.AppendByte(c)
				i++
				n.state = numGotZero
			case c == '-':
				n.negative = true
				n.text.AppendByte(c)
				i++
				n.state = numGotNegative
			case isNonZeroDigit(c):
				n.intValue = uint64(c - '0')
				n.text.AppendByte(c)
				i++
				n.state = numGotNonzero
			default:
				return i, InputError, n.errUnexpected(c)
			}

		case numGotNegative:
			c := chunk[i]
			switch {
			case c == '0':
				n.text.AppendByte(c)
				i++
				n.state = numGotZero
			case isNonZeroDigit(c):
				n.accumulateDigit(c)
				n.text.AppendByte(c)
				i++
				n.state = numGotNonzero
			default:
				return i, InputError, n.errUnexpected(c)
			}

		case numGotZero:
			c := chunk[i]
			switch c {
			case '.':
				n.kind = Floating
				n.text.AppendByte('.')
				i++
				n.state = numGotSeparator
			case 'e', 'E':
				n.kind = Floating
				n.text.AppendByte('e')
				i++
				n.state = numGotExponent
			default:
				return i, Ready, nil
			}

		case numGotNonzero:
			start := i
			for i < len(chunk) && isDigit(chunk[i]) {
				n.accumulateDigit(chunk[i])
				i++
			}
			if i > start {
				n.text.Append(chunk[start:i])
			}
			if i == len(chunk) {
				break
			}
			switch chunk[i] {
			case '.':
				n.kind = Floating
				n.text.AppendByte('.')
				i++
				n.state = numGotSeparator
			case 'e', 'E':
				n.kind = Floating
				n.text.AppendByte('e')
				i++
				n.state = numGotExponent
			default:
				return i, Ready, nil
			}

		case numGotSeparator:
			c := chunk[i]
			if !isDigit(c) {
				return i, InputError, n.errUnexpected(c)
			}
			n.text.AppendByte(c)
			i++
			n.state = numGotFractionDigit

		case numGotFractionDigit:
			start := i
			for i < len(chunk) && isDigit(chunk[i]) {
				i++
			}
			if i > start {
				n.text.Append(chunk[start:i])
			}
			if i == len(chunk) {
				break
			}
			if c := chunk[i]; c == 'e' || c == 'E' {
				n.text.AppendByte('e')
				i++
				n.state = numGotExponent
			} else {
				return i, Ready, nil
			}

		case numGotExponent:
			c := chunk[i]
			switch {
			case c == '+' || c == '-':
				n.text.AppendByte(c)
				i++
				n.state = numGotExpSign
			case isDigit(c):
				n.text.AppendByte(c)
				i++
				n.state = numGotExpDigit
			default:
				return i, InputError, n.errUnexpected(c)
			}

		case numGotExpSign:
			c := chunk[i]
			if !isDigit(c) {
				return i, InputError, n.errUnexpected(c)
			}
			n.text.AppendByte(c)
			i++
			n.state = numGotExpDigit

		case numGotExpDigit:
			start := i
			for i < len(chunk) && isDigit(chunk[i]) {
				i++
			}
			if i > start {
				n.text.Append(chunk[start:i])
			}
			return i, Ready, nil
		}
	}
	return i, pendingStatus(n.state), nil
}

// Text returns the as-written textual form accumulated so far, valid
// until the next Feed call.
func (n *NumberAccumulator) Text() []byte {
	return n.text.Bytes()
}

// Result decodes the accumulated text into a NumberResult. Integer
// overflow or a float that strconv can't represent both elevate to
// InputError via ErrRange; the partial text remains available via Text
// for diagnostics.
func (n *NumberAccumulator) Result() (NumberResult, error) {
	if n.kind == Integer {
		if n.overflow {
			return NumberResult{Kind: Integer}, fmt.Errorf("%w: integer magnitude exceeds int64", ErrRange)
		}
		v := int64(n.intValue)
		if n.negative {
			v = -v
		}
		return NumberResult{Kind: Integer, Int: v}, nil
	}

	f, err := strconv.ParseFloat(n.text.String(), 64)
	if err != nil {
		return NumberResult{Kind: Floating}, fmt.Errorf("%w: %v", ErrRange, err)
	}
	return NumberResult{Kind: Floating, Float: f}, nil
}
