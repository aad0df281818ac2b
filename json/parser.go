package json

import "fmt"

// ValueParser is the top-level dispatcher: it looks at the first byte of
// a value to decide which kind of value (string, number, or one of the
// true/false/null literals) it is parsing, then delegates to the matching
// accumulator.
//
// A ValueParser handles exactly one value; create a new one (or call
// Reset) to parse the next.
type ValueParser struct {
	typ Type

	str       *StringAccumulator
	strClosed bool // inner string content decoded; still need the closing quote

	num *NumberAccumulator

	literalExpected string // remaining expected tail of true/false/null
}

// NewValueParser returns a parser ready to receive the first byte of a
// value.
func NewValueParser() *ValueParser {
	return &ValueParser{}
}

// Reset returns the parser to its initial state so it can parse another
// value.
func (v *ValueParser) Reset() {
	*v = ValueParser{}
}

// Type reports which kind of value has been (or is being) parsed. It is
// None until the first byte has been dispatched.
func (v *ValueParser) Type() Type {
	return v.typ
}

// Feed consumes a prefix of chunk and advances the parser. See Status for
// the meaning of the returned code.
func (v *ValueParser) Feed(chunk []byte) (int, Status, error) {
	assertNonEmpty(chunk)
	i := 0

	if v.typ == None {
		switch c := chunk[0]; {
		case c == '"':
			v.typ = String
			v.str = NewStringAccumulator()
			i = 1
			chunk = chunk[1:]
		case c == '-' || isDigit(c):
			v.typ = Number
			v.num = NewNumberAccumulator()
		case c == 't':
			v.typ = True
			v.literalExpected = "rue"
			i = 1
			chunk = chunk[1:]
		case c == 'f':
			v.typ = False
			v.literalExpected = "alse"
			i = 1
			chunk = chunk[1:]
		case c == 'n':
			v.typ = Null
			v.literalExpected = "ull"
			i = 1
			chunk = chunk[1:]
		default:
			return 0, InputError, fmt.Errorf("%w: unexpected byte %q at start of value", ErrSyntax, c)
		}
	}

	switch v.typ {
	case String:
		consumed, status, err := v.feedString(chunk)
		return i + consumed, status, err
	case Number:
		consumed, status, err := v.num.Feed(chunk)
		return i + consumed, status, err
	case True, False, Null:
		consumed, status, err := v.feedLiteral(chunk)
		return i + consumed, status, err
	default:
		// Not reached: the dispatch above always sets typ. A chunk that was
		// only the first byte of a value reaches its sub-parser with an
		// empty remainder, and that sub-parser reports NeedMore.
		return i, NeedMore, nil
	}
}

// feedString drives the inner StringAccumulator and then, once its content
// is Ready, additionally consumes the closing quote -- the value parser's
// job, not the string accumulator's.
func (v *ValueParser) feedString(chunk []byte) (int, Status, error) {
	i := 0
	for {
		if v.strClosed {
			if len(chunk) == 0 {
				return i, NeedMore, nil
			}
			// chunk[0] is guaranteed to be '"': the only way Feed leaves
			// bytes unconsumed after the string accumulator reaches Ready
			// is the terminating quote it deliberately left behind.
			i++
			return i, Ready, nil
		}
		if len(chunk) == 0 {
			return i, NeedMore, nil
		}
		consumed, status, err := v.str.Feed(chunk)
		i += consumed
		chunk = chunk[consumed:]
		if err != nil {
			return i, status, err
		}
		if status == NeedMore {
			return i, NeedMore, nil
		}
		// status is Ready, but the inner accumulator reaches Ready both
		// when it hits the closing '"' (leaving it unconsumed, so chunk
		// is non-empty here) and when it simply runs out of chunk with
		// no escape in flight (chunk is empty here). Only the former
		// means the string content is actually done; the latter is just
		// this chunk's content exhausted mid-string, so resume as
		// content on the next Feed call instead of latching closed.
		if len(chunk) == 0 {
			return i, NeedMore, nil
		}
		v.strClosed = true
	}
}

// feedLiteral walks the expected tail of true/false/null one byte at a
// time, across as many Feed calls as it takes.
func (v *ValueParser) feedLiteral(chunk []byte) (int, Status, error) {
	i := 0
	for len(chunk) > 0 && len(v.literalExpected) > 0 {
		want, got := v.literalExpected[0], chunk[0]
		if got != want {
			return i, InputError, fmt.Errorf("%w: expected %q got %q", ErrSyntax, want, got)
		}
		v.literalExpected = v.literalExpected[1:]
		chunk = chunk[1:]
		i++
	}
	if len(v.literalExpected) == 0 {
		return i, Ready, nil
	}
	return i, NeedMore, nil
}

// StringValue returns the decoded bytes of a String value. Valid after
// Feed has returned Ready and until the next Feed/Reset call.
func (v *ValueParser) StringValue() ([]byte, error) {
	if v.typ != String {
		return nil, fmt.Errorf("%w: StringValue called on a %v value", ErrType, v.typ)
	}
	return v.str.Result(), nil
}

// NumberValue decodes a Number value. See NumberAccumulator.Result for the
// overflow/range semantics.
func (v *ValueParser) NumberValue() (NumberResult, error) {
	if v.typ != Number {
		return NumberResult{}, fmt.Errorf("%w: NumberValue called on a %v value", ErrType, v.typ)
	}
	return v.num.Result()
}

// NumberText returns the as-written textual form of a Number value,
// regardless of whether Result would succeed -- useful for diagnostics on
// an overflowed or out-of-range number.
func (v *ValueParser) NumberText() ([]byte, error) {
	if v.typ != Number {
		return nil, fmt.Errorf("%w: NumberText called on a %v value", ErrType, v.typ)
	}
	return v.num.Text(), nil
}
