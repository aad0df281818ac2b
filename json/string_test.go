package json

import (
	"errors"
	"fmt"
	"testing"
	"unicode/utf8"
)

// feedAllString drives acc with chunks of the given sizes (cyclically) and
// returns once Ready stops short of the end of a chunk (the closing quote
// left unconsumed) or on InputError. A Ready that merely exhausted the
// chunk means the content may continue, so feeding goes on.
func feedAllString(acc *StringAccumulator, input string, chunkSizes []int) (Status, error, int) {
	b := []byte(input)
	pos := 0
	sizeIdx := 0
	nextSize := func() int {
		if len(chunkSizes) == 0 {
			return 1
		}
		s := chunkSizes[sizeIdx%len(chunkSizes)]
		sizeIdx++
		return s
	}
	for pos < len(b) {
		end := pos + nextSize()
		if end > len(b) {
			end = len(b)
		}
		consumed, status, err := acc.Feed(b[pos:end])
		pos += consumed
		if status == InputError || (status == Ready && pos < end) {
			return status, err, pos
		}
	}
	return NeedMore, nil, pos
}

func TestStringScenario1(t *testing.T) {
	// "Ǆoǉ" -> C7 84 6F C7 89
	acc := NewStringAccumulator()
	status, err, _ := feedAllString(acc, `Ǆoǉ"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	want := []byte{0xC7, 0x84, 0x6F, 0xC7, 0x89}
	got := acc.Result()
	if string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
	if !utf8.Valid(got) {
		t.Fatalf("result is not valid UTF-8: % x", got)
	}
}

func TestStringScenario2(t *testing.T) {
	acc := NewStringAccumulator()
	status, err, _ := feedAllString(acc, `߿ࠀ￿"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	want := []byte{0xDF, 0xBF, 0xE0, 0xA0, 0x80, 0xEF, 0xBF, 0xBF, 0x7F, 0xC2, 0x80, 0x01}
	got := acc.Result()
	if string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestStringScenario1Escaped(t *testing.T) {
	// The actual JSON escape text for scenario 1 (as opposed to the
	// literal UTF-8 runes already exercised above): \u01c4o\u01c9 decodes
	// to the same C7 84 6F C7 89, but driven through the escape-decoding
	// path rather than verbatim byte copying.
	acc := NewStringAccumulator()
	status, err, _ := feedAllString(acc, `\u01c4o\u01c9"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	want := []byte{0xC7, 0x84, 0x6F, 0xC7, 0x89}
	got := acc.Result()
	if string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
	if !utf8.Valid(got) {
		t.Fatalf("result is not valid UTF-8: % x", got)
	}
}

func TestStringScenario2Escaped(t *testing.T) {
	// \u07ff\u0800\uffff\u007f\u0080\u0001, driven through the escape
	// path, covering all three UTF-8 byte-length tiers plus the boundary
	// values right at each tier's edge.
	acc := NewStringAccumulator()
	status, err, _ := feedAllString(acc, `\u07ff\u0800\uffff\u007f\u0080\u0001"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	want := []byte{0xDF, 0xBF, 0xE0, 0xA0, 0x80, 0xEF, 0xBF, 0xBF, 0x7F, 0xC2, 0x80, 0x01}
	got := acc.Result()
	if string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestStringScenario1EscapedUppercaseHex(t *testing.T) {
	// Hex digits in \uXXXX may be either case.
	acc := NewStringAccumulator()
	status, err, _ := feedAllString(acc, `\u01C4o\u01C9"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	want := []byte{0xC7, 0x84, 0x6F, 0xC7, 0x89}
	if got := acc.Result(); string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestStringUnpairedSurrogateEncodedRaw(t *testing.T) {
	// A lone high surrogate is explicitly out of scope for combining into
	// a single code point above U+FFFF: it is encoded as the raw 16-bit
	// value's 3-byte UTF-8 tier, producing a byte sequence that is not
	// itself valid UTF-8 for a surrogate. This is the documented Open
	// Question resolution, not a bug.
	acc := NewStringAccumulator()
	status, err, _ := feedAllString(acc, `\ud800"`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	want := []byte{0xED, 0xA0, 0x80}
	if got := acc.Result(); string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

// feedAllValue drives v with chunks of the given sizes (cyclically) and
// returns once a non-NeedMore status is reached. Quote detection (where
// the StringAccumulator's "Ready" actually means "done" versus merely
// "chunk exhausted mid-content") is the ValueParser's job, not the
// StringAccumulator's -- see feedString in parser.go -- so a chunking
// independence check over a full JSON value, closing quote included, is
// what actually exercises that boundary.
func feedAllValue(v *ValueParser, input string, chunkSizes []int) (Status, error, int) {
	b := []byte(input)
	pos := 0
	sizeIdx := 0
	nextSize := func() int {
		if len(chunkSizes) == 0 {
			return 1
		}
		s := chunkSizes[sizeIdx%len(chunkSizes)]
		sizeIdx++
		return s
	}
	for pos < len(b) {
		end := pos + nextSize()
		if end > len(b) {
			end = len(b)
		}
		consumed, status, err := v.Feed(b[pos:end])
		pos += consumed
		if status != NeedMore {
			return status, err, pos
		}
	}
	return NeedMore, nil, pos
}

func TestStringChunkingIndependence(t *testing.T) {
	inputs := []string{
		`"hello world"`,
		`"with \"escapes\" and \\ backslash"`,
		`"Ǆoǉ"`,
		`"tab\there"`,
		`"\/slash"`,
	}
	schedules := [][]int{{1}, {2}, {3}, {1000}}
	for _, in := range inputs {
		var results []string
		for _, sched := range schedules {
			v := NewValueParser()
			status, _, pos := feedAllValue(v, in, sched)
			var decoded string
			if status == Ready {
				s, _ := v.StringValue()
				decoded = string(s)
			}
			results = append(results, fmt.Sprintf("%v:%d:%s", status, pos, decoded))
		}
		for i := 1; i < len(results); i++ {
			if results[i] != results[0] {
				t.Errorf("input %q: schedule %v gave %q, schedule %v gave %q",
					in, schedules[i], results[i], schedules[0], results[0])
			}
		}
	}
}

func TestStringClosingQuoteUnconsumed(t *testing.T) {
	acc := NewStringAccumulator()
	input := []byte(`abc"def`)
	consumed, status, err := acc.Feed(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ready {
		t.Fatalf("expected Ready, got %v", status)
	}
	if consumed != 3 {
		t.Fatalf("expected 3 bytes consumed (up to but excluding the quote), got %d", consumed)
	}
	if string(acc.Result()) != "abc" {
		t.Fatalf("got %q", acc.Result())
	}
}

func TestStringUnsupportedEscape(t *testing.T) {
	acc := NewStringAccumulator()
	_, status, err := acc.Feed([]byte(`\q"`))
	if status != InputError {
		t.Fatalf("expected InputError, got %v", status)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
}

func TestStringInvalidHexDigit(t *testing.T) {
	acc := NewStringAccumulator()
	_, status, err := acc.Feed([]byte(`\u01zz"`))
	if status != InputError {
		t.Fatalf("expected InputError, got %v", status)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
}

func TestStringUnicodeEscapeSplitAtEveryByte(t *testing.T) {
	full := `\` + `u01c4"`
	for split := 1; split < len(full); split++ {
		t.Run(fmt.Sprintf("split-%d", split), func(t *testing.T) {
			acc := NewStringAccumulator()
			_, status1, err1 := acc.Feed([]byte(full[:split]))
			if err1 != nil {
				t.Fatalf("unexpected error on first half: %v", err1)
			}
			if status1 != NeedMore && status1 != Ready {
				t.Fatalf("unexpected status on first half: %v", status1)
			}
			if status1 == Ready {
				return
			}
			_, status2, err2 := acc.Feed([]byte(full[split:]))
			if err2 != nil {
				t.Fatalf("unexpected error on second half: %v", err2)
			}
			if status2 != Ready {
				t.Fatalf("expected Ready after full escape, got %v", status2)
			}
			want := []byte{0xC7, 0x84}
			if string(acc.Result()) != string(want) {
				t.Fatalf("got % x want % x", acc.Result(), want)
			}
		})
	}
}

func TestStringBackslashSplitAcrossChunks(t *testing.T) {
	acc := NewStringAccumulator()
	_, status1, err1 := acc.Feed([]byte(`\`))
	if err1 != nil || status1 != NeedMore {
		t.Fatalf("status=%v err=%v", status1, err1)
	}
	_, status2, err2 := acc.Feed([]byte(`n"`))
	if err2 != nil {
		t.Fatalf("unexpected error: %v", err2)
	}
	if status2 != Ready {
		t.Fatalf("expected Ready, got %v", status2)
	}
	if got := acc.Result(); string(got) != "\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStringEmptyChunkPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty chunk")
		}
	}()
	acc := NewStringAccumulator()
	acc.Feed(nil)
}
