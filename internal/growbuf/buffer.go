// Package growbuf implements the growable byte buffer primitive shared by
// the json accumulators and the streamio line reader: owned storage,
// insertion order preserved, append-at-back plus discard-at-front and
// discard-at-back, and a read-only view of whatever is currently live.
package growbuf

// Buffer owns a contiguous byte region. The zero value is an empty,
// immediately usable buffer.
type Buffer struct {
	data []byte
}

// Append copies p onto the back of the buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// AppendByte appends a single byte. Equivalent to Append of a 1-byte slice,
// spelled out separately since the JSON accumulators append one byte at a
// time far more often than they append runs.
func (b *Buffer) AppendByte(c byte) {
	b.data = append(b.data, c)
}

// Bytes returns the live region as a read-only segment. The segment is
// valid only until the next call that mutates the buffer (Append,
// DiscardFront, DiscardBack, Reset): a later append may reallocate the
// backing array.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len reports the number of live bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// DiscardFront removes the first n bytes of the live region. Panics if n
// exceeds the current length: that is a caller bookkeeping error, not a
// recoverable input condition.
func (b *Buffer) DiscardFront(n int) {
	if n < 0 || n > len(b.data) {
		panic("growbuf: DiscardFront out of range")
	}
	if n == 0 {
		return
	}
	b.data = append(b.data[:0], b.data[n:]...)
}

// DiscardBack removes the last n bytes of the live region.
func (b *Buffer) DiscardBack(n int) {
	if n < 0 || n > len(b.data) {
		panic("growbuf: DiscardBack out of range")
	}
	b.data = b.data[:len(b.data)-n]
}

// Reset empties the buffer without releasing the backing array, so the
// next lifecycle of appends can reuse the capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// String is a convenience accessor for callers that need the live region
// as a string (e.g. to hand to strconv). It copies.
func (b *Buffer) String() string {
	return string(b.data)
}
