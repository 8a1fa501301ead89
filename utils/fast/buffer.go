package fast

// buffer.go provides a lightweight, non-thread-safe wrapper around byte slices.
//
// Purpose:
// - Linear serialization only ever appends (Writer) or advances a cursor (Reader),
//   so bytes.Buffer and bufio are more machinery than the wire codec needs.
// - Unlike a raw slice expression, the Reader never reads past the end of its
//   buffer: a short read returns ErrUnexpectedEnd and leaves the cursor where it was.

import "errors"

// ErrUnexpectedEnd is returned when a read asks for more bytes than remain.
var ErrUnexpectedEnd = errors.New("unexpected end of buffer")

type Reader struct {
	// buf is the underlying data source.
	buf []byte
	// offset tracks the current reading position (cursor).
	offset int
}

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewReader creates a Reader to consume the provided byte slice.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with `make([]byte, 0, capacity)` to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends a slice of bytes (bulk write) to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Len returns the number of bytes written so far.
func (b *Writer) Len() int {
	return len(b.buf)
}

// Read consumes and returns the next 'n' bytes from the buffer.
//
// If fewer than n bytes remain, nothing is consumed and ErrUnexpectedEnd is returned.
//
// Note: It returns a slice that *shares memory* with the original buffer.
// Callers that keep the bytes past the lifetime of the source must copy them.
func (b *Reader) Read(n int) ([]byte, error) {
	if n < 0 || n > b.Remaining() {
		return nil, ErrUnexpectedEnd
	}
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res, nil
}

// ReadByte consumes and returns a single byte.
func (b *Reader) ReadByte() (byte, error) {
	if b.Empty() {
		return 0, ErrUnexpectedEnd
	}
	res := b.buf[b.offset]
	b.offset++
	return res, nil
}

// Position returns the current cursor index of the Reader.
// Useful for determining how many bytes have been consumed.
func (b *Reader) Position() int {
	return b.offset
}

// Remaining returns the number of unread bytes.
func (b *Reader) Remaining() int {
	return len(b.buf) - b.offset
}

// Rest returns the unread tail of the buffer without consuming it.
func (b *Reader) Rest() []byte {
	return b.buf[b.offset:]
}

// Bytes returns the entire underlying buffer of the Reader.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty checks if the Reader has reached the end of the buffer.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
