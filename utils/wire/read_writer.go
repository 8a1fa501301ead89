/*
Package wire implements the byte codec every post chain value is built on.

Values are written field by field, in declaration order, into a flat byte stream.
There is no framing, no padding and no self-description beyond what a type
writes itself: fixed-size fields have a constant width and collections carry a
one-byte element count. Decoding consumes exactly the bytes a value needs and
stops at the first failing field.
*/
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rony4d/go-postchain/utils/fast"
)

// Standard errors for encoding validation.
var (
	// ErrUnexpectedEnd means the source ran out before a field was fully read.
	ErrUnexpectedEnd = fast.ErrUnexpectedEnd
	// ErrInvalidDiscriminant means a tag byte matched no known variant.
	ErrInvalidDiscriminant = errors.New("invalid discriminant: tag matches no known variant")
	// ErrSizeExceeded means a count-prefixed collection holds more than MaxCount elements.
	ErrSizeExceeded = errors.New("size exceeded: collection longer than one-byte count allows")
	// ErrTrailingBytes means a strict decode finished with unread input left over.
	ErrTrailingBytes = errors.New("trailing bytes after encoded value")
)

// MaxCount is the largest element count a one-byte count prefix can carry.
const MaxCount = 0xff

// Marshaler is implemented by every value with a wire encoding.
type Marshaler interface {
	MarshalWire(w *Writer) error
}

// Writer appends typed fields to a byte stream.
type Writer struct {
	BytesW *fast.Writer
}

// Reader consumes typed fields from a byte stream.
type Reader struct {
	BytesR *fast.Reader
}

// NewWriter creates a ready-to-use writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{
		BytesW: fast.NewWriter(make([]byte, 0, sizeHint)),
	}
}

// NewReader creates a reader over raw. The reader does not copy raw.
func NewReader(raw []byte) *Reader {
	return &Reader{
		BytesR: fast.NewReader(raw),
	}
}

// U8 writes a single byte.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

func (r *Reader) U8() (uint8, error) {
	return r.BytesR.ReadByte()
}

// U16 writes a uint16 as 2 little-endian bytes.
func (w *Writer) U16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.BytesW.Write(buf[:])
}

func (r *Reader) U16() (uint16, error) {
	buf, err := r.BytesR.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// FixedBytes writes v verbatim. The reader must know len(v) up front.
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Write(v)
}

// FixedBytes fills v completely or fails without copying anything.
func (r *Reader) FixedBytes(v []byte) error {
	buf, err := r.BytesR.Read(len(v))
	if err != nil {
		return err
	}
	copy(v, buf)
	return nil
}

// Count writes a one-byte collection length.
// Lengths above MaxCount are rejected before anything is written.
func (w *Writer) Count(n int) error {
	if n < 0 || n > MaxCount {
		return fmt.Errorf("%w: %d elements", ErrSizeExceeded, n)
	}
	w.U8(uint8(n))
	return nil
}

func (r *Reader) Count() (int, error) {
	n, err := r.U8()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Position returns the number of bytes consumed so far.
func (r *Reader) Position() int {
	return r.BytesR.Position()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.BytesW.Len()
}

// Bytes returns the encoded stream.
func (w *Writer) Bytes() []byte {
	return w.BytesW.Bytes()
}
