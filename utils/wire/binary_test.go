package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	a uint8
	b uint16
}

func (p pair) MarshalWire(w *Writer) error {
	w.U8(p.a)
	w.U16(p.b)
	return nil
}

func (p *pair) unmarshalWire(r *Reader) (err error) {
	if p.a, err = r.U8(); err != nil {
		return err
	}
	p.b, err = r.U16()
	return err
}

// TestEmpty verifies adapters on encoders and decoders that do nothing.
func TestEmpty(t *testing.T) {
	buf, err := MarshalBinaryAdapter(0, func(w *Writer) error {
		return nil
	})
	require.NoError(t, err)
	require.Empty(t, buf)

	err = UnmarshalBinaryAdapter(buf, func(r *Reader) error {
		return nil
	})
	require.NoError(t, err)
}

// TestErr verifies that callback errors propagate and suppress output.
func TestErr(t *testing.T) {
	errExp := errors.New("custom")

	t.Run("Write", func(t *testing.T) {
		buf, err := MarshalBinaryAdapter(8, func(w *Writer) error {
			w.U8(1)
			return errExp
		})
		require.Equal(t, errExp, err)
		require.Nil(t, buf)
	})

	t.Run("Read", func(t *testing.T) {
		n, err := DecodePrefix([]byte{1, 2, 3}, func(r *Reader) error {
			_, _ = r.U8()
			return errExp
		})
		require.Equal(t, errExp, err)
		require.Equal(t, 0, n)
	})
}

// TestDecodePrefix checks that the remainder after a value is left alone.
func TestDecodePrefix(t *testing.T) {
	require := require.New(t)

	raw, err := Marshal(pair{a: 7, b: 0x0102}, 3)
	require.NoError(err)
	require.Equal([]byte{7, 0x02, 0x01}, raw)

	stream := append(raw, 0xAA, 0xBB)

	var got pair
	n, err := DecodePrefix(stream, got.unmarshalWire)
	require.NoError(err)
	require.Equal(3, n)
	require.Equal(pair{a: 7, b: 0x0102}, got)
	require.Equal([]byte{0xAA, 0xBB}, stream[n:])
}

// TestUnmarshalStrict checks trailing and missing input.
func TestUnmarshalStrict(t *testing.T) {
	var got pair

	err := UnmarshalBinaryAdapter([]byte{7, 2, 1, 0}, got.unmarshalWire)
	require.Equal(t, ErrTrailingBytes, err)

	err = UnmarshalBinaryAdapter([]byte{7, 2}, got.unmarshalWire)
	require.Equal(t, ErrUnexpectedEnd, err)

	err = UnmarshalBinaryAdapter([]byte{7, 2, 1}, got.unmarshalWire)
	require.NoError(t, err)
	require.Equal(t, pair{a: 7, b: 0x0102}, got)
}
