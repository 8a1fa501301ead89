package netaddr

import (
	"fmt"

	"github.com/rony4d/go-postchain/utils/wire"
)

// MaxListLen is the most addresses a list can carry behind its one-byte count.
const MaxListLen = wire.MaxCount

// List is an ordered address list, encoded as count(1) || address[count].
type List []Address

// ListSize returns the wire size of a list of n addresses.
func ListSize(n int) int {
	return 1 + n*AddressSize
}

// Validate checks that l can be encoded: at most MaxListLen entries, each
// with a 4- or 16-byte IP.
func (l List) Validate() error {
	if len(l) > MaxListLen {
		return fmt.Errorf("address list: %w: %d > %d", wire.ErrSizeExceeded, len(l), MaxListLen)
	}
	for i, a := range l {
		if a.IP.To16() == nil {
			return fmt.Errorf("address list entry %d: %w: %d bytes", i, ErrInvalidIP, len(a.IP))
		}
	}
	return nil
}

// MarshalWire writes the count byte and each address in order. An invalid
// list fails before anything is written.
func (l List) MarshalWire(w *wire.Writer) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := w.Count(len(l)); err != nil {
		return fmt.Errorf("address list: %w", err)
	}
	for i, a := range l {
		if err := a.MarshalWire(w); err != nil {
			return fmt.Errorf("address list entry %d: %w", i, err)
		}
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (l List) MarshalBinary() ([]byte, error) {
	return wire.Marshal(l, ListSize(len(l)))
}

// ReadList reads the count byte and then exactly that many addresses.
func ReadList(r *wire.Reader) (List, error) {
	n, err := r.Count()
	if err != nil {
		return nil, fmt.Errorf("address list count: %w", err)
	}
	list := make(List, 0, n)
	for i := 0; i < n; i++ {
		a, err := ReadAddress(r)
		if err != nil {
			return nil, fmt.Errorf("address list entry %d of %d: %w", i, n, err)
		}
		list = append(list, a)
	}
	return list, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *List) UnmarshalBinary(raw []byte) error {
	return wire.UnmarshalBinaryAdapter(raw, func(r *wire.Reader) error {
		list, err := ReadList(r)
		if err != nil {
			return err
		}
		*l = list
		return nil
	})
}

// Equal reports whether both lists hold canonically equal addresses in the
// same order.
func (l List) Equal(o List) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if !l[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether a is in the list.
func (l List) Contains(a Address) bool {
	for _, b := range l {
		if a.Equal(b) {
			return true
		}
	}
	return false
}
