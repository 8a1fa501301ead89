package wire

// binary.go bridges the field-level Writer/Reader and plain byte slices.
//
// The adapters own buffer setup and the end-of-input policy so that value
// codecs only describe their fields:
//   - MarshalBinaryAdapter: run an encoder, return its bytes.
//   - DecodePrefix: decode from the head of a slice, report how much was used.
//   - UnmarshalBinaryAdapter: decode a slice that must hold exactly one value.

// MarshalBinaryAdapter runs marshal against a fresh writer and returns the
// produced bytes. sizeHint pre-allocates the output and may be 0.
// On error no bytes are returned.
func MarshalBinaryAdapter(sizeHint int, marshal func(*Writer) error) ([]byte, error) {
	w := NewWriter(sizeHint)
	if err := marshal(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Marshal encodes a single Marshaler.
func Marshal(v Marshaler, sizeHint int) ([]byte, error) {
	return MarshalBinaryAdapter(sizeHint, v.MarshalWire)
}

// DecodePrefix runs unmarshal over the head of raw and returns the number of
// bytes it consumed. Bytes after the decoded value are left untouched.
// On error consumed is 0: a failed decode never yields a partial value.
func DecodePrefix(raw []byte, unmarshal func(*Reader) error) (consumed int, err error) {
	r := NewReader(raw)
	if err = unmarshal(r); err != nil {
		return 0, err
	}
	return r.Position(), nil
}

// UnmarshalBinaryAdapter is DecodePrefix for inputs that must contain exactly
// one value. Leftover input fails with ErrTrailingBytes.
func UnmarshalBinaryAdapter(raw []byte, unmarshal func(*Reader) error) error {
	n, err := DecodePrefix(raw, unmarshal)
	if err != nil {
		return err
	}
	if n != len(raw) {
		return ErrTrailingBytes
	}
	return nil
}
