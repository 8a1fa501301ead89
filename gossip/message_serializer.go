package gossip

import (
	"fmt"

	"github.com/rony4d/go-postchain/inter"
	"github.com/rony4d/go-postchain/inter/netaddr"
	"github.com/rony4d/go-postchain/utils/wire"
)

// Wire sizes of each variant, tag byte included.
const (
	RequestPostSize = 1 + inter.WordSize
	SharePostSize   = 1 + inter.PostSize
)

// PingSize returns the wire size of a ping listing n peers.
func PingSize(n int) int {
	return 1 + netaddr.ListSize(n)
}

// Size returns the wire size of m, or 0 for nil messages.
func Size(m Message) int {
	if isNil(m) {
		return 0
	}
	switch m := m.(type) {
	case *Ping:
		return PingSize(len(m.Peers))
	case *RequestPost:
		return RequestPostSize
	case *SharePost:
		return SharePostSize
	}
	return 0
}

// WriteMessage writes the tag byte and then the variant payload. On error
// nothing has been written to w.
func WriteMessage(w *wire.Writer, m Message) error {
	if isNil(m) {
		return fmt.Errorf("%w: nil message", ErrUnhandled)
	}
	switch m := m.(type) {
	case *Ping:
		if err := m.Peers.Validate(); err != nil {
			return fmt.Errorf("%s: %w", PingCode, err)
		}
		w.U8(uint8(PingCode))
		return m.Peers.MarshalWire(w)
	case *RequestPost:
		w.U8(uint8(RequestPostCode))
		inter.WriteWord(w, m.Hash)
		return nil
	case *SharePost:
		w.U8(uint8(SharePostCode))
		return m.Post.MarshalWire(w)
	}
	return fmt.Errorf("%w: message type %T", wire.ErrInvalidDiscriminant, m)
}

// EncodeMessage returns the wire encoding of m.
func EncodeMessage(m Message) ([]byte, error) {
	return wire.MarshalBinaryAdapter(Size(m), func(w *wire.Writer) error {
		return WriteMessage(w, m)
	})
}

// ReadMessage reads the tag byte and decodes the matching payload.
// Unknown tags fail with wire.ErrInvalidDiscriminant.
func ReadMessage(r *wire.Reader) (Message, error) {
	tag, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("message code: %w", err)
	}
	switch code := Code(tag); code {
	case PingCode:
		peers, err := netaddr.ReadList(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		return &Ping{Peers: peers}, nil
	case RequestPostCode:
		hash, err := inter.ReadWord(r)
		if err != nil {
			return nil, fmt.Errorf("%s hash: %w", code, err)
		}
		return &RequestPost{Hash: hash}, nil
	case SharePostCode:
		post, err := inter.ReadPost(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		return &SharePost{Post: post}, nil
	default:
		return nil, fmt.Errorf("%w: message code %d", wire.ErrInvalidDiscriminant, tag)
	}
}

// DecodeMessage decodes one message from the head of raw and returns the
// number of bytes it used. Anything after the message is left to the caller.
func DecodeMessage(raw []byte) (Message, int, error) {
	var m Message
	n, err := wire.DecodePrefix(raw, func(r *wire.Reader) (err error) {
		m, err = ReadMessage(r)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return m, n, nil
}

// UnmarshalMessage decodes raw, which must hold exactly one message.
func UnmarshalMessage(raw []byte) (Message, error) {
	var m Message
	err := wire.UnmarshalBinaryAdapter(raw, func(r *wire.Reader) (err error) {
		m, err = ReadMessage(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
