package inter

import (
	"fmt"

	"github.com/rony4d/go-postchain/utils/wire"
)

// MarshalWire writes prev, work and body in that order.
//
// Layout: prev(32) || work(32) || body(BodySize)
func (p Post) MarshalWire(w *wire.Writer) error {
	WriteWord(w, p.prev)
	WriteWord(w, p.work)
	w.FixedBytes(p.body[:])
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p Post) MarshalBinary() ([]byte, error) {
	return wire.Marshal(p, PostSize)
}

// ReadPost decodes one post from r. On failure the zero Post is returned and
// the error names the field that ran short.
func ReadPost(r *wire.Reader) (Post, error) {
	prev, err := ReadWord(r)
	if err != nil {
		return Post{}, fmt.Errorf("post prev: %w", err)
	}
	work, err := ReadWord(r)
	if err != nil {
		return Post{}, fmt.Errorf("post work: %w", err)
	}
	var body Body
	if err := r.FixedBytes(body[:]); err != nil {
		return Post{}, fmt.Errorf("post body: %w", err)
	}
	return NewPost(prev, work, body), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. raw must hold
// exactly one post.
func (p *Post) UnmarshalBinary(raw []byte) error {
	return wire.UnmarshalBinaryAdapter(raw, func(r *wire.Reader) error {
		post, err := ReadPost(r)
		if err != nil {
			return err
		}
		*p = post
		return nil
	})
}
