package inter

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// PostSize is the wire size of a post: prev and work Words followed by the body.
const PostSize = 2*WordSize + BodySize

// Post is one record of the hash chain.
//
// A post points at its predecessor by hash (prev), carries a producer-chosen
// work value used to satisfy a proof-of-work target, and an opaque body.
// Posts are immutable: fields are only set by NewPost and the accessors
// return copies.
type Post struct {
	prev Word
	work Word
	body Body
}

// NewPost builds a post from its three fields.
func NewPost(prev, work Word, body Body) Post {
	return Post{
		prev: prev,
		work: work,
		body: body,
	}
}

// Genesis returns the root post carrying body. Its prev and work are zero,
// so its hash is zero.
func Genesis(body Body) Post {
	return Post{body: body}
}

// Prev returns the hash of the preceding post (zero for genesis).
func (p Post) Prev() Word {
	return p.prev
}

// Work returns the work value.
func (p Post) Work() Word {
	return p.work
}

// Body returns a copy of the payload.
func (p Post) Body() Body {
	return p.body
}

// IsGenesis reports whether p is the distinguished root post.
func (p Post) IsGenesis() bool {
	return p.prev.IsZero() && p.work.IsZero()
}

// Hash returns the post's content-addressed identity.
//
// The genesis post hashes to zero by definition. Any other post hashes to the
// Keccak-256 of its wire encoding, read as a little-endian Word.
func (p Post) Hash() Word {
	if p.IsGenesis() {
		return Word{}
	}
	var digest [WordSize]byte
	copy(digest[:], crypto.Keccak256(p.bytes()))
	return WordFromLittleEndian(digest)
}

// Score returns the proof-of-work score of the post's hash.
func (p Post) Score() Word {
	return Score(p.Hash())
}

// bytes is the wire encoding. Post encoding cannot fail.
func (p Post) bytes() []byte {
	raw, _ := p.MarshalBinary()
	return raw
}
