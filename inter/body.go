package inter

import (
	"errors"
	"fmt"
)

// BodySize is the fixed payload size of every post. It is part of the wire
// protocol: nodes built with a different BodySize speak a different protocol
// version and cannot decode each other's posts.
const BodySize = 1024

// ErrBodySize is returned when a payload is not exactly BodySize bytes.
var ErrBodySize = errors.New("post body must be exactly BodySize bytes")

// Body is the opaque application payload carried by a post.
type Body [BodySize]byte

// BodyFromBytes copies b into a Body. b must be exactly BodySize bytes long;
// shorter or longer input is rejected rather than padded or truncated.
func BodyFromBytes(b []byte) (Body, error) {
	var body Body
	if len(b) != BodySize {
		return body, fmt.Errorf("%w: got %d", ErrBodySize, len(b))
	}
	copy(body[:], b)
	return body, nil
}

// FilledBody returns a body with every byte set to v.
func FilledBody(v byte) Body {
	var body Body
	for i := range body {
		body[i] = v
	}
	return body
}
