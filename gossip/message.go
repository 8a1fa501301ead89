// Package gossip implements the peer gossip message protocol.
//
// Peers exchange three kinds of message: a Ping advertising known peer
// addresses, a RequestPost asking for a post by hash, and a SharePost
// carrying a post. Each message is a one-byte Code followed by the
// variant's payload, with no length framing.
package gossip

import (
	"github.com/rony4d/go-postchain/inter"
	"github.com/rony4d/go-postchain/inter/netaddr"
)

// Message is one of *Ping, *RequestPost or *SharePost.
type Message interface {
	Code() Code
	message()
}

// Ping advertises peer addresses known to the sender.
type Ping struct {
	Peers netaddr.List
}

// RequestPost asks the receiver for the post whose hash is Hash.
type RequestPost struct {
	Hash inter.Word
}

// SharePost delivers a post.
type SharePost struct {
	Post inter.Post
}

func (*Ping) Code() Code        { return PingCode }
func (*RequestPost) Code() Code { return RequestPostCode }
func (*SharePost) Code() Code   { return SharePostCode }

func (*Ping) message()        {}
func (*RequestPost) message() {}
func (*SharePost) message()   {}

// isNil reports whether m is nil or a nil pointer to one of the variants.
func isNil(m Message) bool {
	switch m := m.(type) {
	case nil:
		return true
	case *Ping:
		return m == nil
	case *RequestPost:
		return m == nil
	case *SharePost:
		return m == nil
	}
	return false
}
