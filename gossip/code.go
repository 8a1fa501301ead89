package gossip

// Code is the tag byte that selects a message variant on the wire.
type Code uint8

const ( // values are fixed by the wire format
	PingCode        Code = iota // "here are peers I know"
	RequestPostCode             // "send me the post with this hash"
	SharePostCode               // "here is a post"
)

var codeStrings = map[Code]string{
	PingCode:        "Ping",
	RequestPostCode: "RequestPost",
	SharePostCode:   "SharePost",
}

func (c Code) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return "Unknown"
}

// Known reports whether c selects one of the message variants.
func (c Code) Known() bool {
	_, ok := codeStrings[c]
	return ok
}
