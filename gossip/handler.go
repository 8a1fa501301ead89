package gossip

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/rony4d/go-postchain/inter"
	"github.com/rony4d/go-postchain/inter/netaddr"
	"github.com/rony4d/go-postchain/protocol"
)

var (
	// ErrLowScore is returned for shared posts that miss the network's
	// proof-of-work target.
	ErrLowScore = errors.New("post score below network minimum")
	// ErrUnhandled is returned for nil messages and for Message
	// implementations outside this package.
	ErrUnhandled = errors.New("unhandled message")
)

// PostStore is the post storage the handler reads and writes.
type PostStore interface {
	Put(post inter.Post) (hash inter.Word, added bool, err error)
	Get(hash inter.Word) (inter.Post, error)
	Has(hash inter.Word) bool
}

// Handler reacts to decoded gossip messages. It owns no connections: the
// transport hands it one message at a time along with the sender's address
// and delivers whatever reply it returns. Handler is safe for concurrent use.
type Handler struct {
	rules   protocol.Rules
	posts   PostStore
	peers   *PeerBook
	metrics *Metrics
	logger  *log.Entry
}

// NewHandler wires a handler. A nil peers gets a book capped at
// rules.MaxKnownPeers and a nil metrics gets an unregistered set.
func NewHandler(rules protocol.Rules, posts PostStore, peers *PeerBook, metrics *Metrics) *Handler {
	if peers == nil {
		peers = NewPeerBook(rules.MaxKnownPeers)
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Handler{
		rules:   rules,
		posts:   posts,
		peers:   peers,
		metrics: metrics,
		logger:  packageLogger.WithFields(log.Fields{"subpack": "handler", "network": rules.Name}),
	}
}

// Peers returns the handler's peer book.
func (h *Handler) Peers() *PeerBook {
	return h.peers
}

// Ping builds an outgoing ping advertising known peers.
func (h *Handler) Ping(to netaddr.Address) *Ping {
	return &Ping{Peers: h.peers.Share(h.rules.PeerShareLimit, to)}
}

// Handle processes one message from a peer and returns the reply to send
// back, or nil when no reply is due.
func (h *Handler) Handle(from netaddr.Address, m Message) (Message, error) {
	if isNil(m) {
		return nil, fmt.Errorf("%w: nil message", ErrUnhandled)
	}
	h.metrics.Received.WithLabelValues(m.Code().String()).Inc()
	logger := LogEntry(m).WithField("from", from.String())
	logger.Debug("message received")

	var (
		reply Message
		err   error
	)
	switch m := m.(type) {
	case *Ping:
		reply = h.handlePing(from, m)
	case *RequestPost:
		reply, err = h.handleRequestPost(m)
	case *SharePost:
		reply, err = h.handleSharePost(m)
	default:
		err = fmt.Errorf("%w: message type %T", ErrUnhandled, m)
	}
	if err != nil {
		logger.WithError(err).Info("message refused")
		return nil, err
	}
	if reply != nil {
		h.metrics.Sent.WithLabelValues(reply.Code().String()).Inc()
		LogEntry(reply).WithField("to", from.String()).Debug("reply")
	}
	return reply, nil
}

// HandleRaw decodes one message, handles it and encodes the reply. A nil
// reply slice means nothing is to be sent.
func (h *Handler) HandleRaw(from netaddr.Address, raw []byte) ([]byte, error) {
	m, err := UnmarshalMessage(raw)
	if err != nil {
		h.metrics.Invalid.Inc()
		h.logger.WithError(err).WithFields(log.Fields{"from": from.String(), "length": len(raw)}).Warn("invalid message")
		return nil, err
	}
	reply, err := h.Handle(from, m)
	if err != nil || reply == nil {
		return nil, err
	}
	return EncodeMessage(reply)
}

func (h *Handler) handlePing(from netaddr.Address, m *Ping) Message {
	added := 0
	for _, addr := range m.Peers {
		if h.peers.Add(addr, from) {
			added++
		}
	}
	if h.peers.Add(from, from) {
		added++
	}
	h.metrics.KnownPeers.Set(float64(h.peers.Len()))
	if added < len(m.Peers) && h.peers.Full() {
		h.logger.WithFields(log.Fields{"from": from.String(), "known": h.peers.Len()}).Debug("peer book full")
	}
	if added > 0 {
		h.logger.WithFields(log.Fields{"from": from.String(), "new": added, "known": h.peers.Len()}).Debug("peers learned")
	}
	return h.Ping(from)
}

func (h *Handler) handleRequestPost(m *RequestPost) (Message, error) {
	if !h.posts.Has(m.Hash) {
		return nil, nil
	}
	post, err := h.posts.Get(m.Hash)
	if err != nil {
		return nil, err
	}
	return &SharePost{Post: post}, nil
}

func (h *Handler) handleSharePost(m *SharePost) (Message, error) {
	post := m.Post
	if !h.rules.Admits(post) {
		h.metrics.PostsRejected.Inc()
		return nil, fmt.Errorf("%w: post %s", ErrLowScore, inter.WordHex(post.Hash()))
	}
	hash, added, err := h.posts.Put(post)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, nil
	}
	h.metrics.PostsStored.Inc()
	h.logger.WithField("hash", inter.WordHex(hash)).Debug("post stored")

	if post.IsGenesis() || h.posts.Has(post.Prev()) {
		return nil, nil
	}
	h.metrics.PostsMissing.Inc()
	return &RequestPost{Hash: post.Prev()}, nil
}
