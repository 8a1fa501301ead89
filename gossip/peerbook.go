package gossip

import (
	"sync"

	"github.com/rony4d/go-postchain/inter/netaddr"
)

// peerRecord is what the book remembers about one peer.
type peerRecord struct {
	Addr   netaddr.Address
	Source netaddr.Address // who told us about it
}

// PeerBook holds known peer addresses, managing them in a concurrency safe
// manner. Peers are kept in the order they were first heard of.
type PeerBook struct {
	mtx   sync.RWMutex
	limit int            // 0 = unbounded
	index map[string]int // canonical address -> position in list
	list  []peerRecord
}

// NewPeerBook initializes an empty peer book holding at most limit peers.
// A limit of 0 or less leaves the book unbounded.
func NewPeerBook(limit int) *PeerBook {
	if limit < 0 {
		limit = 0
	}
	pb := new(PeerBook)
	pb.limit = limit
	pb.index = make(map[string]int)
	return pb
}

// Add records addr as learned from source. It returns false if the peer was
// already known, addr has no IP, or the book is full.
func (pb *PeerBook) Add(addr, source netaddr.Address) bool {
	if addr.IP == nil {
		return false
	}
	addr = netaddr.New(addr.IP, addr.Port)
	key := addr.String()

	pb.mtx.Lock()
	defer pb.mtx.Unlock()
	if _, ok := pb.index[key]; ok {
		return false
	}
	if pb.limit > 0 && len(pb.list) >= pb.limit {
		return false
	}
	pb.index[key] = len(pb.list)
	pb.list = append(pb.list, peerRecord{Addr: addr, Source: source})
	return true
}

// Known reports whether addr is in the book.
func (pb *PeerBook) Known(addr netaddr.Address) bool {
	if addr.IP == nil {
		return false
	}
	pb.mtx.RLock()
	defer pb.mtx.RUnlock()
	_, ok := pb.index[netaddr.New(addr.IP, addr.Port).String()]
	return ok
}

// Source returns the peer that advertised addr.
func (pb *PeerBook) Source(addr netaddr.Address) (netaddr.Address, bool) {
	if addr.IP == nil {
		return netaddr.Address{}, false
	}
	pb.mtx.RLock()
	defer pb.mtx.RUnlock()
	i, ok := pb.index[netaddr.New(addr.IP, addr.Port).String()]
	if !ok {
		return netaddr.Address{}, false
	}
	return pb.list[i].Source, true
}

// Full reports whether the book has reached its limit.
func (pb *PeerBook) Full() bool {
	pb.mtx.RLock()
	defer pb.mtx.RUnlock()
	return pb.limit > 0 && len(pb.list) >= pb.limit
}

// Len returns the number of known peers.
func (pb *PeerBook) Len() int {
	pb.mtx.RLock()
	defer pb.mtx.RUnlock()
	return len(pb.list)
}

// Share returns up to limit known peers, oldest first, leaving out exclude.
// The result never exceeds netaddr.MaxListLen.
func (pb *PeerBook) Share(limit int, exclude netaddr.Address) netaddr.List {
	if limit > netaddr.MaxListLen {
		limit = netaddr.MaxListLen
	}
	pb.mtx.RLock()
	defer pb.mtx.RUnlock()

	out := make(netaddr.List, 0, limit)
	for _, rec := range pb.list {
		if len(out) >= limit {
			break
		}
		if exclude.IP != nil && rec.Addr.Equal(exclude) {
			continue
		}
		out = append(out, rec.Addr)
	}
	return out
}
