// Package protocol defines the network rules a post chain node runs with.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - The protocol version, which pins the post body size
//   - Admission rules for gossiped posts (proof-of-work difficulty)
//   - Peer sharing limits for ping replies and the peer book
//
// Rules are not part of any wire message. Every node on a network is expected
// to run with the same values.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rony4d/go-postchain/inter"
	"github.com/rony4d/go-postchain/inter/netaddr"
)

// Network identification constants
const (
	// MainNetworkID identifies the production network.
	MainNetworkID uint64 = 0x9057
	// TestNetworkID identifies the public test network.
	TestNetworkID uint64 = 0x9058
	// FakeNetworkID identifies local networks used in tests and development.
	FakeNetworkID uint64 = 0x9059

	// Version is the protocol version. Version 1 carries bodies of
	// inter.BodySize bytes.
	Version uint16 = 1

	// MaxDifficulty is the largest meaningful difficulty. A difficulty of
	// 256 bits or more demands the maximum score.
	MaxDifficulty uint = 256
)

// Rule validation errors.
var (
	ErrUnknownVersion = errors.New("unknown protocol version")
	ErrDifficulty     = errors.New("difficulty out of range")
	ErrShareLimit     = errors.New("peer share limit out of range")
	ErrPeerLimit      = errors.New("known peer limit out of range")
)

// Rules describes the parameters of a post chain network.
type Rules struct {
	Name      string
	NetworkID uint64
	// Version selects the wire layout; see Version.
	Version uint16
	// Difficulty is the proof-of-work requirement in bits: a post is admitted
	// when its score is at least 2^Difficulty.
	Difficulty uint
	// PeerShareLimit caps the number of peers listed in a ping reply.
	PeerShareLimit int
	// MaxKnownPeers caps the peer book. Addresses heard of once it is full
	// are dropped.
	MaxKnownPeers int
}

// MainNetRules returns the rules of the production network.
func MainNetRules() Rules {
	return Rules{
		Name:           "main",
		NetworkID:      MainNetworkID,
		Version:        Version,
		Difficulty:     24,
		PeerShareLimit: 32,
		MaxKnownPeers:  1024,
	}
}

// TestNetRules returns the rules of the public test network.
// It keeps mainnet peer sharing but lowers the difficulty.
func TestNetRules() Rules {
	return Rules{
		Name:           "test",
		NetworkID:      TestNetworkID,
		Version:        Version,
		Difficulty:     16,
		PeerShareLimit: 32,
		MaxKnownPeers:  1024,
	}
}

// FakeNetRules returns the rules for fake/local networks.
// Fake networks use parameters that let a post be sealed in a few attempts:
//   - Difficulty of 4 bits
//   - Small ping replies (8 peers) and peer book (64 peers)
func FakeNetRules() Rules {
	return Rules{
		Name:           "fake",
		NetworkID:      FakeNetworkID,
		Version:        Version,
		Difficulty:     4,
		PeerShareLimit: 8,
		MaxKnownPeers:  64,
	}
}

// MinScore returns the lowest score a non-genesis post needs to be admitted.
func (r Rules) MinScore() inter.Word {
	return inter.DifficultyScore(r.Difficulty)
}

// Admits reports whether post satisfies the proof-of-work requirement.
// The genesis post is always admitted.
func (r Rules) Admits(post inter.Post) bool {
	if post.IsGenesis() {
		return true
	}
	return inter.MeetsTarget(post.Hash(), r.MinScore())
}

// Validate checks the rules for values no network can run with.
func (r Rules) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, r.Version)
	}
	if r.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: %d > %d", ErrDifficulty, r.Difficulty, MaxDifficulty)
	}
	if r.PeerShareLimit < 0 || r.PeerShareLimit > netaddr.MaxListLen {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrShareLimit, r.PeerShareLimit, netaddr.MaxListLen)
	}
	if r.MaxKnownPeers <= 0 {
		return fmt.Errorf("%w: %d", ErrPeerLimit, r.MaxKnownPeers)
	}
	return nil
}

// String returns a JSON representation of Rules for logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
