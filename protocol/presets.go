package protocol

import "fmt"

// Names of the built-in networks, in the order they are listed in help text.
var Networks = []string{"main", "test", "fake"}

// RulesByName looks up the rules of a built-in network by its identifier.
// This lets CLI flags like --network=test select a network.
//
// Example:
//
//	rules, err := protocol.RulesByName("fake")
//	if err != nil {
//	    log.Fatal(err)
//	}
func RulesByName(name string) (Rules, error) {
	switch name {
	case "main":
		return MainNetRules(), nil
	case "test":
		return TestNetRules(), nil
	case "fake":
		return FakeNetRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown network: %q (valid: main, test, fake)", name)
	}
}

// Overrides holds rule values set explicitly by an operator.
// Nil fields leave the preset value in place.
type Overrides struct {
	Difficulty     *uint
	PeerShareLimit *int
	MaxKnownPeers  *int
}

// ApplyOverrides merges explicitly set values into a copy of r.
// The network identity (name, id, version) is never overridden.
func ApplyOverrides(r Rules, o Overrides) Rules {
	if o.Difficulty != nil {
		r.Difficulty = *o.Difficulty
	}
	if o.PeerShareLimit != nil {
		r.PeerShareLimit = *o.PeerShareLimit
	}
	if o.MaxKnownPeers != nil {
		r.MaxKnownPeers = *o.MaxKnownPeers
	}
	return r
}
