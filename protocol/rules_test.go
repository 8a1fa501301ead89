package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-postchain/inter"
)

// TestNetworkConstants verifies that the network IDs are distinct.
func TestNetworkConstants(t *testing.T) {
	ids := map[uint64]string{}
	for _, name := range Networks {
		rules, err := RulesByName(name)
		require.NoError(t, err)
		require.Equal(t, name, rules.Name)
		prev, dup := ids[rules.NetworkID]
		require.False(t, dup, "%s shares network id with %s", name, prev)
		ids[rules.NetworkID] = name
	}
}

// TestPresets checks every built-in network is valid and runs version 1.
func TestPresets(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		id    uint64
	}{
		{"main", MainNetRules(), MainNetworkID},
		{"test", TestNetRules(), TestNetworkID},
		{"fake", FakeNetRules(), FakeNetworkID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			require.NoError(tt.rules.Validate())
			require.Equal(tt.name, tt.rules.Name)
			require.Equal(tt.id, tt.rules.NetworkID)
			require.Equal(Version, tt.rules.Version)

			byName, err := RulesByName(tt.name)
			require.NoError(err)
			require.Equal(tt.rules, byName)
		})
	}

	require.True(t, FakeNetRules().Difficulty < TestNetRules().Difficulty)
	require.True(t, TestNetRules().Difficulty < MainNetRules().Difficulty)
}

func TestRulesByName_Unknown(t *testing.T) {
	_, err := RulesByName("moon")
	require.Error(t, err)
}

// TestValidate covers each rejected field.
func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Rules)
		want error
	}{
		{"version 0", func(r *Rules) { r.Version = 0 }, ErrUnknownVersion},
		{"version 2", func(r *Rules) { r.Version = 2 }, ErrUnknownVersion},
		{"difficulty", func(r *Rules) { r.Difficulty = MaxDifficulty + 1 }, ErrDifficulty},
		{"negative share", func(r *Rules) { r.PeerShareLimit = -1 }, ErrShareLimit},
		{"share over list", func(r *Rules) { r.PeerShareLimit = 256 }, ErrShareLimit},
		{"no known peers", func(r *Rules) { r.MaxKnownPeers = 0 }, ErrPeerLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := FakeNetRules()
			tt.edit(&rules)
			err := rules.Validate()
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	edge := FakeNetRules()
	edge.Difficulty = MaxDifficulty
	edge.PeerShareLimit = 255
	edge.MaxKnownPeers = 1
	require.NoError(t, edge.Validate())
}

// TestMinScore checks the difficulty maps onto the score scale.
func TestMinScore(t *testing.T) {
	rules := FakeNetRules()
	rules.Difficulty = 0
	require.Equal(t, inter.WordFromUint64(1), rules.MinScore())

	rules.Difficulty = 10
	require.Equal(t, inter.WordFromUint64(1024), rules.MinScore())

	rules.Difficulty = MaxDifficulty
	require.Equal(t, inter.MaxWord(), rules.MinScore())
}

// TestAdmits accepts sealed posts and genesis, and refuses unsealed posts
// under an unreachable target.
func TestAdmits(t *testing.T) {
	require := require.New(t)

	rules := FakeNetRules()
	post, err := inter.Seal(context.Background(), inter.WordFromUint64(7), inter.FilledBody(1), rules.MinScore(), inter.Word{})
	require.NoError(err)
	require.True(rules.Admits(post))

	strict := rules
	strict.Difficulty = MaxDifficulty
	require.False(strict.Admits(post))
	require.True(strict.Admits(inter.Genesis(inter.FilledBody(1))))
}

func TestApplyOverrides(t *testing.T) {
	require := require.New(t)

	base := MainNetRules()
	require.Equal(base, ApplyOverrides(base, Overrides{}))

	difficulty, share, known := uint(3), 5, 10
	got := ApplyOverrides(base, Overrides{Difficulty: &difficulty, PeerShareLimit: &share, MaxKnownPeers: &known})
	require.Equal(uint(3), got.Difficulty)
	require.Equal(5, got.PeerShareLimit)
	require.Equal(10, got.MaxKnownPeers)
	require.Equal(base.NetworkID, got.NetworkID)
	require.Equal(uint(24), base.Difficulty, "base must not change")
}

func TestRulesString(t *testing.T) {
	var decoded Rules
	require.NoError(t, json.Unmarshal([]byte(TestNetRules().String()), &decoded))
	require.Equal(t, TestNetRules(), decoded)
}
