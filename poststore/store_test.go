package poststore

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-postchain/inter"
)

// chain builds genesis plus n posts linked by prev. Work is fixed at 1 so
// no post is a second genesis.
func chain(n int) []inter.Post {
	posts := []inter.Post{inter.Genesis(inter.FilledBody(0))}
	for i := 1; i <= n; i++ {
		prev := posts[i-1].Hash()
		posts = append(posts, inter.NewPost(prev, inter.WordFromUint64(1), inter.FilledBody(byte(i))))
	}
	return posts
}

func TestStore_PutGet(t *testing.T) {
	require := require.New(t)
	s := NewMemory()

	posts := chain(3)
	for _, p := range posts {
		hash, added, err := s.Put(p)
		require.NoError(err)
		require.True(added)
		require.Equal(p.Hash(), hash)
		require.True(s.Has(hash))

		got, err := s.Get(hash)
		require.NoError(err)
		require.Equal(p, got)
	}
	require.Equal(len(posts), s.Len())

	// duplicates are ignored
	_, added, err := s.Put(posts[2])
	require.NoError(err)
	require.False(added)
	require.Equal(len(posts), s.Len())

	_, err = s.Get(inter.WordFromUint64(99))
	require.Equal(ErrNotFound, err)
	require.False(s.Has(inter.WordFromUint64(99)))
}

// TestStore_Each visits posts in arrival order, not hash order.
func TestStore_Each(t *testing.T) {
	require := require.New(t)
	s := NewMemory()

	posts := chain(20)
	for i := len(posts) - 1; i >= 0; i-- {
		_, _, err := s.Put(posts[i])
		require.NoError(err)
	}

	var got []inter.Post
	require.NoError(s.Each(func(hash inter.Word, p inter.Post) bool {
		require.Equal(p.Hash(), hash)
		got = append(got, p)
		return true
	}))
	require.Len(got, len(posts))
	for i := range got {
		require.Equal(posts[len(posts)-1-i], got[i])
	}

	visited := 0
	require.NoError(s.Each(func(inter.Word, inter.Post) bool {
		visited++
		return visited < 5
	}))
	require.Equal(5, visited)
}

// TestStore_Ancestors walks back to genesis and stops at gaps and limits.
func TestStore_Ancestors(t *testing.T) {
	require := require.New(t)
	s := NewMemory()

	posts := chain(6)
	for _, p := range posts {
		_, _, err := s.Put(p)
		require.NoError(err)
	}

	tip := posts[6].Hash()
	all, err := s.Ancestors(tip, 0)
	require.NoError(err)
	require.Len(all, 7)
	require.Equal(posts[6], all[0])
	require.True(all[6].IsGenesis())

	some, err := s.Ancestors(tip, 3)
	require.NoError(err)
	require.Equal([]inter.Post{posts[6], posts[5], posts[4]}, some)

	none, err := s.Ancestors(inter.WordFromUint64(5), 0)
	require.NoError(err)
	require.Empty(none)

	// a store missing the middle of the chain stops at the gap
	gap := NewMemory()
	for _, i := range []int{0, 1, 3, 4} {
		_, _, err := gap.Put(posts[i])
		require.NoError(err)
	}
	part, err := gap.Ancestors(posts[4].Hash(), 0)
	require.NoError(err)
	require.Equal([]inter.Post{posts[4], posts[3]}, part)
}

// TestStore_Reopen resumes the arrival sequence over existing data.
func TestStore_Reopen(t *testing.T) {
	require := require.New(t)
	db := memorydb.New()

	s, err := New(db)
	require.NoError(err)
	posts := chain(2)
	for _, p := range posts[:2] {
		_, _, err := s.Put(p)
		require.NoError(err)
	}

	s2, err := New(db)
	require.NoError(err)
	require.Equal(2, s2.Len())
	_, added, err := s2.Put(posts[2])
	require.NoError(err)
	require.True(added)

	var order []inter.Post
	require.NoError(s2.Each(func(_ inter.Word, p inter.Post) bool {
		order = append(order, p)
		return true
	}))
	require.Equal(posts, order)
	require.NoError(s2.Close())
}

// TestStore_Closed logs lookups against a failed backend and reports the
// error from Get and Put.
func TestStore_Closed(t *testing.T) {
	require := require.New(t)
	hook := test.NewGlobal()
	defer hook.Reset()

	s := NewMemory()
	genesis := chain(0)[0]
	hash, _, err := s.Put(genesis)
	require.NoError(err)
	require.True(s.Has(hash))
	require.NoError(s.Close())

	require.False(s.Has(hash))
	entry := hook.LastEntry()
	require.NotNil(entry)
	require.Equal(log.WarnLevel, entry.Level)
	require.Equal("poststore", entry.Data["package"])
	require.Equal(inter.WordHex(hash), entry.Data["hash"])
	require.Error(entry.Data[log.ErrorKey].(error))

	_, err = s.Get(hash)
	require.Error(err)
	require.False(errors.Is(err, ErrNotFound))
	_, _, err = s.Put(genesis)
	require.Error(err)
}
