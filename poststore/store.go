// Package poststore keeps gossiped posts in a key-value store, indexed by
// hash and by arrival order.
package poststore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	log "github.com/sirupsen/logrus"

	"github.com/rony4d/go-postchain/inter"
)

// ErrNotFound is returned by Get for unknown hashes.
var ErrNotFound = errors.New("post not found")

var packageLogger = log.WithField("package", "poststore")

// Key prefixes.
var (
	postPrefix    = []byte("p") // p + hash(32) -> post encoding
	arrivalPrefix = []byte("a") // a + seq(8, big-endian) -> hash(32)
)

// Store is a post index over a KeyValueStore. It is safe for concurrent use.
type Store struct {
	db ethdb.KeyValueStore

	mu  sync.Mutex // serializes Put so arrival numbers stay dense
	seq uint64
}

// New opens a store over db and resumes the arrival sequence from the
// entries already present.
func New(db ethdb.KeyValueStore) (*Store, error) {
	s := &Store{db: db}
	it := db.NewIterator(arrivalPrefix, nil)
	defer it.Release()
	for it.Next() {
		s.seq++
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("scan arrival index: %w", err)
	}
	return s, nil
}

// NewMemory returns an empty store backed by memorydb.
func NewMemory() *Store {
	s, _ := New(memorydb.New())
	return s
}

func postKey(hash inter.Word) []byte {
	b := inter.WordBytes(hash)
	return append(append(make([]byte, 0, len(postPrefix)+inter.WordSize), postPrefix...), b[:]...)
}

func arrivalKey(seq uint64) []byte {
	return append(append(make([]byte, 0, len(arrivalPrefix)+8), arrivalPrefix...), bigendian.Uint64ToBytes(seq)...)
}

// Put stores post under its hash. It reports false without writing when the
// post is already known.
func (s *Store) Put(post inter.Post) (inter.Word, bool, error) {
	hash := post.Hash()
	key := postKey(hash)

	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.db.Has(key)
	if err != nil {
		return hash, false, err
	}
	if known {
		return hash, false, nil
	}

	raw, err := post.MarshalBinary()
	if err != nil {
		return hash, false, err
	}
	batch := s.db.NewBatch()
	if err := batch.Put(key, raw); err != nil {
		return hash, false, err
	}
	hb := inter.WordBytes(hash)
	if err := batch.Put(arrivalKey(s.seq), hb[:]); err != nil {
		return hash, false, err
	}
	if err := batch.Write(); err != nil {
		return hash, false, err
	}
	s.seq++
	return hash, true, nil
}

// Get returns the post with the given hash.
func (s *Store) Get(hash inter.Word) (inter.Post, error) {
	key := postKey(hash)
	known, err := s.db.Has(key)
	if err != nil {
		return inter.Post{}, err
	}
	if !known {
		return inter.Post{}, ErrNotFound
	}
	raw, err := s.db.Get(key)
	if err != nil {
		return inter.Post{}, err
	}
	var post inter.Post
	if err := post.UnmarshalBinary(raw); err != nil {
		return inter.Post{}, fmt.Errorf("stored post %s: %w", inter.WordHex(hash), err)
	}
	return post, nil
}

// Has reports whether a post with the given hash is stored. A failing
// backend is logged and reported as not stored; use Get to see the error.
func (s *Store) Has(hash inter.Word) bool {
	ok, err := s.db.Has(postKey(hash))
	if err != nil {
		packageLogger.WithError(err).WithField("hash", inter.WordHex(hash)).Warn("post lookup failed")
		return false
	}
	return ok
}

// Len returns the number of stored posts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.seq)
}

// Each calls fn for every stored post in arrival order until fn returns false.
func (s *Store) Each(fn func(hash inter.Word, post inter.Post) bool) error {
	it := s.db.NewIterator(arrivalPrefix, nil)
	defer it.Release()
	for it.Next() {
		if len(it.Value()) != inter.WordSize {
			return fmt.Errorf("arrival %d: corrupt hash", bigendian.BytesToUint64(it.Key()[len(arrivalPrefix):]))
		}
		var hb [inter.WordSize]byte
		copy(hb[:], it.Value())
		hash := inter.WordFromLittleEndian(hb)
		post, err := s.Get(hash)
		if err != nil {
			return err
		}
		if !fn(hash, post) {
			return nil
		}
	}
	return it.Error()
}

// Ancestors walks prev links starting at hash and returns the posts found,
// nearest first. The walk stops at the genesis post, at the first post that
// is not stored, or after limit posts. A limit of 0 means no limit.
func (s *Store) Ancestors(hash inter.Word, limit int) ([]inter.Post, error) {
	var (
		chain []inter.Post
		seen  = make(map[inter.Word]struct{})
	)
	for limit == 0 || len(chain) < limit {
		if _, loop := seen[hash]; loop {
			break
		}
		seen[hash] = struct{}{}

		post, err := s.Get(hash)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return chain, err
		}
		chain = append(chain, post)
		if post.IsGenesis() {
			break
		}
		hash = post.Prev()
	}
	return chain, nil
}

// Close releases the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}
