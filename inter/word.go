// Package inter defines the post chain's core data structures: the 256-bit
// Word used for hashes, back-links and work values, the fixed-size Body, and
// the Post record that links them into a proof-of-work hash chain.
//
// Every type here is an immutable value with a byte-exact wire encoding built
// on utils/wire. Hashing and scoring are pure functions of those bytes.
package inter

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/rony4d/go-postchain/utils/wire"
)

// WordSize is the wire width of a Word in bytes.
const WordSize = 32

// ErrWordOverflow is returned when a textual value does not fit in 256 bits.
var ErrWordOverflow = errors.New("value exceeds 256 bits")

// Word is a 256-bit unsigned integer. It is a plain value: copies are
// independent and two Words compare equal with ==.
type Word = uint256.Int

// WordFromUint64 returns v as a Word.
func WordFromUint64(v uint64) Word {
	var w Word
	w.SetUint64(v)
	return w
}

// MaxWord returns 2^256 - 1.
func MaxWord() Word {
	const m = ^uint64(0)
	return Word{m, m, m, m}
}

// WordFromLittleEndian builds a Word from 32 little-endian bytes
// (b[0] is the least significant byte).
func WordFromLittleEndian(b [WordSize]byte) Word {
	var w Word
	for i := range w {
		w[i] = binary.LittleEndian.Uint64(b[8*i:])
	}
	return w
}

// WordBytes returns the little-endian wire form of w.
func WordBytes(w Word) [WordSize]byte {
	var b [WordSize]byte
	for i := range w {
		binary.LittleEndian.PutUint64(b[8*i:], w[i])
	}
	return b
}

// WordHex formats w as a 0x-prefixed, zero-padded big-endian hex string.
func WordHex(w Word) string {
	le := WordBytes(w)
	var be [WordSize]byte
	for i, b := range le {
		be[WordSize-1-i] = b
	}
	return hexutil.Encode(be[:])
}

// WordFromHex parses a big-endian hex string of at most 64 digits, with or
// without the 0x prefix.
func WordFromHex(s string) (Word, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hexutil.Decode("0x" + s)
	if err != nil {
		return Word{}, err
	}
	if len(raw) > WordSize {
		return Word{}, ErrWordOverflow
	}
	var le [WordSize]byte
	for i, b := range raw {
		le[len(raw)-1-i] = b
	}
	return WordFromLittleEndian(le), nil
}

// WriteWord appends the 32-byte little-endian encoding of v.
func WriteWord(w *wire.Writer, v Word) {
	b := WordBytes(v)
	w.FixedBytes(b[:])
}

// ReadWord consumes exactly 32 bytes.
func ReadWord(r *wire.Reader) (Word, error) {
	var b [WordSize]byte
	if err := r.FixedBytes(b[:]); err != nil {
		return Word{}, err
	}
	return WordFromLittleEndian(b), nil
}
