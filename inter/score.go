package inter

// Score maps a post hash to its proof-of-work score: floor(MaxWord / hash).
//
// Smaller hashes are harder to find and score higher, so comparing scores
// orders competing posts by the work invested in them. Score(0) is 0.
// What counts as enough work, and how scores combine along a chain, is left
// to the caller.
func Score(hash Word) Word {
	var score Word
	if hash.IsZero() {
		return score
	}
	max := MaxWord()
	score.Div(&max, &hash)
	return score
}

// MeetsTarget reports whether a non-zero hash scores at least minScore.
// The zero hash never meets a target.
func MeetsTarget(hash, minScore Word) bool {
	if hash.IsZero() {
		return false
	}
	score := Score(hash)
	return !score.Lt(&minScore)
}

// DifficultyScore is the minimum score for a difficulty expressed in bits:
// 2^bits, which a hash meets roughly once every 2^bits attempts.
// bits of 256 or more saturate at MaxWord.
func DifficultyScore(bits uint) Word {
	if bits >= 256 {
		return MaxWord()
	}
	one := WordFromUint64(1)
	var score Word
	score.Lsh(&one, bits)
	return score
}
