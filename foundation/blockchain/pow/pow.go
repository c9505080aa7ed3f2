// Package pow implements the proof of work puzzle. A proof is valid for the
// previous block's proof when the sha256 of both numbers written one after
// the other begins with a difficulty number of zeros.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// MaxDifficulty is the length of a hex encoded sha256 hash.
const MaxDifficulty = sha256.Size * 2

// reportEvery is the number of attempts between progress events.
const reportEvery = 1_000_000

// =============================================================================

// IsValid reports whether proof solves the puzzle for lastProof.
func IsValid(lastProof uint64, proof uint64, difficulty uint) bool {
	return isHashSolved(difficulty, guessHash(lastProof, proof))
}

// Solve performs a linear search starting at zero for the first proof that
// solves the puzzle for lastProof. The search can be cancelled through the
// context, in which case the context error is returned.
func Solve(ctx context.Context, lastProof uint64, difficulty uint, ev func(v string, args ...any)) (uint64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: Solve: MINING: started: lastProof[%d]: difficulty[%d]", lastProof, difficulty)
	defer ev("pow: Solve: MINING: completed")

	var attempts uint64
	for proof := uint64(0); ; proof++ {
		attempts++
		if attempts%reportEvery == 0 {
			ev("pow: Solve: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("pow: Solve: MINING: CANCELLED")
			return 0, ctx.Err()
		}

		hash := guessHash(lastProof, proof)
		if !isHashSolved(difficulty, hash) {
			continue
		}

		ev("pow: Solve: MINING: SOLVED: proof[%d]: hash[%s]: attempts[%d]", proof, hash, attempts)
		return proof, nil
	}
}

// =============================================================================

// guessHash hashes the decimal forms of both proofs concatenated.
func guessHash(lastProof uint64, proof uint64) string {
	guess := strconv.FormatUint(lastProof, 10) + strconv.FormatUint(proof, 10)
	hash := sha256.Sum256([]byte(guess))
	return hex.EncodeToString(hash[:])
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "0000000000000000000000000000000000000000000000000000000000000000"

	if len(hash) != MaxDifficulty || difficulty > MaxDifficulty {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
