package database

import (
	"fmt"

	"github.com/ledgerlab/powchain/foundation/blockchain/pow"
)

// InvalidChainError is returned when a chain fails validation.
type InvalidChainError struct {
	Index  uint64
	Reason string
}

// Error implements the error interface.
func (ice *InvalidChainError) Error() string {
	return fmt.Sprintf("invalid chain at block %d: %s", ice.Index, ice.Reason)
}

// =============================================================================

// ValidateChain walks the chain from the block after genesis and checks each
// block against its predecessor. The genesis block itself is never checked.
func ValidateChain(chain []Block, difficulty uint) error {
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]

		for _, tx := range cur.Transactions {
			if err := tx.Validate(); err != nil {
				return &InvalidChainError{Index: cur.Index, Reason: err.Error()}
			}
		}

		hash, err := prev.Hash()
		if err != nil {
			return &InvalidChainError{Index: prev.Index, Reason: err.Error()}
		}

		if cur.PrevHash != hash {
			return &InvalidChainError{
				Index:  cur.Index,
				Reason: fmt.Sprintf("previous hash doesn't match, got %s, exp %s", cur.PrevHash, hash),
			}
		}

		if !pow.IsValid(prev.Proof, cur.Proof, difficulty) {
			return &InvalidChainError{
				Index:  cur.Index,
				Reason: fmt.Sprintf("proof %d doesn't solve the puzzle for %d", cur.Proof, prev.Proof),
			}
		}

		if cur.Index != prev.Index+1 {
			return &InvalidChainError{
				Index:  cur.Index,
				Reason: fmt.Sprintf("block is not the next number, got %d, exp %d", cur.Index, prev.Index+1),
			}
		}
	}

	return nil
}

// IsValidChain reports whether the chain passes ValidateChain.
func IsValidChain(chain []Block, difficulty uint) bool {
	return ValidateChain(chain, difficulty) == nil
}
