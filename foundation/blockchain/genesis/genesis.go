// Package genesis maintains access to the genesis parameters of the chain.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
)

// Genesis represents the genesis file.
type Genesis struct {
	PreviousHash string  `json:"previous_hash"` // Sentinel stored as the genesis block's previous hash.
	Proof        uint64  `json:"proof"`         // Seed proof of the genesis block.
	Difficulty   uint    `json:"difficulty"`    // Number of leading zeros a proof hash must have.
	RewardSender string  `json:"reward_sender"` // Sentinel sender of the mining reward transaction.
	MiningReward float64 `json:"mining_reward"` // Amount credited to the node for mining a block.
}

// Default returns the genesis parameters used when no genesis file
// is configured.
func Default() Genesis {
	return Genesis{
		PreviousHash: "1",
		Proof:        100,
		Difficulty:   4,
		RewardSender: "0",
		MiningReward: 1,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Values missing from the file
// keep their default.
func Load(path string) (Genesis, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if genesis.Difficulty == 0 || genesis.Difficulty > 64 {
		return Genesis{}, fmt.Errorf("difficulty %d out of range [1,64]", genesis.Difficulty)
	}

	return genesis, nil
}
