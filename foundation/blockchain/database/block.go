// Package database defines the blocks and transactions that make up the
// chain, how a block is hashed and how a whole chain is validated.
package database

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrEmptyChain is returned when the latest block is requested from a
// chain that holds no blocks.
var ErrEmptyChain = errors.New("chain has no blocks")

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Block represents a group of transactions sealed by a proof that links it
// to the previous block.
type Block struct {
	Index        uint64 `json:"index"`         // Position in the chain, genesis is 1.
	TimeStamp    uint64 `json:"timestamp"`     // Unix milliseconds when the block was sealed.
	Transactions []Tx   `json:"transactions"`  // Pending transactions captured at sealing time.
	Proof        uint64 `json:"proof"`         // Solves the puzzle for the previous block's proof.
	PrevHash     string `json:"previous_hash"` // Hash of the previous block or the genesis sentinel.
}

// NewBlock constructs a block at the current time. The transactions are
// copied so the caller can reuse its slice.
func NewBlock(index uint64, trans []Tx, proof uint64, prevHash string) Block {
	txs := make([]Tx, len(trans))
	copy(txs, trans)

	return Block{
		Index:        index,
		TimeStamp:    uint64(time.Now().UTC().UnixMilli()),
		Transactions: txs,
		Proof:        proof,
		PrevHash:     prevHash,
	}
}

// CopyBlocks returns a copy of the chain that shares no transactions with
// the original.
func CopyBlocks(chain []Block) []Block {
	cpy := make([]Block, len(chain))
	for i, b := range chain {
		cpy[i] = b.Copy()
	}

	return cpy
}

// Copy returns a copy of the block with its own transactions.
func (b Block) Copy() Block {
	if b.Transactions != nil {
		txs := make([]Tx, len(b.Transactions))
		copy(txs, b.Transactions)
		b.Transactions = txs
	}

	return b
}

// Hash returns the unique hash for the Block. The block is encoded into
// canonical JSON first, with every object's keys in sorted order, so the
// same logical block produces the same hash on every node. A block holding
// a transaction that cannot be encoded has no hash.
func (b Block) Hash() (string, error) {
	for _, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return "", err
		}
	}

	// A block without transactions encodes the same whether it was
	// decoded from the wire or constructed locally.
	if b.Transactions == nil {
		b.Transactions = []Tx{}
	}

	data, err := canonicalJSON(b)
	if err != nil {
		return "", fmt.Errorf("encoding block %d: %w", b.Index, err)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// =============================================================================

// ChainData represents a chain as it is shared between nodes.
type ChainData struct {
	Chain  []Block `json:"chain"`
	Length int     `json:"length"`
}

// NewChainData constructs the value to serialize across the network.
func NewChainData(chain []Block) ChainData {
	return ChainData{
		Chain:  chain,
		Length: len(chain),
	}
}

// =============================================================================

// canonicalJSON marshals the value and then re-encodes it through generic
// maps. The encoding package writes map keys in sorted order and the
// numbers are kept as written.
func canonicalJSON(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var generic any
	if err := decoder.Decode(&generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
