package state

import (
	"github.com/ledgerlab/powchain/foundation/blockchain/database"
)

// NewTransaction adds a transaction to the mempool and returns the index of
// the block that will hold it. A transaction that could not be hashed as
// part of a block is refused.
func (s *State) NewTransaction(tx database.Tx) (uint64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	s.mempool.Add(tx)

	return uint64(len(s.chain)) + 1, nil
}

// SealBlock appends a new block holding every pending transaction and clears
// the mempool. When previousHash is empty the hash of the latest block is
// used.
func (s *State) SealBlock(proof uint64, previousHash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sealBlock(proof, previousHash)
}

// LastBlock returns a copy of the latest block in the chain.
func (s *State) LastBlock() (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	block, err := s.lastBlock()
	if err != nil {
		return database.Block{}, err
	}

	return block.Copy(), nil
}

// ReplaceChain overwrites the chain with the specified blocks. The chain is
// not validated here, that is the caller's job. Any proof search running
// against the old tip is cancelled.
func (s *State) ReplaceChain(chain []database.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceChain(chain)
}

// =============================================================================

// sealBlock must be called while holding the write lock. The extra
// transactions follow the pending ones in the block. Nothing changes unless
// the new block can be hashed.
func (s *State) sealBlock(proof uint64, previousHash string, extra ...database.Tx) (database.Block, error) {
	if previousHash == "" && len(s.chain) > 0 {
		hash, err := s.chain[len(s.chain)-1].Hash()
		if err != nil {
			return database.Block{}, err
		}
		previousHash = hash
	}

	block := database.NewBlock(uint64(len(s.chain))+1, append(s.mempool.Copy(), extra...), proof, previousHash)

	hash, err := block.Hash()
	if err != nil {
		return database.Block{}, err
	}

	s.mempool.Flush()
	s.chain = append(s.chain, block)

	s.evHandler("state: sealBlock: block[%d]: txs[%d]: hash[%s]", block.Index, len(block.Transactions), hash)

	return block.Copy(), nil
}

// lastBlock must be called while holding a lock.
func (s *State) lastBlock() (database.Block, error) {
	if len(s.chain) == 0 {
		return database.Block{}, database.ErrEmptyChain
	}

	return s.chain[len(s.chain)-1], nil
}

// replaceChain must be called while holding the write lock.
func (s *State) replaceChain(chain []database.Block) {
	s.chain = database.CopyBlocks(chain)

	for id, cancel := range s.solves {
		cancel(ErrChainReplaced)
		delete(s.solves, id)
	}

	s.evHandler("state: replaceChain: length[%d]", len(s.chain))
}
