package state

import (
	"context"
	"errors"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/pow"
)

// Mine produces the next block. When a worker is registered the work is
// handed to its mining goroutine, otherwise it runs on the calling goroutine.
func (s *State) Mine(ctx context.Context) (database.Block, error) {
	if s.Worker != nil {
		return s.Worker.Mine(ctx)
	}

	return s.MineNewBlock(ctx)
}

// MineNewBlock solves the puzzle for the latest block's proof, credits the
// node with the mining reward and seals the pending transactions into a new
// block. If the chain is replaced while the search is running, the search
// starts over against the new tip.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	for {
		s.evHandler("state: MineNewBlock: MINING: started: txs[%d]", s.mempool.Count())

		solveCtx, id, last, err := s.startSolve(ctx)
		if err != nil {
			return database.Block{}, err
		}

		proof, err := pow.Solve(solveCtx, last.block.Proof, s.genesis.Difficulty, s.evHandler)

		s.mu.Lock()
		cancel := s.solves[id]
		delete(s.solves, id)

		if err != nil {
			s.mu.Unlock()

			replaced := errors.Is(context.Cause(solveCtx), ErrChainReplaced)
			if cancel != nil {
				cancel(nil)
			}

			if replaced && ctx.Err() == nil {
				s.evHandler("state: MineNewBlock: MINING: chain replaced, starting over")
				continue
			}
			return database.Block{}, err
		}

		if cancel != nil {
			cancel(nil)
		}

		// The chain could have been replaced between the search completing
		// and taking the lock. The proof is only good for the tip it was
		// solved against.
		current, err := s.lastBlock()
		if err != nil {
			s.mu.Unlock()
			return database.Block{}, err
		}
		if current.Index != last.block.Index || current.Proof != last.block.Proof || !s.isTip(current, last.hash) {
			s.mu.Unlock()
			s.evHandler("state: MineNewBlock: MINING: stale tip[%d], starting over", last.block.Index)
			continue
		}

		reward := database.NewTx(s.genesis.RewardSender, s.nodeID, s.genesis.MiningReward)

		block, err := s.sealBlock(proof, last.hash, reward)
		s.mu.Unlock()

		if err != nil {
			return database.Block{}, err
		}

		s.evHandler("state: MineNewBlock: MINING: new block forged: block[%d]: proof[%d]", block.Index, block.Proof)

		return block, nil
	}
}

// =============================================================================

// tip is the block a proof search runs against.
type tip struct {
	block database.Block
	hash  string
}

// startSolve registers a cancellable search against the current tip so a
// chain replacement can stop it.
func (s *State) startSolve(ctx context.Context) (context.Context, uint64, tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.lastBlock()
	if err != nil {
		return nil, 0, tip{}, err
	}

	hash, err := last.Hash()
	if err != nil {
		return nil, 0, tip{}, err
	}

	solveCtx, cancel := context.WithCancelCause(ctx)

	s.solveID++
	s.solves[s.solveID] = cancel

	return solveCtx, s.solveID, tip{block: last, hash: hash}, nil
}

// isTip reports whether block still hashes to the hash the search started
// from. It must be called while holding a lock.
func (s *State) isTip(block database.Block, hash string) bool {
	current, err := block.Hash()
	return err == nil && current == hash
}
