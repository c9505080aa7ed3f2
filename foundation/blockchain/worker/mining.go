package worker

import (
	"time"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
)

// mineRequest asks the mining G to forge a block. The reply channel is
// buffered so the G never blocks on a caller that went away.
type mineRequest struct {
	reply chan mineResult
}

type mineResult struct {
	block database.Block
	err   error
}

// miningOperations handles mining. Requests are worked one at a time in the
// order they were made.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case req := <-w.mineReqs:
			if w.isShutdown() {
				req.reply <- mineResult{err: ErrShutdown}
				continue
			}
			req.reply <- w.runMiningOperation()

		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation mines a single block with the pending transactions.
func (w *Worker) runMiningOperation() mineResult {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	t := time.Now()
	block, err := w.state.MineNewBlock(w.ctx)
	duration := time.Since(t)

	w.evHandler("worker: runMiningOperation: MINING: mining duration[%v]", duration)

	if err != nil {
		switch {
		case w.ctx.Err() != nil:
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: complete")
			err = ErrShutdown
		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		}
		return mineResult{err: err}
	}

	return mineResult{block: block}
}
