// Package worker implements mining and periodic conflict resolution for
// the blockchain.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/state"
)

// ErrShutdown is returned to mine requests made after the worker was told
// to shut down.
var ErrShutdown = errors.New("worker is shutting down")

// maxMineRequests is the number of mine requests that can queue up behind
// the one being worked on.
const maxMineRequests = 10

// =============================================================================

// Worker manages the POW workflows for the blockchain.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ticker    *time.Ticker
	ctx       context.Context
	cancel    context.CancelFunc
	shut      chan struct{}
	shutOnce  sync.Once
	mineReqs  chan mineRequest
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes. A resolveInterval of zero turns
// off periodic conflict resolution.
func Run(st *state.State, evHandler state.EventHandler, resolveInterval time.Duration) {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := Worker{
		state:     st,
		ctx:       ctx,
		cancel:    cancel,
		shut:      make(chan struct{}),
		mineReqs:  make(chan mineRequest, maxMineRequests),
		evHandler: evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
	}

	if resolveInterval > 0 {
		w.ticker = time.NewTicker(resolveInterval)
		operations = append(operations, w.resolveOperations)
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for i := 0; i < g; i++ {
		<-hasStarted
	}
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutines performing work. A proof search in
// progress is cancelled. Calls after the first do nothing.
func (w *Worker) Shutdown() {
	w.shutOnce.Do(func() {
		w.evHandler("worker: shutdown: started")
		defer w.evHandler("worker: shutdown: completed")

		if w.ticker != nil {
			w.evHandler("worker: shutdown: stop ticker")
			w.ticker.Stop()
		}

		w.evHandler("worker: shutdown: signal cancel mining")
		w.cancel()

		w.evHandler("worker: shutdown: terminate goroutines")
		close(w.shut)
		w.wg.Wait()
	})
}

// Mine queues a request to mine the next block and waits for the result.
// A caller that stops waiting does not stop the mining, the block is still
// sealed.
func (w *Worker) Mine(ctx context.Context) (database.Block, error) {
	req := mineRequest{
		reply: make(chan mineResult, 1),
	}

	select {
	case w.mineReqs <- req:
		w.evHandler("worker: Mine: MINING: request queued")
	case <-w.shut:
		return database.Block{}, ErrShutdown
	case <-ctx.Done():
		return database.Block{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.block, res.err
	case <-w.shut:
		return database.Block{}, ErrShutdown
	case <-ctx.Done():
		return database.Block{}, ctx.Err()
	}
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
