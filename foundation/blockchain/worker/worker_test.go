package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/genesis"
	"github.com/ledgerlab/powchain/foundation/blockchain/peer"
	"github.com/ledgerlab/powchain/foundation/blockchain/pow"
	"github.com/ledgerlab/powchain/foundation/blockchain/state"
	"github.com/ledgerlab/powchain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

type fakeFetcher struct {
	chain database.ChainData
}

func (f *fakeFetcher) FetchChain(ctx context.Context, pr peer.Peer) (database.ChainData, error) {
	return f.chain, nil
}

func newState(t *testing.T, difficulty uint, fetcher state.ChainFetcher) *state.State {
	t.Helper()

	gen := genesis.Default()
	gen.Difficulty = difficulty

	st, err := state.New(state.Config{
		NodeID:  "node",
		Genesis: gen,
		Fetcher: fetcher,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state : %v", failed, err)
	}

	return st
}

func Test_Mine(t *testing.T) {
	t.Log("Given the need to mine through the worker.")
	{
		st := newState(t, 2, nil)
		worker.Run(st, nil, 0)
		defer st.Shutdown()

		if _, err := st.SubmitTransaction("alice", "bob", 5); err != nil {
			t.Fatalf("\t%s\tShould queue a transaction : %v", failed, err)
		}

		for i := 0; i < 3; i++ {
			block, err := st.Mine(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tShould mine block %d : %v", failed, i+2, err)
			}
			if block.Index != uint64(i+2) {
				t.Fatalf("\t%s\tShould mine block %d : got %d", failed, i+2, block.Index)
			}
			t.Logf("\t%s\tShould mine block %d.", success, i+2)
		}

		cd := st.RetrieveChain()
		if err := database.ValidateChain(cd.Chain, 2); err != nil {
			t.Fatalf("\t%s\tShould leave a valid chain : %v", failed, err)
		}
		t.Logf("\t%s\tShould leave a valid chain.", success)
	}
}

func Test_Shutdown(t *testing.T) {
	t.Log("Given the need to stop mining on shutdown.")
	{
		st := newState(t, pow.MaxDifficulty, nil)
		worker.Run(st, nil, 0)

		errCh := make(chan error, 1)
		go func() {
			_, err := st.Mine(context.Background())
			errCh <- err
		}()

		time.Sleep(50 * time.Millisecond)
		st.Shutdown()

		select {
		case err := <-errCh:
			if !errors.Is(err, worker.ErrShutdown) {
				t.Fatalf("\t%s\tShould report the shutdown : got %v", failed, err)
			}
			t.Logf("\t%s\tShould report the shutdown.", success)
		case <-time.After(5 * time.Second):
			t.Fatalf("\t%s\tShould return from mining after shutdown.", failed)
		}

		if _, err := st.Mine(context.Background()); !errors.Is(err, worker.ErrShutdown) {
			t.Fatalf("\t%s\tShould refuse new work after shutdown : got %v", failed, err)
		}
		t.Logf("\t%s\tShould refuse new work after shutdown.", success)

		done := make(chan struct{})
		go func() {
			defer close(done)
			st.Worker.Shutdown()
			st.Shutdown()
		}()

		select {
		case <-done:
			t.Logf("\t%s\tShould allow shutting down again.", success)
		case <-time.After(5 * time.Second):
			t.Fatalf("\t%s\tShould allow shutting down again.", failed)
		}
	}
}

func Test_PeriodicResolve(t *testing.T) {
	t.Log("Given the need to adopt longer peer chains in the background.")
	{
		peerState := newState(t, 2, nil)
		for i := 0; i < 3; i++ {
			if _, err := peerState.MineNewBlock(context.Background()); err != nil {
				t.Fatalf("\t%s\tShould mine the peer chain : %v", failed, err)
			}
		}

		st := newState(t, 2, &fakeFetcher{chain: peerState.RetrieveChain()})
		if _, _, err := st.RegisterPeer("peer:5000"); err != nil {
			t.Fatalf("\t%s\tShould register the peer : %v", failed, err)
		}

		worker.Run(st, nil, 10*time.Millisecond)
		defer st.Shutdown()

		deadline := time.Now().Add(5 * time.Second)
		for st.RetrieveChain().Length != 4 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould adopt the peer chain : got %d", failed, st.RetrieveChain().Length)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould adopt the peer chain.", success)
	}
}
