package state

import (
	"context"
	"sync"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/peer"
)

// peerChain is the answer of a single peer during conflict resolution.
type peerChain struct {
	peer peer.Peer
	data database.ChainData
	err  error
}

// ResolveConflicts is the consensus algorithm. Every known peer is asked for
// its chain and ours is replaced by the longest valid chain that is strictly
// longer than our own. It reports true if the chain was replaced.
func (s *State) ResolveConflicts(ctx context.Context) bool {
	s.evHandler("state: ResolveConflicts: started")
	defer s.evHandler("state: ResolveConflicts: completed")

	peers := s.RetrieveKnownPeers()
	if len(peers) == 0 {
		return false
	}

	results := s.fetchPeerChains(ctx, peers)

	s.mu.RLock()
	maxLength := len(s.chain)
	s.mu.RUnlock()

	var newChain []database.Block
	for _, res := range results {
		if res.err != nil {
			s.evHandler("state: ResolveConflicts: WARNING: %s", res.err)
			continue
		}

		length := len(res.data.Chain)
		if length != res.data.Length {
			s.evHandler("state: ResolveConflicts: peer[%s]: reported length[%d] does not match chain[%d]", res.peer, res.data.Length, length)
			continue
		}

		if length <= maxLength {
			continue
		}

		if err := database.ValidateChain(res.data.Chain, s.genesis.Difficulty); err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: rejected: %s", res.peer, err)
			continue
		}

		s.evHandler("state: ResolveConflicts: peer[%s]: candidate length[%d]", res.peer, length)

		maxLength = length
		newChain = res.data.Chain
	}

	if newChain == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A block could have been mined while the peers were being asked.
	if len(newChain) <= len(s.chain) {
		s.evHandler("state: ResolveConflicts: candidate no longer longer than local chain[%d]", len(s.chain))
		return false
	}

	s.replaceChain(newChain)

	return true
}

// fetchPeerChains asks every peer for its chain concurrently. Each request is
// bounded by the peer timeout. Results are returned in peer order.
func (s *State) fetchPeerChains(ctx context.Context, peers []peer.Peer) []peerChain {
	results := make([]peerChain, len(peers))

	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		i, pr := i, pr
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.peerTimeout)
			defer cancel()

			data, err := s.fetcher.FetchChain(ctx, pr)
			results[i] = peerChain{peer: pr, data: data, err: err}
		}()
	}

	wg.Wait()

	return results
}
