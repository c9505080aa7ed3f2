// Package state is the core API for the blockchain and implements all the
// business rules and processing: the ledger of blocks and pending
// transactions, mining, and reconciliation with peers.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/genesis"
	"github.com/ledgerlab/powchain/foundation/blockchain/mempool"
	"github.com/ledgerlab/powchain/foundation/blockchain/peer"
)

// ErrChainReplaced is the cause given to a proof search that was running
// against a tip that no longer exists.
var ErrChainReplaced = errors.New("chain replaced while mining")

// defaultPeerTimeout bounds a single peer fetch when none is configured.
const defaultPeerTimeout = 5 * time.Second

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing background mining and peer reconciliation.
type Worker interface {
	Shutdown()
	Mine(ctx context.Context) (database.Block, error)
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeID      string
	Host        string
	Genesis     genesis.Genesis
	KnownPeers  *peer.PeerSet
	Fetcher     ChainFetcher
	PeerTimeout time.Duration
	EvHandler   EventHandler
}

// State manages the chain, the pending transactions and the known peers of
// the node. The chain and the mempool are only changed while holding mu.
type State struct {
	nodeID      string
	host        string
	genesis     genesis.Genesis
	evHandler   EventHandler
	peerTimeout time.Duration

	mu      sync.RWMutex
	chain   []database.Block
	solves  map[uint64]context.CancelCauseFunc
	solveID uint64

	mempool    *mempool.Mempool
	knownPeers *peer.PeerSet
	fetcher    ChainFetcher

	Worker Worker
}

// New constructs the ledger with its genesis block.
func New(cfg Config) (*State, error) {
	if cfg.NodeID == "" {
		return nil, errors.New("node id is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	gen := cfg.Genesis
	if gen.Difficulty == 0 {
		gen = genesis.Default()
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher()
	}

	peerTimeout := cfg.PeerTimeout
	if peerTimeout <= 0 {
		peerTimeout = defaultPeerTimeout
	}

	state := State{
		nodeID:      cfg.NodeID,
		host:        cfg.Host,
		genesis:     gen,
		evHandler:   ev,
		peerTimeout: peerTimeout,
		solves:      make(map[uint64]context.CancelCauseFunc),
		mempool:     mempool.New(),
		knownPeers:  knownPeers,
		fetcher:     fetcher,
	}

	if err := database.NewTx(gen.RewardSender, cfg.NodeID, gen.MiningReward).Validate(); err != nil {
		return nil, fmt.Errorf("mining reward: %w", err)
	}

	// The genesis block is sealed once with the sentinel previous hash and
	// the seed proof. It is never validated against anything.
	if _, err := state.sealBlock(gen.Proof, gen.PreviousHash); err != nil {
		return nil, fmt.Errorf("sealing genesis: %w", err)
	}

	ev("state: New: genesis sealed: proof[%d]: difficulty[%d]", gen.Proof, gen.Difficulty)

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
