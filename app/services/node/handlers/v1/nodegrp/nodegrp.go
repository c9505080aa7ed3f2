// Package nodegrp maintains the group of handlers for ledger access.
package nodegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ledgerlab/powchain/business/sys/validate"
	"github.com/ledgerlab/powchain/business/web/errs"
	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/state"
	"github.com/ledgerlab/powchain/foundation/blockchain/worker"
	"github.com/ledgerlab/powchain/foundation/events"
	"github.com/ledgerlab/powchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Mine forges a new block holding the pending transactions and the reward
// for this node.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.Mine(ctx)
	if err != nil {
		if errors.Is(err, worker.ErrShutdown) {
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("mining: %w", err)
	}

	resp := minedBlock{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PrevHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx newTx
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(tx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", *tx.Sender, "recipient", *tx.Recipient, "amount", *tx.Amount)

	index, err := h.State.SubmitTransaction(*tx.Sender, *tx.Recipient, *tx.Amount)
	if err != nil {
		if errors.Is(err, database.ErrNonFiniteAmount) {
			return validate.NewFieldsError("amount", err)
		}
		return fmt.Errorf("submitting transaction: %w", err)
	}

	resp := message{
		Message: fmt.Sprintf("Transaction will be added to Block %d", index),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Chain returns the full chain held by this node.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// Mempool returns the transactions waiting for the next block.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// RegisterNodes adds the addresses to the set of known peers.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nodes newNodes
	if err := web.Decode(r, &nodes); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(nodes); err != nil {
		return err
	}

	for _, address := range nodes.Nodes {
		if _, _, err := h.State.RegisterPeer(address); err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	resp := registered{
		Message:    "New nodes have been added",
		TotalNodes: h.knownHosts(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// ListNodes returns the known peers in the order they were registered.
func (h Handlers) ListNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := nodeList{
		NodeID: h.State.RetrieveNodeID(),
		Nodes:  h.knownHosts(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Resolve runs the consensus algorithm against the known peers.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced := h.State.ResolveConflicts(ctx)
	chain := h.State.RetrieveChain().Chain

	resp := resolved{
		Message: "Our chain is authoritative",
		Chain:   chain,
	}

	if replaced {
		resp = resolved{
			Message:  "Our chain was replaced",
			NewChain: chain,
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// The upgrade wrote the response already.
	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	ch := h.Evts.Subscribe(v.TraceID)
	defer h.Evts.Unsubscribe(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// =============================================================================

func (h Handlers) knownHosts() []string {
	peers := h.State.RetrieveKnownPeers()

	hosts := make([]string, len(peers))
	for i, pr := range peers {
		hosts[i] = pr.Host
	}

	return hosts
}
