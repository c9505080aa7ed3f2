package nodegrp

import (
	"github.com/ledgerlab/powchain/foundation/blockchain/database"
)

// newTx is the payload of a transaction submission. Pointer fields tell an
// absent field apart from one set to its zero value.
type newTx struct {
	Sender    *string  `json:"sender" validate:"required"`
	Recipient *string  `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

type newNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1"`
}

type message struct {
	Message string `json:"message"`
}

type minedBlock struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type registered struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolved struct {
	Message  string           `json:"message"`
	NewChain []database.Block `json:"new_chain,omitempty"`
	Chain    []database.Block `json:"chain,omitempty"`
}

type nodeList struct {
	NodeID string   `json:"node_id"`
	Nodes  []string `json:"nodes"`
}
