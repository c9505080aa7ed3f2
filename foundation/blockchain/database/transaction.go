package database

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFiniteAmount is returned for a transaction whose amount is NaN or
// infinite. Such an amount has no JSON encoding and so cannot be hashed.
var ErrNonFiniteAmount = errors.New("amount must be a finite number")

// Tx is the transactional information between two parties. Any sender,
// recipient and finite amount is accepted.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// Validate checks the transaction can be encoded and hashed.
func (tx Tx) Validate() error {
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return fmt.Errorf("tx[%s]: %w", tx, ErrNonFiniteAmount)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.Sender, tx.Recipient, tx.Amount)
}
