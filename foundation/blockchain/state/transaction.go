package state

import "github.com/ledgerlab/powchain/foundation/blockchain/database"

// SubmitTransaction accepts a transaction for inclusion in the next block and
// returns the index of that block. Presence of the fields is checked by the
// caller. An amount that is NaN or infinite is refused with an error
// matching database.ErrNonFiniteAmount.
func (s *State) SubmitTransaction(sender string, recipient string, amount float64) (uint64, error) {
	tx := database.NewTx(sender, recipient, amount)

	index, err := s.NewTransaction(tx)
	if err != nil {
		s.evHandler("state: SubmitTransaction: tx[%s]: ERROR: %s", tx, err)
		return 0, err
	}

	s.evHandler("state: SubmitTransaction: tx[%s]: block[%d]", tx, index)

	return index, nil
}
