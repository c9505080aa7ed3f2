package mempool_test

import (
	"testing"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				{Sender: "0", Recipient: "alice", Amount: 1},
				{Sender: "alice", Recipient: "bob", Amount: 0.5},
				{Sender: "bob", Recipient: "carol", Amount: -2},
				{Sender: "0", Recipient: "alice", Amount: 1},
			},
		},
		{
			name: "empty",
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back the new count, got %d exp %d.", failed, testID, n, i+1)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add the transactions.", success, testID)

					for i, tx := range mp.Copy() {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould keep submission order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould keep submission order.", success, testID)

					trans := mp.Flush()
					if len(trans) != len(tst.txs) || trans == nil {
						t.Fatalf("\t%s\tTest %d:\tShould flush every transaction, got %d.", failed, testID, len(trans))
					}
					t.Logf("\t%s\tTest %d:\tShould flush every transaction.", success, testID)

					if mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be empty after a flush.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be empty after a flush.", success, testID)

					mp.Add(database.NewTx("late", "tx", 1))
					if len(trans) != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould not leak new transactions into a flushed set.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not leak new transactions into a flushed set.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
