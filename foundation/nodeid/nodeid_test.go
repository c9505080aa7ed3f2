package nodeid_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ledgerlab/powchain/foundation/nodeid"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_New(t *testing.T) {
	t.Log("Given the need to generate random node identifiers.")
	{
		id1 := nodeid.New()
		id2 := nodeid.New()

		if len(id1) != 32 {
			t.Fatalf("\t%s\tShould be 32 hex characters : got %q", failed, id1)
		}
		t.Logf("\t%s\tShould be 32 hex characters.", success)

		if id1 == id2 {
			t.Fatalf("\t%s\tShould be unique : got %q twice", failed, id1)
		}
		t.Logf("\t%s\tShould be unique.", success)
	}
}

func Test_FromKeyFile(t *testing.T) {
	t.Log("Given the need to derive a node identifier from a key file.")
	{
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould generate a key : %v", failed, err)
		}

		path := filepath.Join(t.TempDir(), "node.ecdsa")
		if err := crypto.SaveECDSA(path, privateKey); err != nil {
			t.Fatalf("\t%s\tShould save the key : %v", failed, err)
		}

		id, err := nodeid.Resolve(path)
		if err != nil {
			t.Fatalf("\t%s\tShould load the key : %v", failed, err)
		}

		exp := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
		if id != exp {
			t.Fatalf("\t%s\tShould use the key address : exp %s, got %s", failed, exp, id)
		}
		t.Logf("\t%s\tShould use the key address.", success)

		if _, err := nodeid.FromKeyFile(filepath.Join(t.TempDir(), "missing.ecdsa")); err == nil {
			t.Fatalf("\t%s\tShould fail for a missing key file.", failed)
		}
		t.Logf("\t%s\tShould fail for a missing key file.", success)
	}
}
