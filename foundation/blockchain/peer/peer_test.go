package peer_test

import (
	"testing"

	"github.com/ledgerlab/powchain/foundation/blockchain/peer"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
		exp   []peer.Peer
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host1"}, {Host: "host2"}, {Host: "host3"}},
			exp:   []peer.Peer{{Host: "host1"}, {Host: "host2"}, {Host: "host3"}},
		},
		{
			name:  "duplicates",
			peers: []peer.Peer{{Host: "host3"}, {Host: "host1"}, {Host: "host3"}, {Host: "host2"}, {Host: "host1"}},
			exp:   []peer.Peer{{Host: "host3"}, {Host: "host1"}, {Host: "host2"}},
		},
	}

	t.Log("Given the need to maintain a set of peers.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s peers.", testID, tst.name)
			{
				f := func(t *testing.T) {
					ps := peer.NewPeerSet()

					for _, p := range tst.peers {
						ps.Add(p)
					}

					peers := ps.Copy("")
					if len(peers) != len(tst.exp) {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, len(peers))
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, len(tst.exp))
						t.Fatalf("\t%s\tTest %d:\tShould get back the right peers.", failed, testID)
					}
					for i := range peers {
						if peers[i] != tst.exp[i] {
							t.Fatalf("\t%s\tTest %d:\tShould keep insertion order, got %s at %d exp %s.", failed, testID, peers[i], i, tst.exp[i])
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back the peers in insertion order.", success, testID)

					peers = ps.Copy("host2")
					if len(peers) != len(tst.exp)-1 {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, len(peers))
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, len(tst.exp)-1)
						t.Fatalf("\t%s\tTest %d:\tShould leave out the local host.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould leave out the local host.", success, testID)

					if ps.Add(tst.exp[0]) {
						t.Fatalf("\t%s\tTest %d:\tShould report a known peer as not added.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould report a known peer as not added.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Parse(t *testing.T) {
	type table struct {
		address string
		host    string
		fail    bool
	}

	tt := []table{
		{address: "http://192.168.0.5:5000", host: "192.168.0.5:5000"},
		{address: "https://node.example.com:8080/v1/chain", host: "node.example.com:8080"},
		{address: "192.168.0.5:5000", host: "192.168.0.5:5000"},
		{address: "  localhost:9080 ", host: "localhost:9080"},
		{address: "node-b", host: "node-b"},
		{address: "", fail: true},
		{address: "http://", fail: true},
		{address: "http://bad host:80", fail: true},
	}

	t.Log("Given the need to normalize peer addresses.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling address %q.", testID, tst.address)
			{
				f := func(t *testing.T) {
					p, err := peer.Parse(tst.address)
					if tst.fail {
						if err == nil {
							t.Fatalf("\t%s\tTest %d:\tShould reject the address, got %s.", failed, testID, p)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the address.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould parse the address: %v", failed, testID, err)
					}
					if p.Host != tst.host {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, p.Host)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.host)
						t.Fatalf("\t%s\tTest %d:\tShould get the network location.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the network location.", success, testID)
				}

				t.Run(tst.address, f)
			}
		}
	}
}
