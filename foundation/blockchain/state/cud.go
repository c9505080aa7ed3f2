package state

import (
	"github.com/ledgerlab/powchain/foundation/blockchain/peer"
)

// RegisterPeer normalizes the address and adds the peer to the known peer
// set. It reports false if the peer was already known.
func (s *State) RegisterPeer(address string) (peer.Peer, bool, error) {
	pr, err := peer.Parse(address)
	if err != nil {
		return peer.Peer{}, false, err
	}

	added := s.knownPeers.Add(pr)
	if added {
		s.evHandler("state: RegisterPeer: adding peer-node %s", pr)
	}

	return pr, added, nil
}
