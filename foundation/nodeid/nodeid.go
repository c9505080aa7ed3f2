// Package nodeid provides the identifier a node is credited under when it
// mines a block.
package nodeid

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// New returns a random identifier: a UUID in hex form without dashes.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FromKeyFile derives a stable identifier from the ECDSA private key stored
// in the file. The identifier is the address of the key's public half.
func FromKeyFile(path string) (string, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return "", fmt.Errorf("unable to load private key: %w", err)
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}

// Resolve returns the identifier for the key file when a path is given and a
// random one otherwise.
func Resolve(keyPath string) (string, error) {
	if keyPath == "" {
		return New(), nil
	}

	return FromKeyFile(keyPath)
}
