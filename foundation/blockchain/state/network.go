package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ledgerlab/powchain/foundation/blockchain/database"
	"github.com/ledgerlab/powchain/foundation/blockchain/peer"
)

const baseURL = "http://%s/v1"

// ChainFetcher represents the behavior required to retrieve the full chain
// held by a peer.
type ChainFetcher interface {
	FetchChain(ctx context.Context, pr peer.Peer) (database.ChainData, error)
}

// PeerUnreachableError is returned when a peer could not be reached or did
// not answer with a usable chain.
type PeerUnreachableError struct {
	Host string
	Err  error
}

// Error implements the error interface.
func (pe *PeerUnreachableError) Error() string {
	return fmt.Sprintf("peer %s unreachable: %s", pe.Host, pe.Err)
}

// Unwrap provides access to the underlying error.
func (pe *PeerUnreachableError) Unwrap() error {
	return pe.Err
}

// =============================================================================

// HTTPFetcher retrieves chains from peers using the node's HTTP API.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher constructs a fetcher using the default HTTP client. Timeouts
// come from the context handed to FetchChain.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: http.DefaultClient,
	}
}

// FetchChain asks the peer for its full chain.
func (f *HTTPFetcher) FetchChain(ctx context.Context, pr peer.Peer) (database.ChainData, error) {
	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	var cd database.ChainData
	if err := send(ctx, f.client, http.MethodGet, url, nil, &cd); err != nil {
		return database.ChainData{}, &PeerUnreachableError{Host: pr.Host, Err: err}
	}

	return cd, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(ctx context.Context, client *http.Client, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader
	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if dataSend != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("status %d: %w", resp.StatusCode, errors.New(string(bytes.TrimSpace(msg))))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
