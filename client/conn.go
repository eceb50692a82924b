package client

import (
	"context"
	"net/http"
	"time"

	"github.com/artfi/suiops/errors"
	"github.com/ybbus/jsonrpc/v2"
)

// Networks with a public fullnode.
const (
	Mainnet  = "mainnet"
	Testnet  = "testnet"
	Devnet   = "devnet"
	Localnet = "localnet"
)

var fullnodes = map[string]string{
	Mainnet:  "https://fullnode.mainnet.sui.io:443",
	Testnet:  "https://fullnode.testnet.sui.io:443",
	Devnet:   "https://fullnode.devnet.sui.io:443",
	Localnet: "http://127.0.0.1:9000",
}

// FullnodeURL returns the public fullnode address of a known network.
func FullnodeURL(network string) (string, error) {
	url, ok := fullnodes[network]
	if !ok {
		return "", errors.Wrapf(errors.ErrConfiguration, "unknown network %q", network)
	}
	return url, nil
}

// DefaultTimeout limits a single call to the node.
const DefaultTimeout = 60 * time.Second

// Connection opens JSON-RPC clients to a node. A client returned by Bind
// sends its requests within given context, so cancelling the context
// aborts a request in flight.
type Connection interface {
	Bind(ctx context.Context) jsonrpc.RPCClient
}

type httpConnection struct {
	remote    string
	transport http.RoundTripper
}

// NewHTTPConnection takes a URL and sends all requests to the remote node.
func NewHTTPConnection(remote string) Connection {
	return &httpConnection{
		remote:    remote,
		transport: http.DefaultTransport,
	}
}

func (c *httpConnection) Bind(ctx context.Context) jsonrpc.RPCClient {
	return jsonrpc.NewClientWithOpts(c.remote, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{
			Transport: contextTransport{ctx: ctx, next: c.transport},
		},
	})
}

// contextTransport sends every request within the context of the call it
// belongs to.
type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}
