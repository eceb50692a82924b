package suitest

import (
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
)

// NodeMethods lists the JSON-RPC methods served by Node.
var NodeMethods = []string{
	"sui_getObject",
	"suix_getReferenceGasPrice",
	"suix_getCoins",
	"sui_dryRunTransactionBlock",
	"sui_executeTransactionBlock",
}

// Error codes returned by Node. Codes reserved by the JSON-RPC protocol
// cannot be returned by a method.
const (
	ErrCodeInvalidParams jsonrpc2.ErrorCode = 1
	ErrCodeNotHandled    jsonrpc2.ErrorCode = 2
	ErrCodeMethod        jsonrpc2.ErrorCode = 3
)

// Method handles a single JSON-RPC call. A returned error is sent back as a
// JSON-RPC error.
type Method func(params []json.RawMessage) (interface{}, error)

// Call is a recorded JSON-RPC request.
type Call struct {
	Method string
	Params []json.RawMessage
}

// Node is an in-process JSON-RPC server. Each method answers with what was
// registered for it. Unregistered methods return an error.
type Node struct {
	t      testing.TB
	server *httptest.Server

	mu      sync.Mutex
	methods map[string]Method
	calls   []Call
}

// NewNode starts a server that is closed when the test ends.
func NewNode(t testing.TB) *Node {
	t.Helper()

	n := &Node{t: t, methods: make(map[string]Method)}
	methods := make(jsonrpc2.MethodMap, len(NodeMethods))
	for _, name := range NodeMethods {
		methods[name] = n.dispatch(name)
	}
	n.server = httptest.NewServer(jsonrpc2.HTTPRequestHandler(methods, log.New(testWriter{t}, "", 0)))
	t.Cleanup(n.server.Close)
	return n
}

// URL returns the server address.
func (n *Node) URL() string {
	return n.server.URL
}

// Handle registers a handler of given method.
func (n *Node) Handle(method string, fn Method) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.methods[method] = fn
}

// Respond makes given method always return the result.
func (n *Node) Respond(method string, result interface{}) {
	n.Handle(method, func([]json.RawMessage) (interface{}, error) {
		return result, nil
	})
}

// RespondJSON makes given method always return the raw JSON result.
func (n *Node) RespondJSON(method string, result string) {
	n.Respond(method, json.RawMessage(result))
}

// Calls returns all requests of given method, in order received.
func (n *Node) Calls(method string) []Call {
	n.mu.Lock()
	defer n.mu.Unlock()

	var res []Call
	for _, c := range n.calls {
		if c.Method == method {
			res = append(res, c)
		}
	}
	return res
}

// TotalCalls returns the number of all requests received.
func (n *Node) TotalCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *Node) dispatch(name string) jsonrpc2.MethodFunc {
	return func(_ context.Context, raw json.RawMessage) interface{} {
		var params []json.RawMessage
		if len(raw) != 0 {
			if err := json.Unmarshal(raw, &params); err != nil {
				return jsonrpc2.NewError(ErrCodeInvalidParams, "invalid params", err.Error())
			}
		}

		n.mu.Lock()
		n.calls = append(n.calls, Call{Method: name, Params: params})
		fn, ok := n.methods[name]
		n.mu.Unlock()

		if !ok {
			return jsonrpc2.NewError(ErrCodeNotHandled, "method not handled", name)
		}
		res, err := fn(params)
		if err != nil {
			return jsonrpc2.NewError(ErrCodeMethod, err.Error(), nil)
		}
		return res
	}
}

// testWriter sends server logs to the test log.
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
