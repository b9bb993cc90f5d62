// Package jsonrpc holds the JSON-RPC 2.0 wire types used on the bridge's
// HTTP transport.
package jsonrpc

import "encoding/json"

// Version is the protocol version stamped on every request.
const Version = "2.0"

// Request is an outbound JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Response is an inbound JSON-RPC 2.0 response. Result is kept raw: the
// bridge does not enforce any shape on what the editor tools return.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the error member of a JSON-RPC 2.0 response.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string { return e.Message }
