// Package mockserver implements a local stand-in for the editor-side MCP
// server. It accepts JSON-RPC 2.0 tools/call requests on /mcp and echoes
// the received params back, which is enough to exercise the bridge end to
// end without a running editor.
package mockserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/nightshade/ue5-bridge/internal/jsonrpc"
)

// EchoResult is the result member returned for every accepted tool call.
type EchoResult struct {
	OK   bool        `json:"ok"`
	Echo interface{} `json:"echo"`
}

// Handler returns the mock server's HTTP handler.
func Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/mcp", handleRPC).Methods("POST")
	router.HandleFunc("/healthz", handleHealth).Methods("GET")
	return router
}

func handleRPC(w http.ResponseWriter, r *http.Request) {
	var req jsonrpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			Error:   &jsonrpc.Error{Code: -32700, Message: "Parse error", Data: err.Error()},
		})
		return
	}

	if req.JSONRPC != jsonrpc.Version {
		writeResponse(w, jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			ID:      req.ID,
			Error:   &jsonrpc.Error{Code: -32600, Message: "Invalid Request", Data: "jsonrpc must be '2.0'"},
		})
		return
	}

	if req.Method != "tools/call" {
		writeResponse(w, jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			ID:      req.ID,
			Error:   &jsonrpc.Error{Code: -32601, Message: "Method not found", Data: req.Method},
		})
		return
	}

	log.Info().
		Interface("id", req.ID).
		Str("request_id", r.Header.Get("X-Request-ID")).
		Msg("Echoing tool call")

	result, err := json.Marshal(EchoResult{OK: true, Echo: req.Params})
	if err != nil {
		writeResponse(w, jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			ID:      req.ID,
			Error:   &jsonrpc.Error{Code: -32603, Message: "Internal error", Data: err.Error()},
		})
		return
	}

	writeResponse(w, jsonrpc.Response{
		JSONRPC: jsonrpc.Version,
		ID:      req.ID,
		Result:  result,
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeResponse(w http.ResponseWriter, resp jsonrpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}
