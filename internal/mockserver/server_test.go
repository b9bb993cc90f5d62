package mockserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nightshade/ue5-bridge/internal/jsonrpc"
)

func postRPC(t *testing.T, url string, body string) jsonrpc.Response {
	t.Helper()
	resp, err := http.Post(url+"/mcp", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /mcp: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var decoded jsonrpc.Response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return decoded
}

func TestHandler_EchoesToolCall(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp := postRPC(t, ts.URL,
		`{"jsonrpc":"2.0","id":"nightshade-ue5","method":"tools/call","params":{"name":"prefab_audit","arguments":{"target":"Foo"}}}`)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	if resp.ID != "nightshade-ue5" {
		t.Errorf("id = %v, want nightshade-ue5", resp.ID)
	}

	var result struct {
		OK   bool `json:"ok"`
		Echo struct {
			Name      string                 `json:"name"`
			Arguments map[string]interface{} `json:"arguments"`
		} `json:"echo"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.OK {
		t.Error("ok = false, want true")
	}
	if result.Echo.Name != "prefab_audit" {
		t.Errorf("echo.name = %q, want prefab_audit", result.Echo.Name)
	}
	if result.Echo.Arguments["target"] != "Foo" {
		t.Errorf("echo.arguments.target = %v, want Foo", result.Echo.Arguments["target"])
	}
}

func TestHandler_RejectsUnknownMethod(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp := postRPC(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("code = %d, want -32601", resp.Error.Code)
	}
}

func TestHandler_RejectsWrongVersion(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp := postRPC(t, ts.URL, `{"jsonrpc":"1.0","id":1,"method":"tools/call"}`)
	if resp.Error == nil {
		t.Fatal("expected error for wrong jsonrpc version")
	}
	if resp.Error.Code != -32600 {
		t.Errorf("code = %d, want -32600", resp.Error.Code)
	}
}

func TestHandler_RejectsBadJSON(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp := postRPC(t, ts.URL, `{not json`)
	if resp.Error == nil {
		t.Fatal("expected error for malformed body")
	}
	if resp.Error.Code != -32700 {
		t.Errorf("code = %d, want -32700", resp.Error.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/mcp")
	if err != nil {
		t.Fatalf("GET /mcp: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestHandler_Health(t *testing.T) {
	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
