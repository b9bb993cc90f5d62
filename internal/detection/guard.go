package detection

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Caller matches mcp.Client's CallTool signature.
type Caller interface {
	CallTool(ctx context.Context, toolName string, arguments interface{}) (json.RawMessage, error)
}

// Guard wraps a Caller and refuses any call whose arguments contain
// detected secrets. Nothing is sent for a blocked call.
type Guard struct {
	next   Caller
	engine *Engine
}

func NewGuard(next Caller, engine *Engine) *Guard {
	return &Guard{next: next, engine: engine}
}

func (g *Guard) CallTool(ctx context.Context, toolName string, arguments interface{}) (json.RawMessage, error) {
	results, err := g.engine.ScanArguments(arguments)
	if err != nil {
		return nil, fmt.Errorf("scan arguments: %w", err)
	}
	if len(results) > 0 {
		descriptions := make([]string, len(results))
		for i, r := range results {
			descriptions[i] = r.Description
		}
		return nil, fmt.Errorf("call to %q blocked, arguments contain sensitive information: %s",
			toolName, strings.Join(descriptions, "; "))
	}
	return g.next.CallTool(ctx, toolName, arguments)
}
