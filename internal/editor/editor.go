// Package editor wraps the MCP client with the bridge's editor automation
// tools: prefab audits, scene refactors, and bulk asset edits. Each tool's
// argument payload is an explicit struct so the wire shape is checked at
// compile time instead of living in loose maps.
package editor

import (
	"context"
	"encoding/json"

	"github.com/nightshade/ue5-bridge/internal/mcp"
)

// Tool names recognized by the editor-side MCP server.
const (
	ToolPrefabAudit   = "prefab_audit"
	ToolSceneRefactor = "scene_refactor"
	ToolBulkEdit      = "bulk_edit_assets"
)

// Defaults used when the caller does not name a target or scene.
const (
	DefaultTarget = "WeaponAssets"
	DefaultScene  = "Arena"
)

// PrefabAuditArgs is the argument payload for prefab_audit.
type PrefabAuditArgs struct {
	Command string   `json:"command"`
	Target  string   `json:"target"`
	Checks  []string `json:"checks"`
}

// SceneRefactorArgs is the argument payload for scene_refactor.
type SceneRefactorArgs struct {
	Command string   `json:"command"`
	Scene   string   `json:"scene"`
	Steps   []string `json:"steps"`
	DryRun  bool     `json:"dry_run"`
}

// Modifications is the fixed stat block applied by bulk edits.
type Modifications struct {
	Damage int `json:"damage"`
	Range  int `json:"range"`
}

// BulkEditArgs is the argument payload for bulk_edit_assets.
type BulkEditArgs struct {
	Command       string        `json:"command"`
	Target        string        `json:"target"`
	Modifications Modifications `json:"modifications"`
	DryRun        bool          `json:"dry_run"`
}

// NewPrefabAuditArgs builds the audit payload for a target asset group,
// running the standard naming, collision and performance checks.
func NewPrefabAuditArgs(target string) PrefabAuditArgs {
	return PrefabAuditArgs{
		Command: ToolPrefabAudit,
		Target:  target,
		Checks:  []string{"naming", "collision", "performance"},
	}
}

// NewSceneRefactorArgs builds the refactor payload for a scene.
func NewSceneRefactorArgs(scene string, dryRun bool) SceneRefactorArgs {
	return SceneRefactorArgs{
		Command: ToolSceneRefactor,
		Scene:   scene,
		Steps:   []string{"remove_empty_groups", "rebuild_navigation"},
		DryRun:  dryRun,
	}
}

// NewBulkEditArgs builds the bulk-edit payload for a target asset group.
// Bulk edits are always a dry run; applying them for real goes through the
// editor UI after review.
func NewBulkEditArgs(target string) BulkEditArgs {
	return BulkEditArgs{
		Command:       ToolBulkEdit,
		Target:        target,
		Modifications: Modifications{Damage: 42, Range: 120},
		DryRun:        true,
	}
}

// Caller is the part of the MCP client the bridge needs. *mcp.Client
// satisfies it; tests substitute their own.
type Caller interface {
	CallTool(ctx context.Context, toolName string, arguments interface{}) (json.RawMessage, error)
}

var _ Caller = (*mcp.Client)(nil)

// Bridge runs editor automation tools through an MCP caller.
type Bridge struct {
	caller Caller
}

// NewBridge wraps an MCP caller.
func NewBridge(c Caller) *Bridge {
	return &Bridge{caller: c}
}

// PrefabAudit audits the prefabs under target. Empty target falls back to
// DefaultTarget.
func (b *Bridge) PrefabAudit(ctx context.Context, target string) (json.RawMessage, error) {
	if target == "" {
		target = DefaultTarget
	}
	return b.caller.CallTool(ctx, ToolPrefabAudit, NewPrefabAuditArgs(target))
}

// SceneRefactor refactors a scene. Empty scene falls back to DefaultScene.
func (b *Bridge) SceneRefactor(ctx context.Context, scene string, dryRun bool) (json.RawMessage, error) {
	if scene == "" {
		scene = DefaultScene
	}
	return b.caller.CallTool(ctx, ToolSceneRefactor, NewSceneRefactorArgs(scene, dryRun))
}

// BulkEdit applies the fixed stat modifications to target as a dry run.
func (b *Bridge) BulkEdit(ctx context.Context, target string) (json.RawMessage, error) {
	if target == "" {
		target = DefaultTarget
	}
	return b.caller.CallTool(ctx, ToolBulkEdit, NewBulkEditArgs(target))
}
