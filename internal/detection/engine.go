// Package detection scans outbound tool arguments for leaked secrets
// before they are sent to the editor bridge. Audit targets and bulk-edit
// payloads are routinely pasted from build scripts, which is exactly where
// stray credentials end up.
package detection

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	gitleaks "github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
)

// Result is a single secret detected in an argument value.
type Result struct {
	RuleID      string
	Description string
}

type Engine struct {
	detector *detect.Detector
}

// NewEngine creates a detection engine backed by gitleaks. With an empty
// configPath the gitleaks default ruleset is used; otherwise the TOML file
// at configPath is loaded instead.
func NewEngine(configPath string) (*Engine, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		if err := v.ReadConfig(strings.NewReader(gitleaks.DefaultConfig)); err != nil {
			return nil, fmt.Errorf("failed to read default config: %w", err)
		}
	}

	// Parse into gitleaks config format
	var vc gitleaks.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Translate to GitLeaks config
	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate config: %w", err)
	}

	return &Engine{
		detector: detect.NewDetector(cfg),
	}, nil
}

// ScanArguments runs the detector over every string value reachable in the
// given JSON-serializable arguments payload.
func (e *Engine) ScanArguments(arguments interface{}) ([]Result, error) {
	b, err := json.Marshal(arguments)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}
	var decoded interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}

	var results []Result
	for _, value := range stringValues(decoded) {
		for _, finding := range e.detector.DetectString(value) {
			results = append(results, Result{
				RuleID:      finding.RuleID,
				Description: finding.Description,
			})
		}
	}
	return results, nil
}

// stringValues collects every string leaf in a decoded JSON value.
func stringValues(data interface{}) []string {
	var out []string

	switch v := data.(type) {
	case string:
		out = append(out, v)
	case map[string]interface{}:
		for _, value := range v {
			out = append(out, stringValues(value)...)
		}
	case []interface{}:
		for _, item := range v {
			out = append(out, stringValues(item)...)
		}
	}

	return out
}
