package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nightshade/ue5-bridge/internal/config"
	"github.com/nightshade/ue5-bridge/internal/detection"
	"github.com/nightshade/ue5-bridge/internal/editor"
	"github.com/nightshade/ue5-bridge/internal/mcp"
	"github.com/nightshade/ue5-bridge/internal/mockserver"
)

var (
	configPath string
	endpoint   string
	noScan     bool
	verbose    bool

	target   string
	scene    string
	dryRun   bool
	toolArgs string
	port     int
)

func main() {
	var rootCmd = &cobra.Command{
		Use:              "nightshade",
		Short:            "Nightshade - UE5 editor automation over MCP",
		PersistentPreRun: setupLogging,
		Run:              runAudit,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "MCP endpoint URL (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVar(&noScan, "no-scan", false, "skip the outbound secret scan")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit prefabs for naming, collision and performance issues",
		Run:   runAudit,
	}
	auditCmd.Flags().StringVar(&target, "target", editor.DefaultTarget, "asset group to audit")

	refactorCmd := &cobra.Command{
		Use:   "refactor",
		Short: "Remove empty groups and rebuild navigation in a scene",
		Run:   runRefactor,
	}
	refactorCmd.Flags().StringVar(&scene, "scene", editor.DefaultScene, "scene to refactor")
	refactorCmd.Flags().BoolVar(&dryRun, "dry-run", true, "simulate without persisting changes")

	bulkEditCmd := &cobra.Command{
		Use:   "bulk-edit",
		Short: "Preview the standard stat changes across an asset group (always a dry run)",
		Run:   runBulkEdit,
	}
	bulkEditCmd.Flags().StringVar(&target, "target", editor.DefaultTarget, "asset group to edit")

	callCmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke an arbitrary editor tool",
		Args:  cobra.ExactArgs(1),
		Run:   runCall,
	}
	callCmd.Flags().StringVar(&toolArgs, "args", "{}", "tool arguments as a JSON object")

	mockCmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve a local echo MCP endpoint for development",
		Run:   runMockServer,
	}
	mockCmd.Flags().IntVar(&port, "port", 0, "listen port (defaults to the configured mock port)")

	rootCmd.AddCommand(auditCmd, refactorCmd, bulkEditCmd, callCmd, mockCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func runAudit(cmd *cobra.Command, args []string) {
	bridge := newBridge()
	if target == "" {
		target = editor.DefaultTarget
	}

	fmt.Println("Running prefab audit...")
	result, err := bridge.PrefabAudit(context.Background(), target)
	if err != nil {
		log.Fatal().Err(err).Msg("Prefab audit failed")
	}
	printResult(result)
}

func runRefactor(cmd *cobra.Command, args []string) {
	bridge := newBridge()

	fmt.Println("Running scene refactor...")
	result, err := bridge.SceneRefactor(context.Background(), scene, dryRun)
	if err != nil {
		log.Fatal().Err(err).Msg("Scene refactor failed")
	}
	printResult(result)
}

func runBulkEdit(cmd *cobra.Command, args []string) {
	bridge := newBridge()

	fmt.Println("Running bulk edit...")
	result, err := bridge.BulkEdit(context.Background(), target)
	if err != nil {
		log.Fatal().Err(err).Msg("Bulk edit failed")
	}
	printResult(result)
}

func runCall(cmd *cobra.Command, args []string) {
	var arguments map[string]interface{}
	if err := json.Unmarshal([]byte(toolArgs), &arguments); err != nil {
		log.Fatal().Err(err).Msg("Invalid --args JSON")
	}

	caller := newCaller()
	result, err := caller.CallTool(context.Background(), args[0], arguments)
	if err != nil {
		log.Fatal().Err(err).Str("tool", args[0]).Msg("Tool call failed")
	}
	printResult(result)
}

func runMockServer(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if port == 0 {
		port = cfg.MockPort
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mockserver.Handler(),
	}

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().Int("port", port).Msg("Starting mock MCP server")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal().Err(err).Msg("Error starting mock server")
	case <-shutdown:
		log.Info().Msg("Shutting down mock server...")
		server.Close()
		log.Info().Msg("Mock server shut down successfully")
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return cfg
}

// newCaller builds the MCP caller from configuration, wrapped with the
// secret-scanning guard unless scanning is disabled.
func newCaller() detection.Caller {
	cfg := loadConfig()

	var caller detection.Caller = mcp.New(cfg.Endpoint, mcp.Options{
		Timeout:   cfg.Timeout(),
		RequestID: cfg.RequestID,
	})

	if cfg.ScanArguments && !noScan {
		engine, err := detection.NewEngine("")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create detection engine")
		}
		caller = detection.NewGuard(caller, engine)
	}

	log.Debug().
		Str("client_id", cfg.ClientID).
		Str("endpoint", cfg.Endpoint).
		Msg("Bridge caller ready")

	return caller
}

func newBridge() *editor.Bridge {
	return editor.NewBridge(newCaller())
}

func printResult(raw json.RawMessage) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Fatal().Err(err).Msg("Failed to decode result")
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to format result")
	}
	fmt.Println(string(out))
}
