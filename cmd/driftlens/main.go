// Package main is the driftlens CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/driftlens/driftlens/internal/cli"
	"github.com/driftlens/driftlens/internal/config"
	"github.com/driftlens/driftlens/internal/drift"
	"github.com/driftlens/driftlens/internal/extract"
	"github.com/driftlens/driftlens/internal/scanner"
	"github.com/driftlens/driftlens/internal/server"
	"github.com/driftlens/driftlens/internal/state"
	"github.com/driftlens/driftlens/internal/watcher"
	"github.com/driftlens/driftlens/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/driftlens/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "driftlens server" from a project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		// No config anywhere: run on pure defaults.
		if path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "scan":
		runScan()
	case "server":
		runServer()
	case "watch":
		runWatch()
	case "review":
		runReview()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("driftlens version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runScan() {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	failOver := fs.Float64("fail-over", 0, "exit nonzero when any pair's drift score exceeds this threshold (0 disables)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: driftlens scan [flags] <file-or-directory>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat path: %v\n", err)
		os.Exit(1)
	}

	var worst float64
	if info.IsDir() {
		result, err := components.Scanner.ScanDir(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteScanResult(os.Stdout, result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		for i := range result.Pairs {
			if result.Pairs[i].DriftScore > worst {
				worst = result.Pairs[i].DriftScore
			}
		}
	} else {
		pairs, err := components.Scanner.ScanFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WritePairs(os.Stdout, pairs, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		for i := range pairs {
			if pairs[i].DriftScore > worst {
				worst = pairs[i].DriftScore
			}
		}
	}
	if *failOver > 0 && worst > *failOver {
		fmt.Fprintf(os.Stderr, "Drift score %.2f exceeds threshold %.2f\n", worst, *failOver)
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (file events, scan progress, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	cfg.Debug = debugMode
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Scan.Directories) > 0 {
		watchSvc := newWatchService(cfg, components, logger, debugMode)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(components.Scanner, components.Store, components.Registry, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dirs := cfg.Scan.Directories
	if fs.NArg() > 0 {
		dirs = fs.Args()
	}
	if len(dirs) == 0 {
		fmt.Println("Usage: driftlens watch [flags] <directory>...")
		fmt.Println("  (or set scan.directories in config.yaml)")
		os.Exit(1)
	}
	cfg.Scan.Directories = dirs

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchSvc := newWatchService(cfg, components, logger, debugMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watchSvc.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer watchSvc.Stop()
	logger.Info("watching for changes", zap.Strings("directories", dirs))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
}

// newWatchService builds a watcher that rescans changed files and forgets
// state records for deleted ones.
func newWatchService(cfg *config.Config, components *Components, logger *zap.Logger, debugMode bool) *watcher.Watcher {
	exts := cfg.Scan.Extensions
	if len(exts) == 0 {
		exts = components.Registry.AllExtensions()
	}
	watchOpts := []watcher.WatcherOption{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	sc := components.Scanner
	store := components.Store
	return watcher.NewWatcher(
		cfg.Scan.Directories,
		exts,
		func(path string) {
			pairs, err := sc.ScanFile(context.Background(), path)
			if err != nil {
				logger.Warn("watch rescan failed", zap.String("path", path), zap.Error(err))
				return
			}
			drifted := 0
			for i := range pairs {
				if pairs[i].DriftScore > 0 {
					drifted++
				}
			}
			logger.Info("rescanned", zap.String("path", path), zap.Int("pairs", len(pairs)), zap.Int("drifted", drifted))
		},
		func(path string) {
			if err := forgetFile(context.Background(), store, path); err != nil {
				logger.Warn("watch forget failed", zap.String("path", path), zap.Error(err))
			}
		},
		watchOpts...,
	)
}

// forgetFile removes all state records belonging to a deleted file.
func forgetFile(ctx context.Context, store state.Store, path string) error {
	records, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.FilePath != path {
			continue
		}
		if err := store.Delete(ctx, rec.ID); err != nil {
			return err
		}
	}
	return nil
}

func runReview() {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use local state store)")
	undo := fs.Bool("undo", false, "clear the reviewed flag instead of setting it")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: driftlens review [flags] <pair-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	if *serverURL != "" {
		if err := reviewViaHTTP(*serverURL, id, !*undo); err != nil {
			fmt.Fprintf(os.Stderr, "Review failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open state store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		ctx := context.Background()
		rec, err := store.Get(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Review failed: %v\n", err)
			os.Exit(1)
		}
		if rec == nil {
			fmt.Fprintf(os.Stderr, "Pair not found: %s\n", id)
			os.Exit(1)
		}
		if err := store.MarkReviewed(ctx, id, !*undo); err != nil {
			fmt.Fprintf(os.Stderr, "Review failed: %v\n", err)
			os.Exit(1)
		}
	}
	if *undo {
		fmt.Printf("Unreviewed: %s\n", id)
	} else {
		fmt.Printf("Reviewed: %s\n", id)
	}
}

func reviewViaHTTP(serverURL, id string, reviewed bool) error {
	url := serverURL + "/api/v1/pairs/" + id + "/review"
	var (
		resp *http.Response
		err  error
	)
	if reviewed {
		resp, err = http.Post(url, "application/json", bytes.NewReader(nil))
	} else {
		req, reqErr := http.NewRequest(http.MethodDelete, url, nil)
		if reqErr != nil {
			return reqErr
		}
		resp, err = http.DefaultClient.Do(req)
	}
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Pairs        int                    `json:"pairs"`
	Reviewed     int                    `json:"reviewed"`
	Drifted      int                    `json:"drifted"`
	LastFullScan *time.Time             `json:"last_full_scan,omitempty"`
	Config       map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use local state store)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open state store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		ctx := context.Background()
		records, err := store.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		for _, rec := range records {
			status.Pairs++
			if rec.IsReviewed {
				status.Reviewed++
			}
			if rec.DriftScore > 0 {
				status.Drifted++
			}
		}
		if last, err := store.LastFullScan(ctx); err == nil {
			status.LastFullScan = last
		}
		status.Config = map[string]interface{}{
			"state_backend": cfg.State.Backend,
			"state_path":    cfg.State.Path,
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("pairs:     %d   # doc-code pairs tracked\n", status.Pairs)
		fmt.Printf("reviewed:  %d   # pairs marked reviewed\n", status.Reviewed)
		fmt.Printf("drifted:   %d   # pairs with nonzero drift score\n", status.Drifted)
		if status.LastFullScan != nil {
			fmt.Printf("last_scan: %s\n", status.LastFullScan.Format(time.RFC3339))
		}
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"state_backend", "state_path", "scan_workers", "languages"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-14s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store    state.Store
	Registry *extract.Registry
	Analyzer *drift.Analyzer
	Scanner  *scanner.Scanner
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func openStore(cfg *config.Config) (state.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.State.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	switch cfg.State.Backend {
	case "sqlite":
		return state.NewSQLiteStore(cfg.State.Path)
	case "disk", "":
		return state.NewDiskStore(cfg.State.Path)
	default:
		return nil, fmt.Errorf("unknown state backend %q (use disk or sqlite)", cfg.State.Backend)
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state store: %w", err)
	}

	registry := extract.NewRegistry()
	analyzer := drift.NewAnalyzer(&cfg.Analyzer)

	scanOpts := []scanner.Option{
		scanner.WithStore(store),
		scanner.WithWorkers(cfg.Scan.Workers),
	}
	if cfg.Scan.CacheTTLSeconds > 0 {
		scanOpts = append(scanOpts, scanner.WithCache(time.Duration(cfg.Scan.CacheTTLSeconds)*time.Second))
	}
	if cfg.Debug && logger != nil {
		scanOpts = append(scanOpts, scanner.WithLogger(logger))
	}
	sc := scanner.NewScanner(registry, analyzer, scanOpts...)

	return &Components{
		Store:    store,
		Registry: registry,
		Analyzer: analyzer,
		Scanner:  sc,
	}, nil
}

func printUsage() {
	fmt.Println(`driftlens - Documentation drift detection for source code

Usage:
  driftlens scan [flags] <path>     Scan a file or directory for doc drift
  driftlens server [flags]          Start the HTTP server
  driftlens watch [flags] [dir...]  Watch directories and rescan on change
  driftlens review [flags] <id>     Mark a pair as reviewed (--undo to clear)
  driftlens status [flags]          Show pair/review/drift counts
  driftlens version                 Show version
  driftlens help                    Show this help

Scan Flags:
  --config string    Config file path (default: /usr/local/etc/driftlens/config.yaml, or ./config.yaml)
  --output string    Output format: text or json (default: text)
  --fail-over float  Exit nonzero when any drift score exceeds this threshold

Server Flags:
  --config string    Config file path
  --debug            Enable debug logging (file events, scan progress, etc.)

Review Flags:
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for the local state store.
  --undo             Clear the reviewed flag

Status Flags:
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for the local state store.
  --output string    Output format: text or json (default: text)

Examples:
  driftlens scan ./src
  driftlens scan --output json main.py
  driftlens scan --fail-over 0.5 ./src   # CI gate
  driftlens server
  driftlens watch ./src
  driftlens review pair:3f2a9c...
  driftlens status --output json`)
}
