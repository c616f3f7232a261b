// Package main is the Kotae CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/kotae/internal/cli"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/genai"
	"github.com/hyperjump/kotae/internal/loader"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/internal/watcher"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "kotae server" from the project dir uses the project's config (including debug).
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
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "add":
		runAdd()
	case "import":
		runImport()
	case "list":
		runList()
	case "status":
		runStatus()
	case "chat":
		runChat()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (queries, source reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
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

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	matcher, err := loader.BuildMatcher(ctx, store, cfg.FAQ.Sources, logger)
	if err != nil {
		logger.Fatal("Failed to build FAQ corpus", zap.Error(err))
	}
	logger.Info("FAQ corpus built", zap.Int("entries", matcher.Len()))

	var gen genai.Generator
	if cfg.LLM.Enabled {
		client, genErr := genai.NewClient(ctx, cfg.LLM)
		if genErr != nil {
			logger.Warn("generation fallback disabled", zap.Error(genErr))
		} else {
			gen = client
			logger.Info("generation fallback enabled", zap.String("model", cfg.LLM.Model))
		}
	}

	srv := server.NewServer(matcher, store, gen, cfg, logger)

	watchCtx, watchCancel := context.WithCancel(ctx)
	defer watchCancel()
	if cfg.Watch.Enabled && len(cfg.FAQ.Sources) > 0 {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(cfg.FAQ.Sources, func(path string) {
			logger.Info("FAQ source changed", zap.String("path", path))
			if reloadErr := srv.Reload(context.Background()); reloadErr != nil {
				logger.Warn("corpus reload failed", zap.String("path", path), zap.Error(reloadErr))
			}
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

// printAskUsage prints ask subcommand usage.
func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kotae ask [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "Question is all remaining arguments joined by spaces. Multi-word questions work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  kotae ask how do I register
  kotae ask "how do I register"              # same as above
  kotae ask --threshold 0.3 is it free       # stricter matching
  kotae ask --output json "where is it"      # parseable output
  kotae ask --server "" what time does it start   # direct storage, no server needed
`)
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// configPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func configPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultPath
}

// askArgsReorder moves any flags (and their values) that appear after the question
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "kotae ask \"question\" -threshold 0.3"
// would otherwise leave -threshold unparsed.
func askArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// askThresholdDefaultFromConfig loads config at path and returns the default
// match threshold. On load failure, returns 0 (the matcher's own default applies).
func askThresholdDefaultFromConfig(path string) float64 {
	cfg, _, err := loadConfig(path)
	if err != nil || cfg == nil {
		return 0
	}
	return cfg.FAQ.Threshold
}

func runAsk() {
	askArgs := askArgsReorder(os.Args[2:])
	configPath := configPathFromArgs(askArgs, defaultConfigPath)
	defaultThreshold := askThresholdDefaultFromConfig(configPath)

	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	threshold := fs.Float64("threshold", defaultThreshold, "minimum match confidence (0 = config default)")
	generate := fs.Bool("generate", false, "fall back to a generated answer when no FAQ matches (server mode, LLM must be enabled)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(askArgs)

	if fs.NArg() < 1 {
		printAskUsage(fs)
		os.Exit(1)
	}
	question := buildQuestion(fs.Args())
	if question == "" {
		printAskUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	query := &models.AskQuery{
		Question:  question,
		Threshold: *threshold,
		Generate:  *generate,
	}

	if *serverURL != "" {
		// Use HTTP API when server is running (avoids SQLite lock conflict).
		result, err := askViaHTTP(*serverURL, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteAskResult(os.Stdout, result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	start := time.Now()
	matcher, err := loader.BuildMatcher(ctx, store, cfg.FAQ.Sources, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build FAQ corpus: %v\n", err)
		os.Exit(1)
	}
	res := matcher.FindAnswer(question, *threshold)
	result := &models.AskResult{
		Answer:          res.Answer,
		Confidence:      res.Confidence,
		MatchedQuestion: res.MatchedQuestion,
		Source:          models.SourceFAQ,
		QueryTimeMs:     time.Since(start).Milliseconds(),
	}
	if res.MatchedQuestion == nil {
		result.Source = models.SourceNone
	}
	if err := cli.WriteAskResult(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func askViaHTTP(serverURL string, query *models.AskQuery) (*models.AskResult, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/ask", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var result models.AskResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 2 {
		fmt.Println("Usage: kotae add [flags] <question> <answer>")
		os.Exit(1)
	}
	question := fs.Arg(0)
	answer := fs.Arg(1)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	faq := &models.FAQ{Question: question, Answer: answer}
	if err := store.CreateFAQ(context.Background(), faq); err != nil {
		fmt.Printf("Add failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("FAQ added: %s\n", faq.ID)
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kotae import [flags] <file>")
		fmt.Println("Supported formats: .txt/.faq (question|answer lines), .xlsx, .docx, .odt, .pdf")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := loader.ImportFile(context.Background(), store, path)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d FAQ(s) from %s\n", n, path)
}

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	faqs, err := store.ListFAQs(context.Background())
	if err != nil {
		fmt.Printf("List failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteFAQList(os.Stdout, faqs, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	StoredFAQs    int64                  `json:"stored_faqs"`
	CorpusEntries int                    `json:"corpus_entries"`
	Config        map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
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
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		ctx := context.Background()
		count, err := store.CountFAQs(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count FAQs failed: %v\n", err)
			os.Exit(1)
		}
		matcher, err := loader.BuildMatcher(ctx, store, cfg.FAQ.Sources, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build FAQ corpus: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			StoredFAQs:    count,
			CorpusEntries: matcher.Len(),
			Config: map[string]interface{}{
				"threshold":     cfg.FAQ.Threshold,
				"database_path": cfg.Storage.DatabasePath,
				"sources":       cfg.FAQ.Sources,
				"llm_enabled":   cfg.LLM.Enabled,
			},
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
		fmt.Printf("stored_faqs:     %d   # FAQs in the database\n", status.StoredFAQs)
		fmt.Printf("corpus_entries:  %d   # entries in the match corpus (database + source files)\n", status.CorpusEntries)
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"threshold", "database_path", "sources", "llm_enabled"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-15s %v\n", key+":", v)
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

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	persona := fs.String("persona", "", "persona override (default from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.LLM.Enabled {
		fmt.Println("Chat requires llm.enabled: true in the config.")
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, cfg.LLM)
	if err != nil {
		fmt.Printf("Failed to create chat client: %v\n", err)
		os.Exit(1)
	}
	if *persona != "" {
		client.SetPersona(*persona)
	}

	fmt.Println("Chat started. Type /clear to reset history, exit or quit to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return
		case "/clear":
			client.ClearHistory()
			fmt.Println("History cleared.")
			continue
		}
		reply, err := client.Chat(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
			continue
		}
		fmt.Printf("%s\n", reply)
	}
}

func printUsage() {
	fmt.Println(`kotae - FAQ question answering over your own corpus

Usage:
  kotae server [flags]              Start the HTTP server
  kotae ask [flags] <question>      Ask a question
  kotae add [flags] <q> <a>         Add one FAQ to the database
  kotae import [flags] <file>       Import FAQs from a file
  kotae list [flags]                List stored FAQs
  kotae status [flags]              Show corpus/storage status
  kotae chat [flags]                Chat with the configured LLM
  kotae version                     Show version
  kotae help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kotae/config.yaml)
  --debug            Enable debug logging (queries, source reloads, etc.)

Ask Flags:
  --config string     Config file path (for direct storage mode; also used for the default threshold)
  --server string     Server URL (default: http://localhost:8080). Use empty (--server "") to use direct storage when server is not running.
  --threshold float   Minimum match confidence (default from config; 0 uses the built-in default)
  --generate          Fall back to a generated answer when no FAQ matches (server mode)
  --output string     Output format: text or json (default: text)

Import Flags:
  --config string    Config file path
                     Supported file formats: .txt/.faq (question|answer lines), .xlsx, .docx, .odt, .pdf

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Chat Flags:
  --config string    Config file path
  --persona string   Persona override for this session

Examples:
  kotae server
  kotae ask "how do I register"
  kotae ask --threshold 0.3 is there a fee
  kotae ask --output json "where is the venue"   # structured JSON for other apps
  kotae add "What time does it start?" "2:00 PM sharp."
  kotae import faqs.txt
  kotae list
  kotae status --output json`)
}
