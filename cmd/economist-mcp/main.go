package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/economist-mcp/internal/app"
	"github.com/hyperifyio/economist-mcp/internal/mcpserver"
)

func main() {
	// Logging setup. Stdout belongs to the stdio transport.
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath  string
		envPath     string
		baseURL     string
		userAgent   string
		httpAddr    string
		origins     string
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&envPath, "env", ".env", "Path to dotenv file loaded before reading the environment")
	flag.StringVar(&baseURL, "base", "", "Site base URL (default "+app.DefaultBaseURL+")")
	flag.StringVar(&userAgent, "ua", "", "User-Agent sent with every request")
	flag.StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio, e.g. ':8080'")
	flag.StringVar(&origins, "origins", "", "Comma-separated CORS origin allowlist for -http (default any)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("economist-mcp %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	if err := app.LoadEnvFiles(envPath); err != nil {
		log.Fatal().Err(err).Str("path", envPath).Msg("load env file")
	}

	cfg := app.Config{
		BaseURL:        baseURL,
		UserAgent:      userAgent,
		HTTPAddr:       httpAddr,
		AllowedOrigins: app.SplitList(origins),
		Verbose:        verbose,
	}
	if err := resolveConfig(&cfg, configPath); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// resolveConfig applies, in decreasing precedence, explicit flag values
// already in cfg, the environment, the optional config file and defaults.
func resolveConfig(cfg *app.Config, configPath string) error {
	app.ApplyEnvToConfig(cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		app.ApplyFileConfig(cfg, fc)
	}
	app.ApplyDefaults(cfg)
	return app.ValidateConfig(*cfg)
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	server := mcpserver.New(a, app.BuildVersion)
	if cfg.HTTPAddr != "" {
		return mcpserver.ServeHTTP(ctx, cfg.HTTPAddr, mcpserver.Handler(server, cfg.AllowedOrigins))
	}
	return mcpserver.ServeStdio(ctx, server)
}
