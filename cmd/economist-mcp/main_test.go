package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apppkg "github.com/hyperifyio/economist-mcp/internal/app"
)

// Flags beat env, env beats the config file, the file beats defaults.
func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "economist.yaml")
	content := "baseURL: https://file.example\nuserAgent: file-agent\ncookie: file-cookie\nhttp:\n  addr: \":9000\"\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(apppkg.EnvCookie, "env-cookie")
	t.Setenv(apppkg.EnvUserAgent, "env-agent")
	t.Setenv(apppkg.EnvBaseURL, "")
	t.Setenv(apppkg.EnvHTTPAddr, "")
	t.Setenv(apppkg.EnvAllowedOrigins, "")
	t.Setenv(apppkg.EnvVerbose, "")

	cfg := apppkg.Config{UserAgent: "flag-agent"}
	if err := resolveConfig(&cfg, p); err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.UserAgent != "flag-agent" {
		t.Fatalf("UserAgent=%q, flag should win", cfg.UserAgent)
	}
	if cfg.Cookie != "env-cookie" {
		t.Fatalf("Cookie=%q, env should beat file", cfg.Cookie)
	}
	if cfg.BaseURL != "https://file.example" || cfg.HTTPAddr != ":9000" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.BriefPath != apppkg.DefaultBriefPath {
		t.Fatalf("BriefPath=%q", cfg.BriefPath)
	}
}

func TestResolveConfig_MissingFile(t *testing.T) {
	cfg := apppkg.Config{}
	if err := resolveConfig(&cfg, filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	if err := run(context.Background(), apppkg.Config{BaseURL: "not a url"}); err == nil {
		t.Fatalf("expected init error")
	}
}

// With a cancelled context the HTTP transport shuts down cleanly.
func TestRun_HTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := apppkg.Config{HTTPAddr: "127.0.0.1:0"}
	if err := run(ctx, cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
}
