package app

import (
	"os"
	"strings"
)

// Environment variables recognized by ApplyEnvToConfig.
const (
	EnvCookie         = "ECONOMIST_COOKIE"
	EnvBaseURL        = "ECONOMIST_BASE_URL"
	EnvUserAgent      = "ECONOMIST_USER_AGENT"
	EnvHTTPAddr       = "MCP_HTTP_ADDR"
	EnvAllowedOrigins = "MCP_ALLOWED_ORIGINS"
	EnvVerbose        = "VERBOSE"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Cookie == "" {
		cfg.Cookie = os.Getenv(EnvCookie)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.TrimSpace(os.Getenv(EnvBaseURL))
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv(EnvUserAgent)
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = strings.TrimSpace(os.Getenv(EnvHTTPAddr))
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = SplitList(os.Getenv(EnvAllowedOrigins))
	}

	if !cfg.Verbose {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVerbose))) {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		}
	}
}

// SplitList parses a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
