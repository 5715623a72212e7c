package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	BaseURL   string `yaml:"baseURL" json:"baseURL"`
	BriefPath string `yaml:"briefPath" json:"briefPath"`
	UserAgent string `yaml:"userAgent" json:"userAgent"`
	Cookie    string `yaml:"cookie" json:"cookie"`
	Verbose   bool   `yaml:"verbose" json:"verbose"`

	HTTP struct {
		Addr           string   `yaml:"addr" json:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins" json:"allowedOrigins"`
	} `yaml:"http" json:"http"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset in cfg, so flags and env keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.BaseURL == "" && fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if cfg.BriefPath == "" && fc.BriefPath != "" {
		cfg.BriefPath = fc.BriefPath
	}
	if cfg.UserAgent == "" && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if cfg.Cookie == "" && fc.Cookie != "" {
		cfg.Cookie = fc.Cookie
	}
	if cfg.HTTPAddr == "" && fc.HTTP.Addr != "" {
		cfg.HTTPAddr = fc.HTTP.Addr
	}
	if len(cfg.AllowedOrigins) == 0 && len(fc.HTTP.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = append([]string{}, fc.HTTP.AllowedOrigins...)
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation. A missing cookie is allowed:
// requests go out without it and extraction reports the result.
func ValidateConfig(cfg Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("config: base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: base URL must be absolute http(s), got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.BriefPath, "/") {
		return errors.New("config: brief path must start with '/'")
	}
	return nil
}
