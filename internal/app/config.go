package app

// Defaults for the target site. They match the production markup that the
// extract package is written against.
const (
	DefaultBaseURL   = "https://www.economist.com"
	DefaultBriefPath = "/the-world-in-brief"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36..."
)

// Config holds runtime configuration for the application.
type Config struct {
	// Site
	BaseURL   string
	BriefPath string
	UserAgent string

	// Cookie is the session credential sent with every request. It is
	// read once at startup and may be empty.
	Cookie string

	// Serving. An empty HTTPAddr means stdio.
	HTTPAddr       string
	AllowedOrigins []string

	// Behavior
	Verbose bool
}

// ApplyDefaults fills any still-unset field with its built-in default.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.BriefPath == "" {
		cfg.BriefPath = DefaultBriefPath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
}
