package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/mlindner/spreewire/internal/news"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Source struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	URL      string `yaml:"url"`
	Category string `yaml:"category,omitempty"` // optional category hint
	Enabled  bool   `yaml:"enabled"`
}

type AIConfig struct {
	Primary      string  `yaml:"primary_endpoint"`
	Secondary    string  `yaml:"secondary_endpoint,omitempty"`
	Token        string  `yaml:"token,omitempty"`
	MaxNewTokens int     `yaml:"max_new_tokens,omitempty"`
	Temperature  float64 `yaml:"temperature,omitempty"`
}

type Config struct {
	WindowHours int       `yaml:"window_hours"`
	Retention   string    `yaml:"retention"`
	Schedule    string    `yaml:"schedule,omitempty"`
	Sources     []Source  `yaml:"sources"`
	AI          *AIConfig `yaml:"ai,omitempty"`
}

// AIEnabled returns true if generation is configured with a token.
func (c *Config) AIEnabled() bool {
	return c.AI != nil && c.AI.Primary != "" && c.AIToken() != ""
}

// AIToken returns the resolved API token (config or env var).
func (c *Config) AIToken() string {
	if c.AI != nil && c.AI.Token != "" {
		return c.AI.Token
	}
	return os.Getenv("SPREEWIRE_HF_TOKEN")
}

// Window returns the recency window, defaulting to 24h.
func (c *Config) Window() time.Duration {
	if c.WindowHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.WindowHours) * time.Hour
}

// RetentionDuration parses the report retention, defaulting to 30 days.
// Supports "Nd" day syntax alongside time.ParseDuration values.
func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 30 * 24 * time.Hour
	}
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "spreewire", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.DataHome, "spreewire", "spreewire.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	validTypes := map[string]bool{"rss": true, "atom": true}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if !validTypes[s.Type] {
			return fmt.Errorf("source %q: unknown type %q (valid: rss, atom)", s.Name, s.Type)
		}
		if s.Category != "" && !news.Category(s.Category).Valid() {
			return fmt.Errorf("source %q: unknown category hint %q", s.Name, s.Category)
		}
	}
	return nil
}
