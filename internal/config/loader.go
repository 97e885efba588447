package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	kenv "github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the connection settings shared by every request.
type Config struct {
	BaseURL     string        `koanf:"base_url"`
	TokenHeader string        `koanf:"token_header"`
	Token       string        `koanf:"token"`
	Timeout     time.Duration `koanf:"timeout"`
	MaxFileSize int64         `koanf:"max_file_size"`
}

const (
	DefaultBaseURL     = "https://api.chatwork.com/v2"
	DefaultTokenHeader = "X-ChatWorkToken"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxFileSize = 5 << 20
)

// Default returns the settings of the public Chatwork API.
func Default() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		TokenHeader: DefaultTokenHeader,
		Timeout:     DefaultTimeout,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// WithDefaults fills zero fields from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.TokenHeader == "" {
		c.TokenHeader = d.TokenHeader
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = d.MaxFileSize
	}
	return c
}

var (
	loadOnce sync.Once
	loaded   *Config
	loadErr  error
)

// Load loads configuration from the default locations. Load is safe for repeated calls.
//
// Priority:
// 1. CHATWORK_CONFIG_PATH if set (must exist)
// 2. ./chatwork.yaml (optional)
//
// CHATWORK__<KEY> environment variables override file values; a .env file in the
// working directory is read first without replacing variables already set.
func Load() (*Config, error) {
	loadOnce.Do(func() {
		_ = godotenv.Load()

		path := os.Getenv("CHATWORK_CONFIG_PATH")
		optional := path == ""
		if optional {
			path = "chatwork.yaml"
		}
		loaded, loadErr = load(path, optional)
	})
	return loaded, loadErr
}

// LoadFile loads configuration from path plus environment overrides, bypassing the cache.
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, optional bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(kfile.Provider(path), parserFor(path)); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Environment overrides: CHATWORK__TOKEN=..., CHATWORK__BASE_URL=...
	if err := k.Load(kenv.Provider("CHATWORK__", "__", func(s string) string {
		return "chatwork__" + strings.ToLower(strings.TrimPrefix(s, "CHATWORK__"))
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("chatwork", &cfg); err != nil {
		return nil, err
	}

	resolveEnvVars(&cfg)
	cfg = cfg.WithDefaults()
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSONC()
	default:
		return yaml.Parser()
	}
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolveEnvVars resolves ${VAR} patterns in config string fields
func resolveEnvVars(cfg *Config) {
	cfg.BaseURL = resolveEnvString(cfg.BaseURL)
	cfg.TokenHeader = resolveEnvString(cfg.TokenHeader)
	cfg.Token = resolveEnvString(cfg.Token)
}

// resolveEnvString replaces ${VAR} with environment variable values.
// Unset variables keep their ${VAR} text so the placeholder shows up downstream.
func resolveEnvString(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if v, ok := os.LookupEnv(varName); ok {
			return v
		}
		return match
	})
}

// Unresolved reports the first ${VAR} placeholder left in s, if any.
func Unresolved(s string) (string, bool) {
	m := envVarRegex.FindString(s)
	return m, m != ""
}
