// Package config provides unified configuration loading for auralie.
// It supports loading from YAML files, a .env file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/simulation"
	"github.com/nvandessel/auralie/internal/store"
)

// ErrMissingCredentials is returned by RequireCredentials when the selected
// provider needs an API key and none was configured.
var ErrMissingCredentials = errors.New("missing llm credentials")

// Config contains all auralie configuration settings.
type Config struct {
	// Home is the data root. Empty means ~/.auralie.
	Home string `json:"home,omitempty" yaml:"home,omitempty"`

	// LLM contains settings for the text-generation backend.
	LLM LLMConfig `json:"llm" yaml:"llm"`

	// Simulation contains the defaults for every run.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Storage selects where results are persisted.
	Storage StorageConfig `json:"storage" yaml:"storage"`

	Profiles ProfilesConfig `json:"profiles" yaml:"profiles"`
	Batch    BatchConfig    `json:"batch" yaml:"batch"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

// LLMConfig configures the LLM client.
type LLMConfig struct {
	// Provider identifies the backend: "openrouter" (default), "openai",
	// "anthropic", "gemini", "ollama", or "mock".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey is the API key for the provider. Supports ${VAR} syntax for env vars.
	// Not required for ollama or mock.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint root.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	Model   string `json:"model,omitempty" yaml:"model,omitempty"`
	AppName string `json:"app_name,omitempty" yaml:"app_name,omitempty"`
	AppURL  string `json:"app_url,omitempty" yaml:"app_url,omitempty"`

	// Timeout is the maximum duration to wait for one response.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// MinInterval is the minimum spacing between calls. Zero disables throttling.
	MinInterval time.Duration `json:"min_interval,omitempty" yaml:"min_interval,omitempty"`

	// MaxRetries is the number of re-attempts on rate-limit and server errors.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Temperature is the sampling temperature for persona turns.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// RedactedAPIKey returns the API key with most characters masked.
// Shows first 4 and last 4 characters, e.g., "sk-a...xyz9".
// Returns "" for empty keys and "(set)" for keys shorter than 12 chars.
func (c LLMConfig) RedactedAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	if len(c.APIKey) < 12 {
		return "(set)"
	}
	return c.APIKey[:4] + "..." + c.APIKey[len(c.APIKey)-4:]
}

// String implements fmt.Stringer to prevent accidental API key logging.
func (c LLMConfig) String() string {
	return fmt.Sprintf("LLMConfig{Provider:%s, APIKey:%s, Model:%s}",
		c.Provider, c.RedactedAPIKey(), c.Model)
}

// SimulationConfig mirrors simulation.Config in file form.
type SimulationConfig struct {
	Days             int     `json:"days" yaml:"days"`
	Exchanges        int     `json:"exchanges" yaml:"exchanges"`
	EnableActivities bool    `json:"enable_activities" yaml:"enable_activities"`
	ActivityDays     []int   `json:"activity_days" yaml:"activity_days"`
	StartingAffinity int     `json:"starting_affinity" yaml:"starting_affinity"`
	SaveEvery        int     `json:"save_every" yaml:"save_every"`
	ProbeChance      float64 `json:"probe_chance" yaml:"probe_chance"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed            uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	DateSuggestions bool   `json:"date_suggestions" yaml:"date_suggestions"`
}

// StorageConfig selects a result store backend.
type StorageConfig struct {
	// Backend is "file" (default), "sqlite", "redis", or "memory".
	Backend     string `json:"backend" yaml:"backend"`
	Dir         string `json:"dir,omitempty" yaml:"dir,omitempty"`
	SQLitePath  string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	RedisAddr   string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPrefix string `json:"redis_prefix,omitempty" yaml:"redis_prefix,omitempty"`
}

// ProfilesConfig locates persona profiles.
type ProfilesConfig struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// BatchConfig configures batch mode.
type BatchConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// LoggingConfig configures auralie's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the JSONL trace log; "trace" additionally includes
	// full prompt and response content.
	Level string `json:"level" yaml:"level"`

	// Format is "text" (default) or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	sim := simulation.DefaultConfig()
	client := llm.DefaultConfig()
	return &Config{
		LLM: LLMConfig{
			Provider:    client.Provider,
			Model:       client.Model,
			AppName:     client.AppName,
			Timeout:     client.Timeout,
			MaxTokens:   client.MaxTokens,
			MaxRetries:  2,
			Temperature: sim.Temperature,
		},
		Simulation: SimulationConfig{
			Days:             sim.Days,
			Exchanges:        sim.Exchanges,
			EnableActivities: sim.EnableActivities,
			ActivityDays:     append([]int(nil), sim.ActivityDays...),
			StartingAffinity: sim.StartingAffinity,
			SaveEvery:        sim.SaveEvery,
			ProbeChance:      sim.ProbeChance,
			DateSuggestions:  sim.DateSuggestions,
		},
		Storage: StorageConfig{
			Backend:     store.BackendFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: store.DefaultRedisPrefix,
		},
		Batch: BatchConfig{
			Workers: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.auralie/config.yaml (or path) -> .env -> environment variables.
// An empty path uses the default location and tolerates its absence.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		if home, err := store.HomeDir(); err == nil {
			candidate := filepath.Join(home, "config.yaml")
			if _, statErr := os.Stat(candidate); statErr == nil {
				path = candidate
			}
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnvOverrides(config, nil); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in secrets and addresses
	config.LLM.APIKey = expandEnvVars(config.LLM.APIKey)
	config.LLM.BaseURL = expandEnvVars(config.LLM.BaseURL)
	config.Storage.RedisAddr = expandEnvVars(config.Storage.RedisAddr)

	return config, nil
}

var (
	validProviders = map[string]bool{
		llm.ProviderOpenRouter: true, llm.ProviderOpenAI: true, llm.ProviderAnthropic: true,
		llm.ProviderGemini: true, llm.ProviderOllama: true, llm.ProviderMock: true,
	}
	validBackends = map[string]bool{
		store.BackendFile: true, store.BackendSQLite: true, store.BackendRedis: true, store.BackendMemory: true,
	}
	validLevels = map[string]bool{"error": true, "warn": true, "info": true, "debug": true, "trace": true}
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !validProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid provider: %s (valid: openrouter, openai, anthropic, gemini, ollama, mock)", c.LLM.Provider)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.LLM.Timeout)
	}
	if c.LLM.MinInterval < 0 {
		return fmt.Errorf("min_interval must be non-negative, got %v", c.LLM.MinInterval)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got %d", c.LLM.MaxRetries)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %f", c.LLM.Temperature)
	}

	if err := c.SimulationConfig().Validate(); err != nil {
		return err
	}

	if !validBackends[c.Storage.Backend] {
		return fmt.Errorf("invalid storage backend: %s (valid: file, sqlite, redis, memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == store.BackendRedis && c.Storage.RedisAddr == "" {
		return errors.New("redis_addr is required for the redis backend")
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be at least 1, got %d", c.Batch.Workers)
	}

	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: error, warn, info, debug, trace)", c.Logging.Level)
	}
	if f := c.Logging.Format; f != "" && f != "text" && f != "json" {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", f)
	}
	return nil
}

// RequireCredentials reports ErrMissingCredentials when the provider needs
// an API key and none is set.
func (c *Config) RequireCredentials() error {
	switch c.LLM.Provider {
	case llm.ProviderOllama, llm.ProviderMock:
		return nil
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: set %s or llm.api_key", ErrMissingCredentials, keyVar(c.LLM.Provider))
	}
	return nil
}

func keyVar(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case llm.ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENROUTER_API_KEY"
	}
}

// HomeDir returns the configured data root, defaulting to ~/.auralie.
func (c *Config) HomeDir() (string, error) {
	if c.Home != "" {
		return c.Home, nil
	}
	return store.HomeDir()
}

// SimulationConfig converts to the orchestrator's configuration.
func (c *Config) SimulationConfig() simulation.Config {
	s := c.Simulation
	return simulation.Config{
		Days:             s.Days,
		Exchanges:        s.Exchanges,
		EnableActivities: s.EnableActivities,
		ActivityDays:     append([]int(nil), s.ActivityDays...),
		StartingAffinity: s.StartingAffinity,
		SaveEvery:        s.SaveEvery,
		ProbeChance:      s.ProbeChance,
		Seed:             s.Seed,
		DateSuggestions:  s.DateSuggestions,
		Temperature:      c.LLM.Temperature,
	}
}

// LLMClientConfig converts to the llm factory's configuration.
func (c *Config) LLMClientConfig() llm.ClientConfig {
	return llm.ClientConfig{
		Provider:  c.LLM.Provider,
		APIKey:    c.LLM.APIKey,
		BaseURL:   c.LLM.BaseURL,
		Model:     c.LLM.Model,
		AppName:   c.LLM.AppName,
		AppURL:    c.LLM.AppURL,
		Timeout:   c.LLM.Timeout,
		MaxTokens: c.LLM.MaxTokens,
	}
}

// RetryConfig returns the retry policy for the configured MaxRetries.
func (c *Config) RetryConfig() llm.RetryConfig {
	rc := llm.DefaultRetryConfig()
	rc.MaxAttempts = c.LLM.MaxRetries + 1
	return rc
}

// StoreOptions resolves storage paths against the data root.
func (c *Config) StoreOptions() (store.Options, error) {
	opts := store.Options{
		Backend:     c.Storage.Backend,
		Dir:         c.Storage.Dir,
		SQLitePath:  c.Storage.SQLitePath,
		RedisAddr:   c.Storage.RedisAddr,
		RedisPrefix: c.Storage.RedisPrefix,
	}
	if opts.Dir != "" && opts.SQLitePath != "" {
		return opts, nil
	}
	home, err := c.HomeDir()
	if err != nil {
		return opts, err
	}
	if opts.Dir == "" {
		opts.Dir = store.ResultsDir(home)
	}
	if opts.SQLitePath == "" {
		opts.SQLitePath = store.SQLitePath(home)
	}
	return opts, nil
}

// ProfilesDir resolves the profile directory against the data root.
func (c *Config) ProfilesDir() (string, error) {
	if c.Profiles.Dir != "" {
		return c.Profiles.Dir, nil
	}
	home, err := c.HomeDir()
	if err != nil {
		return "", err
	}
	return store.ProfilesDir(home), nil
}

// envOverrides holds every recognised variable. Pointer fields stay nil
// when the variable is unset.
type envOverrides struct {
	Provider        *string        `env:"LLM_PROVIDER"`
	OpenRouterKey   *string        `env:"OPENROUTER_API_KEY"`
	OpenRouterModel *string        `env:"OPENROUTER_MODEL"`
	AppName         *string        `env:"OPENROUTER_APP_NAME"`
	OpenAIKey       *string        `env:"OPENAI_API_KEY"`
	AnthropicKey    *string        `env:"ANTHROPIC_API_KEY"`
	GeminiKey       *string        `env:"GEMINI_API_KEY"`
	OllamaHost      *string        `env:"OLLAMA_HOST"`
	Model           *string        `env:"AURALIE_MODEL"`
	Timeout         *time.Duration `env:"AURALIE_LLM_TIMEOUT"`
	MinInterval     *time.Duration `env:"AURALIE_MIN_INTERVAL"`
	MaxRetries      *int           `env:"AURALIE_MAX_RETRIES"`

	Days             *int    `env:"SIMULATION_DAYS"`
	EnableActivities *bool   `env:"ENABLE_ACTIVITIES"`
	StartingAffinity *int    `env:"STARTING_AFFINITY"`
	Seed             *uint64 `env:"AURALIE_SEED"`

	Home        *string `env:"AURALIE_HOME"`
	Storage     *string `env:"AURALIE_STORAGE"`
	RedisAddr   *string `env:"REDIS_ADDR"`
	ProfilesDir *string `env:"AURALIE_PROFILES_DIR"`
	Workers     *int    `env:"AURALIE_WORKERS"`
	LogLevel    *string `env:"AURALIE_LOG_LEVEL"`
}

// applyEnvOverrides applies environment variable overrides to the config.
// A nil environment reads the process environment.
func applyEnvOverrides(config *Config, environ map[string]string) error {
	var o envOverrides
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	set(&config.LLM.Provider, o.Provider)

	// Keys only apply to the provider they belong to.
	switch config.LLM.Provider {
	case llm.ProviderOpenRouter:
		set(&config.LLM.APIKey, o.OpenRouterKey)
		set(&config.LLM.Model, o.OpenRouterModel)
	case llm.ProviderOpenAI:
		set(&config.LLM.APIKey, o.OpenAIKey)
	case llm.ProviderAnthropic:
		set(&config.LLM.APIKey, o.AnthropicKey)
	case llm.ProviderGemini:
		set(&config.LLM.APIKey, o.GeminiKey)
	case llm.ProviderOllama:
		// Ollama uses OLLAMA_HOST for base URL (no API key needed)
		if o.OllamaHost != nil {
			config.LLM.BaseURL = strings.TrimRight(*o.OllamaHost, "/") + "/v1"
		}
	}
	set(&config.LLM.AppName, o.AppName)
	set(&config.LLM.Model, o.Model)
	set(&config.LLM.Timeout, o.Timeout)
	set(&config.LLM.MinInterval, o.MinInterval)
	set(&config.LLM.MaxRetries, o.MaxRetries)

	set(&config.Simulation.Days, o.Days)
	set(&config.Simulation.EnableActivities, o.EnableActivities)
	set(&config.Simulation.StartingAffinity, o.StartingAffinity)
	set(&config.Simulation.Seed, o.Seed)

	set(&config.Home, o.Home)
	set(&config.Storage.Backend, o.Storage)
	set(&config.Storage.RedisAddr, o.RedisAddr)
	set(&config.Profiles.Dir, o.ProfilesDir)
	set(&config.Batch.Workers, o.Workers)
	set(&config.Logging.Level, o.LogLevel)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
