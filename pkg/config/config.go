// Package config loads resume-builder settings from a JSON file, a .env
// file and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikogura/resume-builder/pkg/llm"
	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/nikogura/resume-builder/pkg/renderer"
	"github.com/nikogura/resume-builder/pkg/tailor"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. RESUME_BUILDER_OUTPUT_DIR.
const EnvPrefix = "RESUME_BUILDER"

// DefaultProfilePath is where the profile lives unless configured.
const DefaultProfilePath = profile.DefaultPath

//nolint:gochecknoglobals // Known placeholder values shipped in examples
var placeholderKeys = []string{"your_openai_api_key_here", "sk-ant-api03-...", "your-api-key"}

// Config represents the application configuration.
type Config struct {
	Provider     string        `mapstructure:"provider"`
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"`
	ProfilePath  string        `mapstructure:"profile_path"`
	OutputDir    string        `mapstructure:"output_dir"`
	KeepMarkdown bool          `mapstructure:"keep_markdown"`
	Limits       LimitsConfig  `mapstructure:"limits"`
	Backend      BackendConfig `mapstructure:"backend"`
	Pandoc       PandocConfig  `mapstructure:"pandoc"`
}

// LimitsConfig caps the size of tailored sections.
type LimitsConfig struct {
	MaxJobs   int `mapstructure:"max_jobs"`
	MaxDuties int `mapstructure:"max_duties"`
	MaxSkills int `mapstructure:"max_skills"`
}

// BackendConfig tunes how the generation backend is called.
type BackendConfig struct {
	RequestsPerMinute float64              `mapstructure:"requests_per_minute"`
	CircuitBreaker    CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

// PandocConfig holds pandoc-related configuration.
type PandocConfig struct {
	ReferenceDoc string `mapstructure:"reference_doc"`
}

// ConfigurationError reports settings that make generation impossible.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() (msg string) {
	msg = "configuration error: " + e.Reason
	return msg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", llm.ProviderOpenAI)
	v.SetDefault("api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("profile_path", DefaultProfilePath)
	v.SetDefault("output_dir", renderer.DefaultOutputDir)
	v.SetDefault("keep_markdown", false)

	v.SetDefault("limits.max_jobs", tailor.DefaultMaxJobs)
	v.SetDefault("limits.max_duties", tailor.DefaultMaxDuties)
	v.SetDefault("limits.max_skills", tailor.DefaultMaxSkills)

	v.SetDefault("backend.requests_per_minute", 0)
	cb := llm.DefaultBreakerSettings()
	v.SetDefault("backend.circuit_breaker.enabled", cb.Enabled)
	v.SetDefault("backend.circuit_breaker.max_requests", cb.MaxRequests)
	v.SetDefault("backend.circuit_breaker.interval", cb.Interval.String())
	v.SetDefault("backend.circuit_breaker.timeout", cb.Timeout.String())
	v.SetDefault("backend.circuit_breaker.min_requests", cb.MinRequests)
	v.SetDefault("backend.circuit_breaker.failure_threshold", cb.FailureThreshold)

	v.SetDefault("pandoc.reference_doc", "")
}

// DefaultPath returns $HOME/.resume-builder/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-builder", "config.json")
	return path, err
}

// Load reads configuration with environment variable overrides. An explicit
// configPath must exist; the default location is optional. Credentials are
// not checked here, see Validate.
func Load(configPath string) (cfg Config, err error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
		_, statErr := os.Stat(path)
		if statErr != nil {
			path = ""
		}
	}

	if path != "" {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'resume-builder init' to create)", path)
			return cfg, err
		}

		v.SetConfigFile(path)
		v.SetConfigType("json")
		err = v.ReadInConfig()
		if err != nil {
			err = errors.Wrapf(err, "failed to read config file: %s", path)
			return cfg, err
		}
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to parse configuration")
		return cfg, err
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.applyProviderEnv()

	return cfg, err
}

// applyProviderEnv lets the conventional <PROVIDER>_API_KEY and
// <PROVIDER>_MODEL variables override the file.
func (c *Config) applyProviderEnv() {
	prefix := strings.ToUpper(c.Provider)
	if prefix == "" {
		prefix = strings.ToUpper(llm.ProviderOpenAI)
	}

	if apiKey := os.Getenv(prefix + "_API_KEY"); apiKey != "" {
		c.APIKey = apiKey
	}
	if model := os.Getenv(prefix + "_MODEL"); model != "" {
		c.Model = model
	}
}

// Validate checks that a generation backend can be built.
func (c *Config) Validate() (err error) {
	if !llm.IsKnownProvider(c.Provider) {
		err = &ConfigurationError{Reason: "unknown provider '" + c.Provider + "' (use openai, anthropic or gemini)"}
		return err
	}

	envName := strings.ToUpper(c.Provider) + "_API_KEY"
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		err = &ConfigurationError{Reason: "API key is not set (set api_key in config or " + envName + ")"}
		return err
	}

	for _, placeholder := range placeholderKeys {
		if key == placeholder {
			err = &ConfigurationError{Reason: "API key is still the placeholder value (set api_key in config or " + envName + ")"}
			return err
		}
	}

	return err
}

// GetModel returns the configured model or the provider default.
func (c *Config) GetModel() (model string) {
	model = c.Model
	if model == "" {
		model = llm.DefaultModel(c.Provider)
	}
	return model
}

// BackendSettings returns the settings used to build the generation backend.
func (c *Config) BackendSettings() (settings llm.Settings) {
	cb := c.Backend.CircuitBreaker
	settings = llm.Settings{
		Provider:          c.Provider,
		APIKey:            c.APIKey,
		Model:             c.GetModel(),
		BaseURL:           c.BaseURL,
		RequestsPerMinute: c.Backend.RequestsPerMinute,
		Breaker: llm.BreakerSettings{
			Enabled:          cb.Enabled,
			MaxRequests:      cb.MaxRequests,
			Interval:         cb.Interval,
			Timeout:          cb.Timeout,
			MinRequests:      cb.MinRequests,
			FailureThreshold: cb.FailureThreshold,
		},
	}
	return settings
}

// TailorLimits returns the section caps, falling back to the defaults for
// non-positive values.
func (c *Config) TailorLimits() (limits tailor.Limits) {
	limits = tailor.DefaultLimits()
	if c.Limits.MaxJobs > 0 {
		limits.MaxJobs = c.Limits.MaxJobs
	}
	if c.Limits.MaxDuties > 0 {
		limits.MaxDuties = c.Limits.MaxDuties
	}
	if c.Limits.MaxSkills > 0 {
		limits.MaxSkills = c.Limits.MaxSkills
	}
	return limits
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	v := viper.New()
	setDefaults(v)
	v.Set("api_key", "your-api-key")
	v.SetConfigType("json")

	err = v.SafeWriteConfigAs(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	err = os.Chmod(path, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to restrict config file permissions: %s", path)
		return path, err
	}

	return path, err
}
