package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gatherhq/gather/internal/errors"
)

// Default values applied when neither config file nor environment provide one.
const (
	DefaultAPIBaseURL     = "http://localhost:8000"
	DefaultTimeoutSeconds = 30
)

// Config holds the client configuration.
type Config struct {
	// APIBaseURL is the base URL of the campus events backend
	APIBaseURL string `yaml:"api_base_url"`

	// TimeoutSeconds is the HTTP client timeout
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format (text, json)
	LogFormat string `yaml:"log_format"`

	// CredentialsPath is where the encrypted session store lives
	CredentialsPath string `yaml:"credentials_path"`

	// Passphrase protects the credential store. Not read from YAML;
	// set via GATHER_PASSPHRASE or left to the machine default.
	Passphrase string `yaml:"-"`
}

// defaultConfig returns the built-in configuration.
func defaultConfig() Config {
	return Config{
		APIBaseURL:      DefaultAPIBaseURL,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		LogLevel:        "warn",
		LogFormat:       "text",
		CredentialsPath: defaultCredentialsPath(),
		Passphrase:      "gather-local-session",
	}
}

func defaultCredentialsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gather", "credentials.json")
	}
	return filepath.Join(homeDir, ".gather", "credentials.json")
}

// UserConfigPath returns the default location of the user config file.
func UserConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gather", "config.yaml")
	}
	return filepath.Join(homeDir, ".gather", "config.yaml")
}

// Load resolves the configuration from, in increasing precedence:
// built-in defaults, the user config file, a .env file in the working
// directory, and GATHER_* environment variables.
//
// A missing config file is not an error; an unreadable or malformed one is.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = UserConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("malformed config file %s", path), err).
				WithSuggestion("Fix the YAML syntax or delete the file to use defaults")
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("cannot read config file %s", path), err)
	}

	// .env in the working directory, if present. Missing files are fine.
	_ = godotenv.Load()

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overlays GATHER_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GATHER_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GATHER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("GATHER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GATHER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("GATHER_CREDENTIALS_PATH"); v != "" {
		cfg.CredentialsPath = v
	}
	if v := os.Getenv("GATHER_PASSPHRASE"); v != "" {
		cfg.Passphrase = v
	}
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "api_base_url cannot be empty").
			WithSuggestion("Set api_base_url in the config file or GATHER_API_URL in the environment")
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "timeout_seconds must be positive")
	}
	return nil
}
