package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	domainErrors "github.com/thomas-vilte/jh/internal/errors"
)

// Pull request providers.
const (
	ProviderGH     = "gh"
	ProviderGitHub = "github"
)

const (
	configDirName  = ".jh"
	configFileName = "config.json"

	defaultLang           = LangEN
	defaultProvider       = ProviderGH
	defaultPush           = true
	defaultKeyringService = "jh"
)

type Config struct {
	Language       string `json:"language"`
	PRProvider     string `json:"pr_provider"`
	DefaultBase    string `json:"default_base,omitempty"`
	Push           bool   `json:"push"`
	KeyringService string `json:"keyring_service"`
	GitHubToken    string `json:"github_token,omitempty"`

	PathFile string `json:"-"`
}

// DefaultPath returns ~/.jh/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("home directory is not set")
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Language:       defaultLang,
		PRProvider:     defaultProvider,
		Push:           defaultPush,
		KeyringService: defaultKeyringService,
	}
}

// LoadConfig reads the configuration. path is either a .json file or a
// directory under which .jh/config.json lives. A missing file is created
// with the defaults.
func LoadConfig(path string) (*Config, error) {
	configPath := path
	if filepath.Ext(path) != ".json" {
		configPath = filepath.Join(path, configDirName, configFileName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, domainErrors.ErrConfigInvalid.
			WithError(fmt.Errorf("error decoding JSON: %w", err)).
			WithContext("path", configPath)
	}
	config.PathFile = configPath

	if err := validateConfig(config); err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", configPath)
	}

	return config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	config.PathFile = path

	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return domainErrors.ErrConfigInvalid.WithError(err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	// 0600: the file may hold a GitHub token.
	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if !isSupportedLanguage(config.Language) {
		return fmt.Errorf("unsupported language %q (supported: %s)",
			config.Language, strings.Join(SupportedLanguages, ", "))
	}

	switch config.PRProvider {
	case ProviderGH, ProviderGitHub:
	default:
		return fmt.Errorf("unsupported pr_provider %q (supported: %s, %s)",
			config.PRProvider, ProviderGH, ProviderGitHub)
	}

	if config.KeyringService == "" {
		return errors.New("keyring_service cannot be empty")
	}

	if strings.ContainsAny(config.DefaultBase, " \t\n") {
		return fmt.Errorf("default_base %q is not a valid branch name", config.DefaultBase)
	}

	return nil
}

var setters = map[string]func(c *Config, value string) error{
	"language": func(c *Config, v string) error {
		c.Language = v
		return nil
	},
	"pr_provider": func(c *Config, v string) error {
		c.PRProvider = v
		return nil
	},
	"default_base": func(c *Config, v string) error {
		c.DefaultBase = v
		return nil
	},
	"push": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("push must be true or false: %w", err)
		}
		c.Push = b
		return nil
	},
	"keyring_service": func(c *Config, v string) error {
		c.KeyringService = v
		return nil
	},
	"github_token": func(c *Config, v string) error {
		c.GitHubToken = v
		return nil
	},
}

// Keys lists the settable keys in alphabetical order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to key and validates the result. The config is left
// unchanged on error.
func (c *Config) Set(key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return domainErrors.ErrConfigUnknownKey.WithContext("key", key)
	}

	updated := *c
	if err := setter(&updated, value); err != nil {
		return domainErrors.ErrConfigInvalid.WithError(err).WithContext("key", key)
	}
	if err := validateConfig(&updated); err != nil {
		return domainErrors.ErrConfigInvalid.WithError(err).WithContext("key", key)
	}

	*c = updated
	return nil
}

// MaskedGitHubToken returns the token with all but the last four characters hidden.
func (c *Config) MaskedGitHubToken() string {
	if c.GitHubToken == "" {
		return ""
	}
	if len(c.GitHubToken) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + c.GitHubToken[len(c.GitHubToken)-4:]
}
