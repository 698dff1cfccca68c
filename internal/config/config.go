package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ndelias/ethos/internal/alert"
)

// Thresholds defines the numeric boundaries of the confidence and risk
// model.
type Thresholds struct {
	// Confidence is the deferral threshold: results below it are handed
	// to a human.
	Confidence float64 `yaml:"confidence"`
	// HighValue marks a transaction value as high-risk and epistemically
	// uncertain.
	HighValue float64 `yaml:"high_value"`
	// LongData is the call-data length past which a transaction is
	// high-risk.
	LongData int `yaml:"long_data"`
	// LongResponse is the generated-response length past which a message
	// reply is uncertain.
	LongResponse int `yaml:"long_response"`
	// MaxTransferValue is the hard ceiling enforced by the transaction
	// guard.
	MaxTransferValue float64 `yaml:"max_transfer_value"`
}

// Addresses holds the address reputation lists and prefix heuristics.
type Addresses struct {
	// Scam addresses are rejected by the kingdom-of-ends rule.
	Scam []string `yaml:"scam"`
	// Malicious addresses are rejected by the transaction guard.
	Malicious []string `yaml:"malicious"`
	// SuspiciousPrefix flags burn-style addresses (0x000...).
	SuspiciousPrefix string `yaml:"suspicious_prefix"`
	// TrustedPrefix marks contracts whose call data is accepted without
	// further verification.
	TrustedPrefix string `yaml:"trusted_prefix"`
}

// Config holds every tunable of the evaluation pipeline. All values are
// passed into constructors explicitly; nothing reads module-level state,
// so tests can substitute fixtures without global mutation.
type Config struct {
	Thresholds Thresholds `yaml:"thresholds"`
	Addresses  Addresses  `yaml:"addresses"`

	// Selectors maps 4-byte call-data selector prefixes (0x-prefixed,
	// lowercase) to transaction subtype names.
	Selectors map[string]string `yaml:"selectors"`

	// ResponseTemplates maps message intents to canned reply content.
	ResponseTemplates map[string]string `yaml:"response_templates"`

	Alerts []alert.Config `yaml:"alerts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			Confidence:       0.7,
			HighValue:        1000,
			LongData:         1000,
			LongResponse:     500,
			MaxTransferValue: 1000,
		},
		Addresses: Addresses{
			Scam:             []string{"0xknownScamAddress"},
			Malicious:        []string{"0xknownScamAddress"},
			SuspiciousPrefix: "0x000",
			TrustedPrefix:    "0xsafe",
		},
		Selectors: map[string]string{
			"0xa9059cbb": "erc20_transfer",
			"0x23b872dd": "erc20_transfer_from",
		},
		ResponseTemplates: map[string]string{
			"question":        "Let me look into that for you.",
			"greeting":        "Hello! How can I help you today?",
			"purchase_intent": "Before buying anything, make sure you understand the risks involved.",
			"sell_intent":     "Consider current market conditions and fees before selling.",
			"statement":       "Noted. Is there anything you would like me to do with that?",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ethos-config.yaml")
	}
	return filepath.Join(home, ".ethos", "config.yaml")
}

// Load reads configuration from a YAML file. Empty path falls back to
// ~/.ethos/config.yaml. Missing file returns defaults. Invalid YAML
// returns an error.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads configuration and returns its SHA-256 hash. The hash
// is computed over the raw YAML bytes on disk. When no file exists
// (defaults used), the hash is the SHA-256 of empty input.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return Default(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, hash, nil
}

// Write marshals the config to YAML at the given path, creating parent
// directories.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
