package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the YAML file shared by every binary
type Config struct {
	Market struct {
		RosterFloor         int           `yaml:"roster_floor"`
		RosterCeiling       int           `yaml:"roster_ceiling"`
		PriceFactor         string        `yaml:"price_factor"`
		MaxPurchaseAttempts int           `yaml:"max_purchase_attempts"`
		RetryBaseDelay      time.Duration `yaml:"retry_base_delay"`
	} `yaml:"market"`
	Auth struct {
		JWTSecretEnv string        `yaml:"jwt_secret_env"`
		TokenTTL     time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
	Outbox struct {
		StreamName    string `yaml:"stream_name"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"outbox"`
}

// Default returns the built-in market constants
func Default() *Config {
	var c Config
	c.Market.RosterFloor = transfers.DefaultRosterFloor
	c.Market.RosterCeiling = transfers.DefaultRosterCeiling
	c.Market.PriceFactor = transfers.DefaultPriceFactor.String()
	c.Market.MaxPurchaseAttempts = transfers.DefaultMaxPurchaseAttempts
	c.Market.RetryBaseDelay = transfers.DefaultRetryBaseDelay
	c.Auth.JWTSecretEnv = "JWT_SECRET"
	c.Auth.TokenTTL = 7 * 24 * time.Hour
	c.Outbox.StreamName = events.StreamName
	c.Outbox.SubjectPrefix = events.SubjectPrefix
	return &c
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// MarketRules converts the market section and validates it
func (c *Config) MarketRules() (transfers.MarketRules, error) {
	factor, err := decimal.NewFromString(c.Market.PriceFactor)
	if err != nil {
		return transfers.MarketRules{}, fmt.Errorf("invalid price_factor %q: %w", c.Market.PriceFactor, err)
	}

	rules := transfers.MarketRules{
		RosterFloor:         c.Market.RosterFloor,
		RosterCeiling:       c.Market.RosterCeiling,
		PriceFactor:         factor,
		MaxPurchaseAttempts: c.Market.MaxPurchaseAttempts,
		RetryBaseDelay:      c.Market.RetryBaseDelay,
	}
	if err := rules.Validate(); err != nil {
		return transfers.MarketRules{}, fmt.Errorf("invalid market config: %w", err)
	}
	return rules, nil
}

// JWTSecret reads the signing secret from the configured environment variable
func (c *Config) JWTSecret() string {
	return os.Getenv(c.Auth.JWTSecretEnv)
}
