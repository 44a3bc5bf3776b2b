package configloader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"token_creator/internal/domain/entity"
)

// Wallet modes.
const (
	WalletModeBrowser = "browser" // the page bridges the injected extension
	WalletModeDevnet  = "devnet"  // server-side stand-in wallet
	WalletModeNone    = "none"    // host without any wallet
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                   string `yaml:"port"`
	ReadTimeoutSeconds     int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds    int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds     int    `yaml:"idleTimeoutSeconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeoutSeconds"`
	EnablePprof            bool   `yaml:"enablePprof"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CreatorConfig holds configuration of the simulated creation workflow.
type CreatorConfig struct {
	SimulatedLatencyMillis int64 `yaml:"simulatedLatencyMillis"`
}

// NotificationConfig holds configuration of the notification emitter.
type NotificationConfig struct {
	TTLMillis int64 `yaml:"ttlMillis"`
	// CancelSuperseded stops the expiry timer of a replaced notification.
	// false reproduces the legacy behavior where a stale timer clears a newer message.
	CancelSuperseded *bool `yaml:"cancelSuperseded"`
}

// WalletConfig holds wallet capability configuration.
type WalletConfig struct {
	Mode       string `yaml:"mode"`
	Name       string `yaml:"name"`
	InstallURL string `yaml:"installURL"`
}

// SessionConfig holds browser session configuration.
type SessionConfig struct {
	CookieName             string `yaml:"cookieName"`
	CookieSecure           bool   `yaml:"cookieSecure"`
	TTLMinutes             int    `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int    `yaml:"cleanupIntervalMinutes"`
}

// RateLimitConfig holds per-client rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// CORSConfig holds CORS configuration for the JSON API.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// UIConfig holds page level settings.
type UIConfig struct {
	Title string `yaml:"title"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig             `yaml:"server"`
	Logging       LoggingConfig            `yaml:"logging"`
	Creator       CreatorConfig            `yaml:"creator"`
	Notifications NotificationConfig       `yaml:"notifications"`
	Wallet        WalletConfig             `yaml:"wallet"`
	Network       entity.NetworkDefinition `yaml:"network"`
	Session       SessionConfig            `yaml:"session"`
	RateLimit     RateLimitConfig          `yaml:"rateLimit"`
	CORS          CORSConfig               `yaml:"cors"`
	UI            UIConfig                 `yaml:"ui"`
}

// SimulatedLatency returns the creation delay as a duration.
func (c *Config) SimulatedLatency() time.Duration {
	return time.Duration(c.Creator.SimulatedLatencyMillis) * time.Millisecond
}

// NotificationTTL returns the notification lifetime as a duration.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.Notifications.TTLMillis) * time.Millisecond
}

// CancelSupersededNotifications reports the notification timer policy.
func (c *Config) CancelSupersededNotifications() bool {
	return c.Notifications.CancelSuperseded == nil || *c.Notifications.CancelSuperseded
}

// SessionTTL returns the idle lifetime of a browser session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// SessionCleanupInterval returns how often expired sessions are evicted.
func (c *Config) SessionCleanupInterval() time.Duration {
	return time.Duration(c.Session.CleanupIntervalMinutes) * time.Minute
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML configuration data and applies defaults. Empty data yields the defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data: %v", err)
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 10
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = 5
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Creator.SimulatedLatencyMillis <= 0 {
		cfg.Creator.SimulatedLatencyMillis = 2000
		logrus.Debugf("Creator.SimulatedLatencyMillis not set, defaulting to %d ms", cfg.Creator.SimulatedLatencyMillis)
	}
	if cfg.Notifications.TTLMillis <= 0 {
		cfg.Notifications.TTLMillis = 5000
		logrus.Debugf("Notifications.TTLMillis not set, defaulting to %d ms", cfg.Notifications.TTLMillis)
	}

	if cfg.Wallet.Mode == "" {
		cfg.Wallet.Mode = WalletModeBrowser
	}
	cfg.Wallet.Mode = strings.ToLower(cfg.Wallet.Mode)
	if cfg.Wallet.Name == "" {
		cfg.Wallet.Name = "Phantom"
	}
	if cfg.Wallet.InstallURL == "" {
		cfg.Wallet.InstallURL = "https://phantom.app/download"
	}

	// Defaults for the network: Solana devnet explorer
	if cfg.Network.Name == "" {
		cfg.Network.Name = entity.SolanaDevnet.Name
	}
	if cfg.Network.Identifier == "" {
		cfg.Network.Identifier = entity.SolanaDevnet.Identifier
	}
	if cfg.Network.NativeSymbol == "" {
		cfg.Network.NativeSymbol = entity.SolanaDevnet.NativeSymbol
	}
	if cfg.Network.BlockExplorerURL == "" {
		cfg.Network.BlockExplorerURL = entity.SolanaDevnet.BlockExplorerURL
	}

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "token_creator_session"
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 30
	}
	if cfg.Session.CleanupIntervalMinutes <= 0 {
		cfg.Session.CleanupIntervalMinutes = 5
	}

	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 10
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 20
	}

	if len(cfg.CORS.AllowOrigins) == 0 {
		cfg.CORS.AllowOrigins = []string{"*"}
	}

	if cfg.UI.Title == "" {
		cfg.UI.Title = "Solana Token Creator"
	}
}

func validate(cfg *Config) error {
	switch cfg.Wallet.Mode {
	case WalletModeBrowser, WalletModeDevnet, WalletModeNone:
	default:
		logrus.Errorf("Unknown wallet mode %q", cfg.Wallet.Mode)
		return fmt.Errorf("unknown wallet mode %q (want %s, %s or %s)",
			cfg.Wallet.Mode, WalletModeBrowser, WalletModeDevnet, WalletModeNone)
	}
	if !strings.HasPrefix(cfg.Network.BlockExplorerURL, "http://") && !strings.HasPrefix(cfg.Network.BlockExplorerURL, "https://") {
		return fmt.Errorf("network.blockExplorerUrl must be an http(s) URL, got %q", cfg.Network.BlockExplorerURL)
	}
	if !cfg.CancelSupersededNotifications() {
		logrus.Warn("notifications.cancelSuperseded is false: a stale expiry timer may clear a newer notification early")
	}
	return nil
}
