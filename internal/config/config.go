// Package config loads the tgbind CLI configuration: where the token vault
// lives and per-bot connection settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edouard/tgbind/internal/platform"
)

const configFilePerm = 0o600

// Defaults applied to profiles that leave a field unset.
const (
	DefaultTimeout        = 60 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	// DefaultBroadcastRate stays under the Bot API's 30 messages per second.
	DefaultBroadcastRate = 25.0
)

// ErrUnknownBot is returned by Profile for a name with no entry.
var ErrUnknownBot = errors.New("config: unknown bot")

// Replaceable for testing error paths.
var (
	atomicWrite   = platform.AtomicWrite
	userConfigDir = os.UserConfigDir
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Duration wraps time.Duration so it reads and writes as "30s" in JSON.
// A bare number is taken as seconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var secs float64
	if err := json.Unmarshal(b, &secs); err == nil {
		d.Duration = time.Duration(secs * float64(time.Second))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration: want a string or a number of seconds: %w", err)
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// Profile holds the settings for one bot. The token itself lives in the
// vault under the same name.
type Profile struct {
	BaseURL        string   `json:"base_url,omitempty" validate:"omitempty,url"`
	EnvFile        string   `json:"env_file,omitempty"`
	UploadRoot     string   `json:"upload_root,omitempty"`
	Timeout        Duration `json:"timeout,omitzero"`
	ConnectTimeout Duration `json:"connect_timeout,omitzero"`
	BroadcastRate  float64  `json:"broadcast_rate,omitempty" validate:"gte=0,lte=30"`
	S3             S3       `json:"s3,omitzero"`
}

// S3 says where s3:// file arguments are fetched from. Credentials come
// from the usual AWS environment and shared config.
type S3 struct {
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" validate:"omitempty,url"`
}

// Config is the on-disk CLI configuration.
type Config struct {
	DefaultBot string             `json:"default_bot,omitempty"`
	VaultPath  string             `json:"vault_path,omitempty"`
	Bots       map[string]Profile `json:"bots,omitempty" validate:"dive"`
}

// DefaultPath returns $XDG_CONFIG_HOME/tgbind/config.json or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, "tgbind", "config.json"), nil
}

// Load reads the configuration at path. A missing file yields an empty
// Config whose vault sits next to path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "component", "config", "operation", "load", "path", path)
		return &Config{VaultPath: filepath.Join(filepath.Dir(path), "vault.json")}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if cfg.VaultPath == "" {
		cfg.VaultPath = filepath.Join(filepath.Dir(path), "vault.json")
	}
	slog.Debug("config loaded", "component", "config", "operation", "load", "path", path, "bots", len(cfg.Bots))
	return &cfg, nil
}

// Save writes cfg to path atomically.
func Save(cfg *Config, path string) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: save: marshal: %w", err)
	}
	if err := atomicWrite(path, append(data, '\n'), configFilePerm); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	slog.Info("config saved", "component", "config", "operation", "save", "path", path)
	return nil
}

// Profile returns the settings for name with defaults filled in. An empty
// name selects DefaultBot; if that is empty too, a default profile is
// returned under the name "default".
func (c *Config) Profile(name string) (string, Profile, error) {
	if name == "" {
		name = c.DefaultBot
	}
	var p Profile
	if name == "" {
		name = "default"
	} else {
		var ok bool
		if p, ok = c.Bots[name]; !ok && name != c.DefaultBot {
			return "", Profile{}, fmt.Errorf("%w: %s", ErrUnknownBot, name)
		}
	}
	if p.Timeout.Duration == 0 {
		p.Timeout.Duration = DefaultTimeout
	}
	if p.ConnectTimeout.Duration == 0 {
		p.ConnectTimeout.Duration = DefaultConnectTimeout
	}
	if p.BroadcastRate == 0 {
		p.BroadcastRate = DefaultBroadcastRate
	}
	return name, p, nil
}

// SetBot stores p under name, making it the default when none is set.
func (c *Config) SetBot(name string, p Profile) {
	if c.Bots == nil {
		c.Bots = map[string]Profile{}
	}
	c.Bots[name] = p
	if c.DefaultBot == "" {
		c.DefaultBot = name
	}
}
