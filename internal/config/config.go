// Package config wraps viper with the key layout PlantMatch reads at startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// PLANTMATCH_SERVER_PORT for server.port.
const EnvPrefix = "PLANTMATCH"

// Config is a read-only view over a viper instance. The zero value and a
// Config built from a nil viper return zero values for every key.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v yields an empty configuration.
func New(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	return &Config{v: v}
}

func (c *Config) viper() *viper.Viper {
	if c == nil || c.v == nil {
		return viper.New()
	}
	return c.v
}

func (c *Config) GetString(key string) string          { return c.viper().GetString(key) }
func (c *Config) GetInt(key string) int                { return c.viper().GetInt(key) }
func (c *Config) GetBool(key string) bool              { return c.viper().GetBool(key) }
func (c *Config) GetFloat64(key string) float64        { return c.viper().GetFloat64(key) }
func (c *Config) GetDuration(key string) time.Duration { return c.viper().GetDuration(key) }
func (c *Config) IsSet(key string) bool                { return c.viper().IsSet(key) }

// File returns the path of the config file that was read, or "" when
// configuration came only from defaults and the environment.
func (c *Config) File() string { return c.viper().ConfigFileUsed() }

// Sub returns the subtree rooted at key. A missing key yields an empty
// Config, never nil.
func (c *Config) Sub(key string) *Config {
	return New(c.viper().Sub(key))
}

// Unmarshal decodes the whole configuration into target using mapstructure
// tags.
func (c *Config) Unmarshal(target any) error {
	return c.viper().Unmarshal(target)
}

// Settings is the typed form of the configuration.
type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	Database  DatabaseSettings  `mapstructure:"database"`
	Catalog   CatalogSettings   `mapstructure:"catalog"`
	Auth      AuthSettings      `mapstructure:"auth"`
	RateLimit RateLimitSettings `mapstructure:"ratelimit"`
	Log       LogSettings       `mapstructure:"log"`
	MCP       MCPSettings       `mapstructure:"mcp"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseSettings locates the SQLite file holding gardens and wishlists.
type DatabaseSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

// CatalogSettings points at an external catalog file. An empty path means
// the embedded seed catalog.
type CatalogSettings struct {
	Path string `mapstructure:"path"`
}

// AuthSettings configures bearer token verification for the per-user
// endpoints. An empty secret disables those endpoints.
type AuthSettings struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// RateLimitSettings configures the per-client request limiter. The client
// is the TCP peer unless the peer is listed in TrustedProxies, in which case
// X-Forwarded-For is used.
type RateLimitSettings struct {
	Enabled        bool     `mapstructure:"enabled"`
	RPS            float64  `mapstructure:"rps" validate:"gte=0"`
	Burst          int      `mapstructure:"burst" validate:"gte=0"`
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,ip|cidr"`
}

// LogSettings selects the zap level and encoder.
type LogSettings struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// MCPSettings toggles the assistant endpoint at /mcp.
type MCPSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers the default value of every known key. Keys must be
// known to viper for env overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.path", "plantmatch.db")
	v.SetDefault("catalog.path", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 20.0)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("ratelimit.trusted_proxies", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("mcp.enabled", true)
}

// Load reads configuration from path, or from plantmatch.yaml in the
// working directory or /etc/plantmatch when path is empty. A missing
// default file is not an error. Environment variables override files.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		return New(v), nil
	}

	v.SetConfigName("plantmatch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/plantmatch")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return New(v), nil
}

// Settings decodes and validates the typed configuration.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return Settings{}, fmt.Errorf("config: invalid: %w", err)
	}
	return s, nil
}
