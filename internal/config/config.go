package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// GEODEV_HTTP_ADDR for http.addr.
const EnvPrefix = "GEODEV"

// DatabaseConfig selects the backing store.
type DatabaseConfig struct {
	// URL is the connection string. Empty selects the embedded store.
	URL string `mapstructure:"url" yaml:"url"`

	// KeyringKey names a keyring entry holding the connection string. It is
	// consulted only when URL is empty.
	KeyringKey string `mapstructure:"keyring_key" yaml:"keyring_key"`

	// SQLitePath is the embedded store used when URL is empty or unusable.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	PingTimeout time.Duration `mapstructure:"ping_timeout" yaml:"ping_timeout"`
}

// CredentialConfig configures the keyring used for secrets. FileDir and
// FilePassword only matter when the encrypted file backend is selected.
type CredentialConfig struct {
	FileDir      string `mapstructure:"file_dir" yaml:"file_dir"`
	FilePassword string `mapstructure:"file_password" yaml:"file_password"`
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Credential CredentialConfig `mapstructure:"credential" yaml:"credential"`
	HTTP       HTTPConfig       `mapstructure:"http" yaml:"http"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.url", "")
	v.SetDefault("database.keyring_key", "")
	v.SetDefault("database.sqlite_path", "./geodev_demo.db")
	v.SetDefault("database.ping_timeout", 5*time.Second)
	v.SetDefault("credential.file_dir", "")
	v.SetDefault("credential.file_password", "")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.request_timeout", 10*time.Second)
	v.SetDefault("http.cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration from defaults, the optional YAML file at path,
// and environment variables, in increasing order of precedence. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The connection string keeps the names deployments already use.
	if err := v.BindEnv("database.url",
		EnvPrefix+"_DATABASE_URL", "DATABASE_URL", "SUPABASE_DB_URL",
	); err != nil {
		return nil, fmt.Errorf("binding database url env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// SecretGetter looks up a secret by key.
type SecretGetter interface {
	Get(key string) (string, error)
}

// ResolveURL returns the connection string to use. When URL is empty and a
// keyring key is configured, the value is read from secrets.
func (c DatabaseConfig) ResolveURL(secrets SecretGetter) (string, error) {
	if c.URL != "" || c.KeyringKey == "" {
		return c.URL, nil
	}
	if secrets == nil {
		return "", fmt.Errorf("database url: keyring key %q configured but no keyring available", c.KeyringKey)
	}
	url, err := secrets.Get(c.KeyringKey)
	if err != nil {
		return "", fmt.Errorf("database url: %w", err)
	}
	return strings.TrimSpace(url), nil
}
