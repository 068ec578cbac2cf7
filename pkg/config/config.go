// Package config loads manas settings from .manas.yaml and MANAS_* env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names an extra directory searched for .manas.yaml.
	EnvConfigPath = "MANAS_CONFIG_PATH"

	DefaultPath    = "~/.manas"
	DefaultAddr    = ":8080"
	DefaultDB      = "~/.manas/manas.db"
	DefaultIssuer  = "manas"
	DefaultTimeout = 10 * time.Second
)

// Config is the effective configuration. Its yaml layout matches the file
// format, so `manas config` output can be saved as .manas.yaml.
type Config struct {
	Path   string `yaml:"path"`
	Token  string `yaml:"token,omitempty"`
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
	HTTP   HTTP   `yaml:"http"`
	Serve  Serve  `yaml:"serve"`

	// File is the config file that was read, if any.
	File string `yaml:"-"`
}

type Server struct {
	URL string `yaml:"url,omitempty"`
}

type Log struct {
	Level string `yaml:"level"`
}

type HTTP struct {
	Timeout time.Duration `yaml:"timeout"`
}

type Serve struct {
	Addr         string        `yaml:"addr"`
	DB           string        `yaml:"db"`
	Secret       string        `yaml:"secret,omitempty"`
	CleanupKey   string        `yaml:"cleanupKey,omitempty"`
	CleanupEvery time.Duration `yaml:"cleanupEvery,omitempty"`
	Issuer       string        `yaml:"issuer"`
	LogLevel     string        `yaml:"logLevel"`
}

// Authenticated reports whether a server and identity token are configured.
func (c *Config) Authenticated() bool {
	return c.Server.URL != "" && c.Token != ""
}

// Load reads the config file (a missing file is fine) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log.level", "warn")
	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("serve.addr", DefaultAddr)
	v.SetDefault("serve.db", DefaultDB)
	v.SetDefault("serve.issuer", DefaultIssuer)
	v.SetDefault("serve.logLevel", "info")
	v.SetConfigName(".manas") // .yaml is implicit
	v.SetEnvPrefix("MANAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Token:  v.GetString("token"),
		Server: Server{URL: strings.TrimRight(v.GetString("server.url"), "/")},
		Log:    Log{Level: v.GetString("log.level")},
		HTTP:   HTTP{Timeout: v.GetDuration("http.timeout")},
		Serve: Serve{
			Addr:         v.GetString("serve.addr"),
			Secret:       v.GetString("serve.secret"),
			CleanupKey:   v.GetString("serve.cleanupKey"),
			CleanupEvery: v.GetDuration("serve.cleanupEvery"),
			Issuer:       v.GetString("serve.issuer"),
			LogLevel:     v.GetString("serve.logLevel"),
		},
		File: v.ConfigFileUsed(),
	}
	var err error
	if cfg.Path, err = homedir.Expand(v.GetString("path")); err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}
	if cfg.Serve.DB, err = homedir.Expand(v.GetString("serve.db")); err != nil {
		return nil, fmt.Errorf("expand serve.db: %w", err)
	}
	return cfg, nil
}

// YAML renders the config with secrets masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	out.Token = mask(out.Token)
	out.Serve.Secret = mask(out.Serve.Secret)
	out.Serve.CleanupKey = mask(out.Serve.CleanupKey)
	return yaml.Marshal(out)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// Logger builds a console logger on stderr at log.level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}

// ServerLogger builds the JSON logger used by `manas serve`.
func (c *Config) ServerLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Serve.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("serve.logLevel: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
