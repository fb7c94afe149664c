package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yokitheyo/bracketdecode/notation"
)

type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type DecodeConfig struct {
	Mode      string `yaml:"mode"`
	MaxOutput int    `yaml:"max_output"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	MaxConns     int           `yaml:"max_conns"`
	MaxInput     int           `yaml:"max_input"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			Mode:      notation.ModeCompat.String(),
			MaxOutput: 1 << 20,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxConns:     64,
			MaxInput:     4096,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := notation.ParseMode(c.Decode.Mode); err != nil {
		return err
	}
	if c.Decode.MaxOutput < 0 {
		return fmt.Errorf("decode.max_output must not be negative")
	}
	if c.Server.MaxConns < 0 {
		return fmt.Errorf("server.max_conns must not be negative")
	}
	if c.Server.MaxInput < 0 {
		return fmt.Errorf("server.max_input must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Decoder builds a notation.Decoder from the decode section.
func (c *Config) Decoder() (*notation.Decoder, error) {
	mode, err := notation.ParseMode(c.Decode.Mode)
	if err != nil {
		return nil, err
	}
	return notation.NewDecoder(
		notation.WithMode(mode),
		notation.WithMaxOutput(c.Decode.MaxOutput),
	), nil
}
