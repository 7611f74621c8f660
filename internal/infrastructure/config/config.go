package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrMissingSecret = errors.New("jwt secret key is required")

type Config struct {
	LogLevel       string        `yaml:"log_level"`
	HTTPAddr       string        `yaml:"http_addr"`
	GRPCPort       string        `yaml:"grpc_port"`
	JWTSecretKey   string        `yaml:"jwt_secret_key"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	DatabaseURL    string        `yaml:"database_url"`
	RedisAddr      string        `yaml:"redis_addr"`
	RelayChannel   string        `yaml:"relay_channel"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

func Default() Config {
	return Config{
		LogLevel:       "info",
		HTTPAddr:       ":5000",
		GRPCPort:       "56000",
		TokenTTL:       time.Hour,
		RelayChannel:   "realtime-events",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// Load reads the optional YAML file at path on top of the defaults, then lets
// the environment override every field.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decoder.Decode: %w", err)
		}
	}

	cfg.LogLevel = env("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPAddr = env("HTTP_ADDR", cfg.HTTPAddr)
	cfg.GRPCPort = env("GRPC_PORT", cfg.GRPCPort)
	cfg.JWTSecretKey = env("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.DatabaseURL = env("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisAddr = env("REDIS_ADDR", cfg.RedisAddr)
	cfg.RelayChannel = env("RELAY_CHANNEL", cfg.RelayChannel)

	if ttl, ok := os.LookupEnv("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("time.ParseDuration: %w", err)
		}
		cfg.TokenTTL = d
	}

	if origins, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(origins)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return ErrMissingSecret
	}

	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr is required")
	}

	if c.GRPCPort == "" {
		return fmt.Errorf("grpc_port is required")
	}

	if c.RedisAddr != "" && c.RelayChannel == "" {
		return fmt.Errorf("relay_channel is required when redis_addr is set")
	}

	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

func env(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
