package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	TokenDuration time.Duration `yaml:"token_duration"`
	DatabaseDSN   string        `yaml:"database_dsn"`
	SeedPath      string        `yaml:"seed_path"`
	MaxResumeSize int64         `yaml:"max_resume_size"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("PORTAL_ADDR", ":8080"),
		JWTSecret:     getEnv("PORTAL_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		TokenDuration: 1 * time.Hour,
		DatabaseDSN:   getEnv("PORTAL_DATABASE_DSN", "file::memory:?cache=shared"),
		SeedPath:      getEnv("PORTAL_SEED_PATH", ""),
		MaxResumeSize: 10 << 20,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a real deployment. The
// default JWT secret is allowed only when PORTAL_ENV is development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.MaxResumeSize <= 0 {
		return fmt.Errorf("max_resume_size must be positive")
	}
	if c.JWTSecret == insecureJWTSecret && getEnv("PORTAL_ENV", "development") != "development" {
		return fmt.Errorf("refusing to run with the default jwt_secret outside development")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
