package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/enem-prep/backend/internal/irt"
)

// Config is the server configuration, loaded from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"enem_user"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"enem_password"`
	DBName     string `env:"DB_NAME" envDefault:"enem_prep"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// JWTSecret is the HMAC signing key for auth tokens. It is a
	// server-side secret and never leaves the backend.
	JWTSecret string `env:"JWT_SECRET" envDefault:"enem-prep-staging-signing-key-2026"`

	AnthropicEnabled bool   `env:"ANTHROPIC_ENABLED" envDefault:"false"`
	AnthropicModel   string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`

	// ScalesFile optionally points at a YAML file of per-area reporting
	// scale overrides. Areas not listed use the default ENEM scale.
	ScalesFile string `env:"SCALES_FILE"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Scales returns the per-area reporting scales. When no override file is
// configured every area maps to the default scale.
func (c *Config) Scales() (map[string]irt.Scale, error) {
	if c.ScalesFile == "" {
		return map[string]irt.Scale{}, nil
	}
	return LoadScales(c.ScalesFile)
}

// scaleOverride mirrors irt.Scale with optional fields, so a file can
// override just the reporting mean, for example.
type scaleOverride struct {
	ThetaMean *float64 `yaml:"theta_mean"`
	ThetaSD   *float64 `yaml:"theta_sd"`
	ScoreMean *float64 `yaml:"score_mean"`
	ScoreSD   *float64 `yaml:"score_sd"`
	ThetaMin  *float64 `yaml:"theta_min"`
	ThetaMax  *float64 `yaml:"theta_max"`
}

// LoadScales reads per-area scale overrides from a YAML file keyed by
// area code. Omitted fields inherit the default scale's values.
func LoadScales(path string) (map[string]irt.Scale, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scales file: %w", err)
	}

	overrides := map[string]scaleOverride{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse scales file: %w", err)
	}

	scales := make(map[string]irt.Scale, len(overrides))
	for area, o := range overrides {
		scale := irt.DefaultScale()
		if o.ThetaMean != nil {
			scale.ThetaMean = *o.ThetaMean
		}
		if o.ThetaSD != nil {
			scale.ThetaSD = *o.ThetaSD
		}
		if o.ScoreMean != nil {
			scale.ScoreMean = *o.ScoreMean
		}
		if o.ScoreSD != nil {
			scale.ScoreSD = *o.ScoreSD
		}
		if o.ThetaMin != nil {
			scale.ThetaMin = *o.ThetaMin
		}
		if o.ThetaMax != nil {
			scale.ThetaMax = *o.ThetaMax
		}

		if scale.ThetaSD <= 0 || scale.ScoreSD <= 0 {
			return nil, fmt.Errorf("scales file: area %s: standard deviations must be positive", area)
		}
		if scale.ThetaMin >= scale.ThetaMax {
			return nil, fmt.Errorf("scales file: area %s: theta_min must be below theta_max", area)
		}
		scales[area] = scale
	}
	return scales, nil
}
