package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// PersonConfig describes one roster member and their leave input.
// Either leaveWeek (explicit week start, used as-is) or the ranked
// firstChoice/secondChoice pair may be set; leaveWeek wins when both are.
type PersonConfig struct {
	Name         string `yaml:"name" validate:"required"`
	FirstChoice  string `yaml:"firstChoice,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SecondChoice string `yaml:"secondChoice,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaveWeek    string `yaml:"leaveWeek,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// HolidayConfig configures the public holiday set: explicit one-off
// dates plus recurrence rules expanded over each roster range
type HolidayConfig struct {
	Dates  []string `yaml:"dates,omitempty" validate:"dive,datetime=2006-01-02"`
	RRules []string `yaml:"rrules,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string         `yaml:"databaseURL" validate:"required"`
	LeaveLength int            `yaml:"leaveLength,omitempty" validate:"omitempty,oneof=5 7"`
	DefaultSeed int64          `yaml:"defaultSeed,omitempty"`
	Holidays    HolidayConfig  `yaml:"holidays,omitempty"`
	People      []PersonConfig `yaml:"people" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given
// environment. It looks for ward_rota_config.<env>.yaml in the current
// directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("ward_rota_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, checks holiday rrule
// syntax, and rejects duplicate person names
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seen := make(map[string]bool, len(cfg.People))
	for _, person := range cfg.People {
		if seen[person.Name] {
			return fmt.Errorf("duplicate person name %q in config", person.Name)
		}
		seen[person.Name] = true
	}

	for i, rule := range cfg.Holidays.RRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidays.rrules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the named config file in the current
// directory and the home directory
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
