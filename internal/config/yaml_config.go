package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Owners and their redirect rules are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Owners   []OwnerConfig  `yaml:"owners"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// OwnerConfig defines an owner in the YAML config.
type OwnerConfig struct {
	Code                   string           `yaml:"code"`
	Name                   string           `yaml:"name"`
	LocatingStrategy       string           `yaml:"locating_strategy,omitempty"` // "basic" or "simple"
	PreprocessingRedirects []RedirectConfig `yaml:"preprocessing_redirects,omitempty"`
	NotFoundRedirects      []RedirectConfig `yaml:"not_found_redirects,omitempty"`
}

// RedirectConfig defines a call number rewrite rule.
type RedirectConfig struct {
	Condition string `yaml:"condition"` // Regular expression
	Operation string `yaml:"operation"` // Replacement, $1 refers to the first group
	Active    *bool  `yaml:"active,omitempty"`
}

// DefaultsConfig defines default settings.
type DefaultsConfig struct {
	LocatingStrategy string `yaml:"locating_strategy"`
}

// IsActive returns whether the rule is enabled; rules are active unless disabled.
func (r RedirectConfig) IsActive() bool {
	return r.Active == nil || *r.Active
}

// LoadYAMLConfigFile loads the YAML configuration from path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Defaults.LocatingStrategy == "" {
		cfg.Defaults.LocatingStrategy = "basic"
	}
	for i := range cfg.Owners {
		if cfg.Owners[i].LocatingStrategy == "" {
			cfg.Owners[i].LocatingStrategy = cfg.Defaults.LocatingStrategy
		}
		if cfg.Owners[i].Name == "" {
			cfg.Owners[i].Name = cfg.Owners[i].Code
		}
	}

	return &cfg, nil
}

// GetOwnerByCode finds an owner by its code.
func (c *YAMLConfig) GetOwnerByCode(code string) *OwnerConfig {
	if c == nil {
		return nil
	}
	for i := range c.Owners {
		if c.Owners[i].Code == code {
			return &c.Owners[i]
		}
	}
	return nil
}
