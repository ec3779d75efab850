package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file (plainspeak.yaml).
type Config struct {
	// PatternMatchers selects the regexp matcher family instead of the
	// default string-scan family.
	PatternMatchers bool `yaml:"pattern_matchers"`

	// StrictDispatch reports ambiguous dispatch candidates as errors.
	StrictDispatch bool `yaml:"strict_dispatch"`

	// RedisURL enables the Redis snapshot store ("host:port").
	RedisURL string `yaml:"redis_url"`

	// Synonyms maps verb names to extra synonyms, e.g. GET: [grab].
	Synonyms map[string][]string `yaml:"synonyms"`

	// Qualifiers adds format qualifiers beyond the builtin set.
	Qualifiers []string `yaml:"qualifiers"`
}

// LoadConfig reads the config file. A missing file yields defaults; a
// broken file is an error the user should see.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
