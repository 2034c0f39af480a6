package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
)

// Config holds the settings of the dbfwriter command. Flags override values
// loaded from a file.
type Config struct {
	Codepage         int    `toml:"codepage" yaml:"codepage"`
	OutputDirectory  string `toml:"output_directory" yaml:"outputDirectory"`
	UnsupportedTypes string `toml:"unsupported_types" yaml:"unsupportedTypes"`
	BlankEmptyValues bool   `toml:"blank_empty_values" yaml:"blankEmptyValues"`
	StampDate        bool   `toml:"stamp_date" yaml:"stampDate"`
	Logging          struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"logging" yaml:"logging"`
}

func Default() *Config {
	return &Config{
		Codepage:         godbf.DefaultCodepage,
		OutputDirectory:  ".",
		UnsupportedTypes: "downgrade",
	}
}

// Load reads a TOML or YAML file, chosen by its extension, on top of the
// defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := Default()
	tomlConfig := filepath.Ext(strings.ToLower(path)) == ".toml"
	if err := Unmarshall(content, config, tomlConfig); err != nil {
		return nil, errors.Errorf("decoding %s: %w", path, err)
	}
	return config, nil
}

func Unmarshall(content []byte, config *Config, tomlConfig bool) error {
	if tomlConfig {
		return toml.Unmarshal(content, config)
	}
	return yaml.Unmarshal(content, config)
}

// Policy resolves the configured unsupported type policy.
func (c *Config) Policy() (godbf.UnsupportedTypePolicy, error) {
	switch strings.ToLower(c.UnsupportedTypes) {
	case "", "downgrade":
		return godbf.DowngradeUnsupported, nil
	case "reject":
		return godbf.RejectUnsupported, nil
	}
	return 0, errors.Errorf("unknown unsupported_types policy %q", c.UnsupportedTypes)
}

// Options builds the writer options. The header date is stamped with now
// only when StampDate is set.
func (c *Config) Options(now time.Time) (godbf.Options, error) {
	policy, err := c.Policy()
	if err != nil {
		return godbf.Options{}, err
	}
	options := godbf.Options{
		Codepage:         c.Codepage,
		UnsupportedTypes: policy,
		BlankEmptyValues: c.BlankEmptyValues,
	}
	if c.StampDate {
		options.LastUpdate = now
	}
	return options, nil
}
