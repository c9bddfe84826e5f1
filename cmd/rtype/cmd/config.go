package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional configuration file, for example
//
//	lang: en
//	types:
//	  order: '{"id":"integer","items":"string[]"}'
type Config struct {
	Lang  string            `yaml:"lang"`
	Types map[string]string `yaml:"types"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// resolve returns the descriptor registered as name, or name itself.
func (c *Config) resolve(name string) string {
	if d, ok := c.Types[name]; ok {
		return d
	}
	return name
}
