package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of options a YAML config file may set,
// grounded on the teacher's database.ParseGeneratorConfig: connection
// details are the kind of thing a user keeps in a checked-in file rather
// than retyping on every invocation, while per-run flags like Jobs or
// Update stay command-line only.
type fileConfig struct {
	Engine   string `yaml:"engine"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DbName   string `yaml:"db"`
}

func loadConfig(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig fills any option left at its flag default from cfg, so a
// config file supplies the baseline and explicit flags still win.
func applyConfig(opts *options, cfg fileConfig) {
	if opts.Engine == "" {
		opts.Engine = cfg.Engine
	}
	if opts.Host == "" && cfg.Host != "" {
		opts.Host = cfg.Host
	}
	if opts.Port == 0 {
		opts.Port = cfg.Port
	}
	if opts.User == "" {
		opts.User = cfg.User
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	if opts.DbName == "" && cfg.DbName != "" {
		opts.DbName = cfg.DbName
	}
}
