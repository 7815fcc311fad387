// Package config handles the YAML configuration file, including the list of
// broadcast groups that is written back when the bot joins a new group.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

var clockRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// Config holds the application configuration. Group membership is guarded by a
// mutex because the Telegram update loop and the scheduled jobs run on
// different goroutines.
type Config struct {
	mu   sync.Mutex
	path string

	Telegram struct {
		Token  string  `yaml:"token"`
		Groups []int64 `yaml:"groups"`
	} `yaml:"telegram"`

	Data struct {
		Results  string `yaml:"results"`
		Schedule string `yaml:"schedule"`
		Calendar string `yaml:"calendar"`
	} `yaml:"data"`

	Schedule struct {
		Results  string `yaml:"results"`
		Schedule string `yaml:"schedule"`
	} `yaml:"schedule"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided path
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram.token is required")
	}
	for key, value := range map[string]string{
		"schedule.results":  cfg.Schedule.Results,
		"schedule.schedule": cfg.Schedule.Schedule,
	} {
		if !clockRe.MatchString(value) {
			return nil, fmt.Errorf("%s: invalid time %q, want HH:MM", key, value)
		}
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/bot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Groups returns a snapshot of the broadcast group IDs.
func (c *Config) Groups() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	groups := make([]int64, len(c.Telegram.Groups))
	copy(groups, c.Telegram.Groups)
	return groups
}

// AddGroup appends a group to the broadcast list.
// It reports whether the group was actually new.
func (c *Config) AddGroup(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.Telegram.Groups {
		if g == id {
			return false
		}
	}
	c.Telegram.Groups = append(c.Telegram.Groups, id)
	return true
}

// Save writes the configuration back to the file it was loaded from.
// The write goes through a temp file in the same directory so a crash cannot
// leave a truncated config behind.
func (c *Config) Save() error {
	c.mu.Lock()
	data, err := yaml.Marshal(c)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
