// Package config loads scandiff settings from defaults, an optional YAML file,
// SCANDIFF_* environment variables and command line flags, in increasing order of
// precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the continuous scan configuration.
type Config struct {
	Scan         ScanConfig    `mapstructure:"scan"`
	Interval     time.Duration `mapstructure:"interval"`
	OutputDir    string        `mapstructure:"output_dir"`
	FirstMatch   bool          `mapstructure:"first_match"`
	ResolveHosts bool          `mapstructure:"resolve_hosts"`
	MetricsAddr  string        `mapstructure:"metrics_addr"`
}

// ScanConfig describes the external scan program.
type ScanConfig struct {
	Command string   `mapstructure:"command"`
	Shell   string   `mapstructure:"shell"`
	Args    []string `mapstructure:"args"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Command: "scan_network.sh",
			Shell:   "bash",
		},
		Interval:  5 * time.Second,
		OutputDir: "output",
	}
}

// FlagKeys maps configuration keys to the flag names bound to them.
var FlagKeys = map[string]string{
	"scan.command":  "command",
	"scan.shell":    "shell",
	"scan.args":     "arg",
	"interval":      "interval",
	"output_dir":    "output-dir",
	"first_match":   "first-match",
	"resolve_hosts": "resolve-hosts",
	"metrics_addr":  "metrics-addr",
}

// Load reads the configuration. path may be empty, and flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("scan.command", def.Scan.Command)
	v.SetDefault("scan.shell", def.Scan.Shell)
	v.SetDefault("scan.args", def.Scan.Args)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("first_match", def.FirstMatch)
	v.SetDefault("resolve_hosts", def.ResolveHosts)
	v.SetDefault("metrics_addr", def.MetricsAddr)

	v.SetEnvPrefix("scandiff")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the loop cannot run with.
func (c *Config) Validate() error {
	if c.Scan.Command == "" {
		return fmt.Errorf("scan command must be set")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must be set")
	}
	return nil
}
