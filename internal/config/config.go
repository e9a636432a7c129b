// Package config holds the file-based settings of an analysis run. Every
// field has a working default so the zero config analyzes a corpus out of
// the box.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/intentgraph/internal/analysis"
	"github.com/aretw0/intentgraph/internal/risk"
)

// AnalysisConfig tunes extraction and classification.
type AnalysisConfig struct {
	EntryRecordTypes []string               `yaml:"entry_record_types" json:"entry_record_types"`
	SubtypeRules     []analysis.SubtypeRule `yaml:"subtype_rules" json:"subtype_rules"`
}

// LoaderConfig tunes corpus loading.
type LoaderConfig struct {
	MaxRecords    int  `yaml:"max_records" json:"max_records"`
	FilterExpired bool `yaml:"filter_expired" json:"filter_expired"`
}

// ExportConfig tunes diagram output.
type ExportConfig struct {
	Dir      string `yaml:"dir" json:"dir"`
	BaseName string `yaml:"base_name" json:"base_name"`
}

// ServerConfig tunes the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// RedisConfig tunes the optional Redis report store. An empty Addr keeps
// reports in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTLHours int    `yaml:"ttl_hours" json:"ttl_hours"`
}

// Config is the root settings document.
type Config struct {
	LogLevel string         `yaml:"log_level" json:"log_level"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Loader   LoaderConfig   `yaml:"loader" json:"loader"`
	Risk     risk.Weights   `yaml:"risk_weights" json:"risk_weights"`
	Export   ExportConfig   `yaml:"export" json:"export"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Redis    RedisConfig    `yaml:"redis" json:"redis"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			EntryRecordTypes: []string{"cc_regexp_main"},
			SubtypeRules:     analysis.DefaultSubtypeRules(),
		},
		Loader: LoaderConfig{FilterExpired: true},
		Risk:   risk.DefaultWeights(),
		Export: ExportConfig{Dir: "diagrams", BaseName: "intent_graph"},
		Server: ServerConfig{Addr: ":8080"},
		Redis:  RedisConfig{Prefix: "intentgraph:report:"},
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
