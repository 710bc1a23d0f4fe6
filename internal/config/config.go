// Package config loads Stickler's operational settings: default
// comparator tolerances and engine options. It never carries schema or
// record data — those arrive at call time through the engine's own
// arguments, never through this package.
package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/awslabs/stickler/domain"
)

// Config is the top-level configuration structure, loadable from a
// .stickler.yaml/.stickler.toml file or built from defaults.
type Config struct {
	// Options mirrors domain.Options so it can be set from a config
	// file; ToOptions converts it back for the engine.
	Options OptionsConfig `mapstructure:"options" yaml:"options" toml:"options"`

	// Similarity holds the default tolerance windows used to build the
	// built-in numeric-tolerance comparator (§4.3, §4.5).
	Similarity SimilarityConfig `mapstructure:"similarity" yaml:"similarity" toml:"similarity"`
}

// OptionsConfig is the file-loadable form of domain.Options.
type OptionsConfig struct {
	IncludeConfusionMatrix bool `mapstructure:"include_confusion_matrix" yaml:"include_confusion_matrix" toml:"include_confusion_matrix"`
	DocumentNonMatches     bool `mapstructure:"document_non_matches" yaml:"document_non_matches" toml:"document_non_matches"`
	EvaluatorFormat        bool `mapstructure:"evaluator_format" yaml:"evaluator_format" toml:"evaluator_format"`
	RecallWithFD           bool `mapstructure:"recall_with_fd" yaml:"recall_with_fd" toml:"recall_with_fd"`
	AddDerivedMetrics      bool `mapstructure:"add_derived_metrics" yaml:"add_derived_metrics" toml:"add_derived_metrics"`
}

// ToOptions converts the loaded OptionsConfig into domain.Options.
func (o OptionsConfig) ToOptions() domain.Options {
	return domain.Options{
		IncludeConfusionMatrix: o.IncludeConfusionMatrix,
		DocumentNonMatches:     o.DocumentNonMatches,
		EvaluatorFormat:        o.EvaluatorFormat,
		RecallWithFD:           o.RecallWithFD,
		AddDerivedMetrics:      o.AddDerivedMetrics,
	}
}

// SimilarityConfig configures the registered built-in comparators.
type SimilarityConfig struct {
	// NumericAbsTolerance is the absolute tolerance window for
	// "numeric-tolerance" (default 0).
	NumericAbsTolerance float64 `mapstructure:"numeric_abs_tolerance" yaml:"numeric_abs_tolerance" toml:"numeric_abs_tolerance"`

	// NumericRelTolerance is the relative tolerance window for
	// "numeric-tolerance" (default 0.01, i.e. 1%).
	NumericRelTolerance float64 `mapstructure:"numeric_rel_tolerance" yaml:"numeric_rel_tolerance" toml:"numeric_rel_tolerance"`
}

// DefaultConfig returns Stickler's zero-configuration defaults: derived
// metrics on, a 1% relative numeric tolerance.
func DefaultConfig() *Config {
	return &Config{
		Options: OptionsConfig{
			AddDerivedMetrics: true,
		},
		Similarity: SimilarityConfig{
			NumericRelTolerance: 0.01,
		},
	}
}

// LoadConfig loads configuration from path (yaml or toml, detected by
// extension) and overlays it onto DefaultConfig's values. An empty path
// or a missing file returns the default configuration; a present but
// unparsable file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	setConfigDefaults(v, cfg)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("stickler: reading config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("stickler: decoding config %s: %w", path, err)
	}
	return cfg, nil
}

// setConfigDefaults seeds viper's own default layer from cfg, so a
// config file that sets only one key (e.g. similarity.numeric_rel_tolerance)
// never zeroes out the rest of the structure on Unmarshal.
func setConfigDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("options.include_confusion_matrix", cfg.Options.IncludeConfusionMatrix)
	v.SetDefault("options.document_non_matches", cfg.Options.DocumentNonMatches)
	v.SetDefault("options.evaluator_format", cfg.Options.EvaluatorFormat)
	v.SetDefault("options.recall_with_fd", cfg.Options.RecallWithFD)
	v.SetDefault("options.add_derived_metrics", cfg.Options.AddDerivedMetrics)
	v.SetDefault("similarity.numeric_abs_tolerance", cfg.Similarity.NumericAbsTolerance)
	v.SetDefault("similarity.numeric_rel_tolerance", cfg.Similarity.NumericRelTolerance)
}

// Watch re-loads the file at path whenever it changes on disk (fsnotify,
// wired transitively through viper.WatchConfig) and invokes onChange
// with the freshly loaded Config. Load errors during a watched reload
// are swallowed after one attempt — a transient partial write of the
// file should not crash a long-running server; the previous
// configuration keeps serving until a valid reload succeeds.
func Watch(path string, onChange func(*Config)) error {
	if path == "" {
		return fmt.Errorf("stickler: Watch requires a non-empty config path")
	}
	v := viper.New()
	v.SetConfigFile(path)
	cfg := DefaultConfig()
	setConfigDefaults(v, cfg)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("stickler: reading config %s: %w", path, err)
	}
	v.OnConfigChange(func(_ fsnotify.Event) {
		reloaded, err := LoadConfig(path)
		if err != nil {
			return
		}
		onChange(reloaded)
	})
	v.WatchConfig()
	return nil
}

// SaveConfig writes cfg to path as YAML or TOML, chosen by extension
// (".toml" selects TOML; everything else writes YAML), mirroring how
// the caller loaded it.
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	var err error
	if isTomlPath(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("stickler: encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func isTomlPath(path string) bool {
	return len(path) >= 5 && path[len(path)-5:] == ".toml"
}
