package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLOverrides is the optional "wordspace.yaml" sidecar layered on top of
// disco.config. Only fields set in the sidecar are applied, and each one
// replaces the value cfg already holds, including a value read from
// disco.config.
type YAMLOverrides struct {
	VocabularySize *int     `yaml:"vocabularySize"`
	StopwordFile   *string  `yaml:"stopwordFile"`
	Stopwords      []string `yaml:"stopwords"`
	MinSimilarity  *float32 `yaml:"minSimilarity"` // parsed only; Config has no counterpart
}

// LoadYAMLOverrides reads path (if it exists) and applies its
// VocabularySize, StopwordFile and Stopwords onto cfg, returning the
// merged config; MinSimilarity is not applied. A missing file is not an
// error.
func LoadYAMLOverrides(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &CorruptConfigError{Path: path, Err: err}
	}

	var overrides YAMLOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return cfg, &CorruptConfigError{Path: path, Err: err}
	}

	if overrides.VocabularySize != nil {
		cfg.VocabularySize = *overrides.VocabularySize
	}
	if overrides.StopwordFile != nil {
		cfg.StopwordFile = *overrides.StopwordFile
	}
	if len(overrides.Stopwords) > 0 {
		cfg.Stopwords = overrides.Stopwords
	}
	return cfg, nil
}
