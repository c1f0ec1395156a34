// Package file loads typed configuration from a TOML file.
// Every field is optional; absent fields fall back to defaults, and a
// missing file yields the defaults unchanged.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// Default values used when the config file omits a field.
const (
	DefaultCorpusDir      = "documents"
	DefaultChunkSize      = 500
	DefaultChunkOverlap   = 50
	DefaultTopK           = 3
	DefaultGeneratorKind  = "extractive"
	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultOllamaModel    = "llama3.2"
	DefaultOllamaTimeout  = 120 * time.Second
	defaultConfigFileName = "config.toml"
)

// Config is the full application configuration.
type Config struct {
	Corpus    CorpusConfig    `toml:"corpus"`
	Chunker   ChunkerConfig   `toml:"chunker"`
	Snapshot  SnapshotConfig  `toml:"snapshot"`
	Query     QueryConfig     `toml:"query"`
	Generator GeneratorConfig `toml:"generator"`
	Access    AccessConfig    `toml:"access"`
}

// CorpusConfig locates the document corpus.
type CorpusConfig struct {
	// Dir is the directory holding the corpus files.
	Dir string `toml:"dir"`
}

// ChunkerConfig controls document splitting.
type ChunkerConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// SnapshotConfig locates the persisted index.
type SnapshotConfig struct {
	// Path is the snapshot database file. Empty selects the store's
	// own default under ~/.quarry.
	Path string `toml:"path"`
}

// QueryConfig controls retrieval.
type QueryConfig struct {
	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`
}

// GeneratorConfig selects and tunes the answer generator.
type GeneratorConfig struct {
	// Kind is "extractive" or "ollama".
	Kind string `toml:"kind"`

	// BaseURL, Model and TimeoutSeconds apply to the ollama kind.
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the configured request timeout.
func (g GeneratorConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return DefaultOllamaTimeout
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// AccessConfig overrides the built-in access policy. Either list, when
// present, replaces its default wholesale rather than merging.
type AccessConfig struct {
	// Restrictions maps a document ID to the role names allowed to
	// see it. Documents not listed are visible to every role.
	Restrictions map[string][]string `toml:"restrictions"`

	// SensitiveTerms are the terms redacted for roles without
	// sensitive-information access.
	SensitiveTerms []string `toml:"sensitive_terms"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Corpus:  CorpusConfig{Dir: DefaultCorpusDir},
		Chunker: ChunkerConfig{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		Query:   QueryConfig{TopK: DefaultTopK},
		Generator: GeneratorConfig{
			Kind:    DefaultGeneratorKind,
			BaseURL: DefaultOllamaBaseURL,
			Model:   DefaultOllamaModel,
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.quarry/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".quarry", defaultConfigFileName), nil
}

// Load reads the config file at path. A missing file is not an error;
// the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults fills fields an explicit file left zeroed.
func applyDefaults(cfg *Config) {
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = DefaultCorpusDir
	}
	if cfg.Chunker.Size <= 0 {
		cfg.Chunker.Size = DefaultChunkSize
	}
	if cfg.Chunker.Overlap < 0 {
		cfg.Chunker.Overlap = DefaultChunkOverlap
	}
	if cfg.Query.TopK <= 0 {
		cfg.Query.TopK = DefaultTopK
	}
	if cfg.Generator.Kind == "" {
		cfg.Generator.Kind = DefaultGeneratorKind
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = DefaultOllamaBaseURL
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = DefaultOllamaModel
	}
}

// AccessPolicy converts the access section into a domain policy,
// falling back to the built-in defaults for absent parts.
func (c Config) AccessPolicy() domain.AccessPolicy {
	policy := domain.DefaultAccessPolicy()

	if c.Access.Restrictions != nil {
		restrictions := make(map[string][]domain.Role, len(c.Access.Restrictions))
		for docID, names := range c.Access.Restrictions {
			roles := make([]domain.Role, 0, len(names))
			for _, name := range names {
				roles = append(roles, domain.ParseRole(name))
			}
			restrictions[docID] = roles
		}
		policy.Restrictions = restrictions
	}
	if c.Access.SensitiveTerms != nil {
		policy.SensitiveTerms = c.Access.SensitiveTerms
	}
	return policy
}
