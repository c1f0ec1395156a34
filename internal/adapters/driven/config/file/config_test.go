package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultCorpusDir, cfg.Corpus.Dir)
	assert.Equal(t, DefaultChunkSize, cfg.Chunker.Size)
	assert.Equal(t, DefaultChunkOverlap, cfg.Chunker.Overlap)
	assert.Equal(t, DefaultTopK, cfg.Query.TopK)
	assert.Equal(t, DefaultGeneratorKind, cfg.Generator.Kind)
	assert.Equal(t, DefaultOllamaBaseURL, cfg.Generator.BaseURL)
	assert.Equal(t, DefaultOllamaTimeout, cfg.Generator.Timeout())
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[corpus]
dir = "/srv/docs"

[generator]
kind = "ollama"
model = "mistral"
timeout_seconds = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.Corpus.Dir)
	assert.Equal(t, "ollama", cfg.Generator.Kind)
	assert.Equal(t, "mistral", cfg.Generator.Model)
	assert.Equal(t, 30, cfg.Generator.TimeoutSeconds)

	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultChunkSize, cfg.Chunker.Size)
	assert.Equal(t, DefaultChunkOverlap, cfg.Chunker.Overlap)
	assert.Equal(t, DefaultTopK, cfg.Query.TopK)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("corpus = [broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_AccessPolicy_Defaults(t *testing.T) {
	policy := Default().AccessPolicy()
	want := domain.DefaultAccessPolicy()

	assert.Equal(t, want.Restrictions, policy.Restrictions)
	assert.Equal(t, want.SensitiveTerms, policy.SensitiveTerms)
}

func TestConfig_AccessPolicy_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[access]
sensitive_terms = ["merger", "acquisition"]

[access.restrictions]
"finance.txt" = ["admin", "bogus-role"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	policy := cfg.AccessPolicy()
	assert.Equal(t, []string{"merger", "acquisition"}, policy.SensitiveTerms)

	// Overrides replace the defaults wholesale.
	require.Len(t, policy.Restrictions, 1)
	// Unknown role names normalize to public.
	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RolePublic},
		policy.Restrictions["finance.txt"])
}
