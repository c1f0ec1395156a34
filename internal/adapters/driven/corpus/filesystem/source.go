// Package filesystem loads corpus documents from a local directory.
// Plain text files are used verbatim; Markdown files are reduced to
// their text content so markup never leaks into the index.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
	"github.com/quarry-labs/quarry/internal/logger"
)

// Source reads documents from a single flat directory.
type Source struct {
	dir string
}

var _ driven.CorpusSource = (*Source)(nil)

// NewSource creates a source reading from dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the corpus directory.
func (s *Source) Dir() string {
	return s.dir
}

// Load reads every supported document in the corpus directory.
// Unreadable files are logged and skipped; a missing directory is an
// error because an empty index built from it would mask the mistake.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	names, err := s.list()
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable document %s: %v", name, err)
			continue
		}

		content := string(raw)
		if isMarkdown(name) {
			content = extractMarkdownText(raw)
		}

		docs = append(docs, domain.Document{
			ID:      name,
			Path:    path,
			Content: content,
		})
	}

	logger.Debug("loaded %d documents from %s", len(docs), s.dir)
	return docs, nil
}

// List returns the supported document names without reading contents.
func (s *Source) List(_ context.Context) ([]string, error) {
	return s.list()
}

func (s *Source) list() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, s.dir)
		}
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown":
		return true
	}
	return false
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
