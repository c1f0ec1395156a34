// Package ollama provides an answer generator backed by a local
// Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// answerPrompt instructs the model to stay within the retrieved
// context instead of answering from its own knowledge.
const answerPrompt = `You are a helpful assistant answering questions about company documents.
Answer the question using ONLY the context below. If the context does not
contain the answer, say so.

Context:
%s

Question: %s

Answer:`

// Config holds configuration for the Ollama generator.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Generator produces answers using Ollama's /api/generate endpoint.
type Generator struct {
	client  *http.Client
	baseURL string
	model   string
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewGenerator creates a new Ollama generator.
func NewGenerator(cfg Config) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Generator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Generate answers the question from the provided chunks.
func (g *Generator) Generate(ctx context.Context, question string, chunks []domain.Chunk) (domain.Answer, error) {
	prompt := fmt.Sprintf(answerPrompt, contextBlock(chunks), question)

	reqBody := generateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
		Options: &options{
			Temperature: 0.3,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return domain.Answer{}, fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return domain.Answer{}, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return domain.Answer{}, fmt.Errorf("decode response: %w", err)
	}

	return domain.Answer{
		Text:    strings.TrimSpace(genResp.Response),
		Sources: sourceIDs(chunks),
		Model:   g.model,
	}, nil
}

// Name identifies the generator implementation.
func (g *Generator) Name() string {
	return "ollama/" + g.model
}

// Ping validates the server is reachable via the /api/tags endpoint
// without running inference.
func (g *Generator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: API returned status %d", resp.StatusCode)
	}
	return nil
}

// contextBlock joins chunk contents into a numbered context section.
func contextBlock(chunks []domain.Chunk) string {
	if len(chunks) == 0 {
		return "(no context)"
	}
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] (%s)\n%s", i+1, c.DocumentID, c.Content)
	}
	return b.String()
}

// sourceIDs returns the distinct document IDs behind the chunks, in
// first-seen order.
func sourceIDs(chunks []domain.Chunk) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, c := range chunks {
		if _, ok := seen[c.DocumentID]; ok {
			continue
		}
		seen[c.DocumentID] = struct{}{}
		ids = append(ids, c.DocumentID)
	}
	return ids
}
