// Package extractive provides a deterministic, offline answer
// generator. It ranks the sentences of the retrieved chunks by
// overlap with the question and returns the best ones verbatim, so
// queries work without any model server running.
package extractive

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
	"github.com/quarry-labs/quarry/internal/vectorizer"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// DefaultMaxSentences bounds the answer length.
const DefaultMaxSentences = 3

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Generator extracts the most relevant sentences from the context.
type Generator struct {
	maxSentences int
	stopwords    map[string]struct{}
}

// NewGenerator creates an extractive generator. maxSentences <= 0
// selects the default.
func NewGenerator(maxSentences int) *Generator {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	return &Generator{
		maxSentences: maxSentences,
		stopwords:    defaultStopwords(),
	}
}

// Generate picks the sentences most related to the question. Scoring
// mixes question-term overlap with overall term frequency, so on a
// vague question the answer still surfaces the central sentences.
func (g *Generator) Generate(_ context.Context, question string, chunks []domain.Chunk) (domain.Answer, error) {
	var sentences []string
	for _, c := range chunks {
		sentences = append(sentences, splitSentences(c.Content)...)
	}
	if len(sentences) == 0 {
		return domain.Answer{
			Text:    "No relevant information found in the retrieved context.",
			Sources: sourceIDs(chunks),
			Model:   g.Name(),
		}, nil
	}

	queryTerms := make(map[string]struct{})
	for _, tok := range g.tokens(question) {
		queryTerms[tok] = struct{}{}
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range g.tokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sent := range sentences {
		toks := g.tokens(sent)
		var score float64
		for _, tok := range toks {
			if _, ok := queryTerms[tok]; ok {
				score += 2
			}
			score += freq[tok]
		}
		if l := float64(len(toks)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = scored{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	n := g.maxSentences
	if n > len(scores) {
		n = len(scores)
	}

	// Keep original order among the selected sentences.
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	parts := make([]string, 0, n)
	for _, idx := range selected {
		parts = append(parts, strings.TrimSpace(sentences[idx]))
	}

	return domain.Answer{
		Text:    strings.Join(parts, " "),
		Sources: sourceIDs(chunks),
		Model:   g.Name(),
	}, nil
}

// Name identifies the generator implementation.
func (g *Generator) Name() string {
	return "extractive"
}

func (g *Generator) tokens(text string) []string {
	var out []string
	for _, tok := range vectorizer.Tokenize(text) {
		if _, ok := g.stopwords[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// splitSentences returns the terminated sentences in text, plus any
// unterminated trailing fragment.
func splitSentences(text string) []string {
	matches := sentencePattern.FindAllStringIndex(text, -1)
	var out []string
	last := 0
	for _, m := range matches {
		out = append(out, text[m[0]:m[1]])
		last = m[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

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

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to",
		"of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were",
		"be", "been", "being", "it", "this", "that", "these", "those", "from",
		"what", "which", "who", "how", "do", "does", "can", "will", "should",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
