// Package vectorizer implements the TF-IDF vectorization model used by
// the retrieval index.
package vectorizer

import (
	"math"
	"regexp"
	"strings"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// tokenPattern matches maximal runs of alphanumeric/underscore
// characters, the word-boundary semantics of the vocabulary.
var tokenPattern = regexp.MustCompile(`\w+`)

// TFIDF is a term-frequency/inverse-document-frequency vectorizer.
// Fit builds a vocabulary and IDF table over a corpus; Transform maps
// arbitrary text into a sparse vector under that frozen vocabulary.
// A fitted model is immutable and safe for concurrent Transform calls.
type TFIDF struct {
	vocabulary map[string]int
	idf        map[string]float64
	fitted     bool
}

// New creates an unfitted TF-IDF vectorizer.
func New() *TFIDF {
	return &TFIDF{
		vocabulary: make(map[string]int),
		idf:        make(map[string]float64),
	}
}

// Tokenize lowercases text and extracts word tokens. Text with no
// word characters yields an empty token sequence.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Fitted reports whether Fit has run.
func (t *TFIDF) Fitted() bool { return t.fitted }

// Dimension returns the vocabulary size, the length of every vector
// this model produces.
func (t *TFIDF) Dimension() int { return len(t.vocabulary) }

// Fit builds the vocabulary and IDF table from the corpus. Column
// assignment is arbitrary but fixed for the life of the fitted model.
// IDF(term) = ln(N / d) where N is the corpus size and d the number of
// corpus members containing the term; no smoothing is applied.
func (t *TFIDF) Fit(corpus []string) {
	vocabulary := make(map[string]int)
	df := make(map[string]int)

	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(text) {
			if _, ok := vocabulary[tok]; !ok {
				vocabulary[tok] = len(vocabulary)
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	idf := make(map[string]float64, len(df))
	n := float64(len(corpus))
	for term, d := range df {
		idf[term] = math.Log(n / float64(d))
	}

	t.vocabulary = vocabulary
	t.idf = idf
	t.fitted = true
}

// Transform maps text to a TF-IDF vector of Dimension length.
// TF(token) = count / total tokens in the text; positions for tokens
// outside the vocabulary stay zero, and text that tokenizes to nothing
// yields an all-zero vector. Transform never mutates the model.
func (t *TFIDF) Transform(text string) ([]float64, error) {
	if !t.fitted {
		return nil, domain.ErrModelNotFitted
	}

	vec := make([]float64, len(t.vocabulary))

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vec, nil
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	total := float64(len(tokens))
	for tok, count := range counts {
		col, ok := t.vocabulary[tok]
		if !ok {
			continue
		}
		tf := float64(count) / total
		vec[col] = tf * t.idf[tok]
	}

	return vec, nil
}

// FitTransform fits the model on the corpus and transforms each member.
// It is exactly Fit followed by independent Transform calls.
func (t *TFIDF) FitTransform(corpus []string) ([][]float64, error) {
	t.Fit(corpus)

	vectors := make([][]float64, len(corpus))
	for i, text := range corpus {
		vec, err := t.Transform(text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// State exports the fitted model for persistence. The returned maps
// are copies; mutating them does not affect the model.
func (t *TFIDF) State() (vocabulary map[string]int, idf map[string]float64, fitted bool) {
	vocabulary = make(map[string]int, len(t.vocabulary))
	for term, col := range t.vocabulary {
		vocabulary[term] = col
	}
	idf = make(map[string]float64, len(t.idf))
	for term, score := range t.idf {
		idf[term] = score
	}
	return vocabulary, idf, t.fitted
}

// Restore rebuilds a vectorizer from persisted state.
func Restore(vocabulary map[string]int, idf map[string]float64, fitted bool) *TFIDF {
	t := New()
	for term, col := range vocabulary {
		t.vocabulary[term] = col
	}
	for term, score := range idf {
		t.idf[term] = score
	}
	t.fitted = fitted
	return t
}
