// Package access applies role-based visibility rules to retrieval
// results and redacts sensitive terms from answer text.
package access

import (
	"regexp"
	"strings"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// disclaimer is appended to answer text whenever redaction occurred.
const disclaimer = "\n\n[Note: Some sensitive information has been filtered based on your access level.]"

// markerPrefix and markerSuffix wrap the uppercased term in redacted text.
const (
	markerPrefix = "["
	markerSuffix = "_INFO_RESTRICTED]"
)

// termPattern pairs a sensitive term's redaction marker with its
// case-insensitive matcher.
type termPattern struct {
	marker string
	re     *regexp.Regexp
}

// Filter enforces a static access policy. It is constructed once at
// startup and is safe for concurrent use; the policy never changes.
type Filter struct {
	policy   domain.AccessPolicy
	patterns []termPattern
}

// New creates a filter over the given policy. Term matchers are
// compiled once here, in policy order.
func New(policy domain.AccessPolicy) *Filter {
	f := &Filter{policy: policy}
	for _, term := range policy.SensitiveTerms {
		if term == "" {
			continue
		}
		f.patterns = append(f.patterns, termPattern{
			marker: markerPrefix + strings.ToUpper(term) + markerSuffix,
			re:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term)),
		})
	}
	return f
}

// FilterChunks returns the chunks the role may see, preserving order.
// Unknown roles are normalized to the least-privileged role first.
// Roles with the AllDocuments permission see everything; otherwise a
// chunk survives iff the role is on its document's allow-list.
func (f *Filter) FilterChunks(chunks []domain.Chunk, role domain.Role) []domain.Chunk {
	role = domain.ParseRole(string(role))

	if role.Permissions().AllDocuments {
		return chunks
	}

	filtered := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if roleAllowed(f.policy.AllowedRoles(chunk.DocumentID), role) {
			filtered = append(filtered, chunk)
		}
	}
	return filtered
}

// FilterResults applies FilterChunks to ranked search results,
// preserving both order and scores.
func (f *Filter) FilterResults(results []domain.SearchResult, role domain.Role) []domain.SearchResult {
	role = domain.ParseRole(string(role))

	if role.Permissions().AllDocuments {
		return results
	}

	filtered := make([]domain.SearchResult, 0, len(results))
	for _, result := range results {
		if roleAllowed(f.policy.AllowedRoles(result.Chunk.DocumentID), role) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterText redacts sensitive terms from text for roles without the
// SensitiveInfo permission. Matching is case-insensitive and runs
// directly over the input, so multi-byte runes around a term never
// shift the replaced span. When any replacement occurred a disclaimer
// is appended; otherwise the input is returned byte-identical.
func (f *Filter) FilterText(text string, role domain.Role) string {
	role = domain.ParseRole(string(role))

	if role.Permissions().SensitiveInfo {
		return text
	}

	redacted := text
	changed := false
	for _, p := range f.patterns {
		if !p.re.MatchString(redacted) {
			continue
		}
		redacted = p.re.ReplaceAllLiteralString(redacted, p.marker)
		changed = true
	}

	if !changed {
		return text
	}
	return redacted + disclaimer
}

// roleAllowed reports whether role appears in the allow-list.
func roleAllowed(allowed []domain.Role, role domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
