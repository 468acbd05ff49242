// Package uri canonicalizes concept and relation references into the
// hierarchical URI form used across the knowledge graph: /c/{language}/{term}
// for concepts and /r/{Name} for relations. All functions are pure and
// idempotent.
package uri

import (
	"strings"
	"unicode"

	"github.com/semagraph/cognet/pkg/apperror"
)

// DefaultLanguage is used when a bare term is normalized without an
// explicit language.
const DefaultLanguage = "en"

const (
	conceptPrefix  = "/c/"
	relationPrefix = "/r/"
)

// NormalizeConcept canonicalizes a concept reference. Input already carrying
// a /c/ or /r/ prefix passes through unchanged; a bare term is lowercased,
// whitespace runs become underscores, and the result is prefixed with
// /c/{language}/. An empty language selects DefaultLanguage.
func NormalizeConcept(input, language string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", apperror.InvalidURI(input)
	}

	if hasURIPrefix(input) {
		if err := validateURI(input); err != nil {
			return "", err
		}
		return input, nil
	}
	if strings.Contains(input, "/") {
		return "", apperror.InvalidURI(input)
	}

	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	if !validLanguage(language) {
		return "", apperror.InvalidURI(language)
	}

	term := strings.Join(strings.Fields(strings.ToLower(input)), "_")
	if !validSegment(term) {
		return "", apperror.InvalidURI(input)
	}

	return conceptPrefix + language + "/" + term, nil
}

// NormalizeRelation canonicalizes a relation reference. Input already
// carrying a /c/ or /r/ prefix passes through unchanged; a bare name keeps
// its capitalization and is prefixed with /r/.
func NormalizeRelation(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", apperror.InvalidURI(input)
	}

	if hasURIPrefix(input) {
		if err := validateURI(input); err != nil {
			return "", err
		}
		return input, nil
	}
	if strings.Contains(input, "/") {
		return "", apperror.InvalidURI(input)
	}
	if !validSegment(input) {
		return "", apperror.InvalidURI(input)
	}

	return relationPrefix + input, nil
}

// IsConceptURI reports whether s carries the concept prefix.
func IsConceptURI(s string) bool {
	return strings.HasPrefix(s, conceptPrefix)
}

// IsRelationURI reports whether s carries the relation prefix.
func IsRelationURI(s string) bool {
	return strings.HasPrefix(s, relationPrefix)
}

// Split returns the non-empty path segments of a URI, e.g.
// /c/en/dog/n -> [c en dog n].
func Split(u string) []string {
	parts := strings.Split(u, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Language returns the language tag of a concept URI, or "" when absent.
func Language(conceptURI string) string {
	segments := Split(conceptURI)
	if len(segments) < 2 || segments[0] != "c" {
		return ""
	}
	return segments[1]
}

// Term returns the term segment of a concept URI, or "" when absent.
func Term(conceptURI string) string {
	segments := Split(conceptURI)
	if len(segments) < 3 || segments[0] != "c" {
		return ""
	}
	return segments[2]
}

// Label returns a display form of a URI's main segment with underscores
// replaced by spaces. Works for both concept and relation URIs.
func Label(u string) string {
	segments := Split(u)
	if len(segments) == 0 {
		return ""
	}
	switch segments[0] {
	case "c":
		if len(segments) < 3 {
			return ""
		}
		return strings.ReplaceAll(segments[2], "_", " ")
	case "r":
		if len(segments) < 2 {
			return ""
		}
		return segments[1]
	default:
		return ""
	}
}

func hasURIPrefix(s string) bool {
	return strings.HasPrefix(s, conceptPrefix) || strings.HasPrefix(s, relationPrefix)
}

// validateURI checks every path segment of an already-prefixed URI. The
// language segment of a concept URI must be a lowercase tag. A single
// trailing slash is tolerated since assertion URIs quote inner URIs that way.
func validateURI(u string) error {
	trimmed := strings.TrimSuffix(u, "/")
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		if i == 0 {
			// Leading slash produces an empty first element.
			continue
		}
		if i == 2 && segments[1] == "c" {
			if !validLanguage(segment) {
				return apperror.InvalidURI(u)
			}
			continue
		}
		if !validSegment(segment) {
			return apperror.InvalidURI(u)
		}
	}
	return nil
}

func validSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '_', '-', '.', '\'', '+':
			continue
		}
		return false
	}
	return true
}

func validLanguage(language string) bool {
	if language == "" {
		return false
	}
	for _, r := range language {
		if !unicode.IsLower(r) && r != '-' {
			return false
		}
	}
	return true
}
