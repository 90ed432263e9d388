package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips all markup from free text submitted through the API.
// The underlying policy is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes all markup and returns the remaining text with entities
// decoded, so "R&D" is stored as typed. Output is plain text for JSON, not
// HTML.
func (s *Sanitizer) Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}

// OptionalText is Text for nullable fields; an empty result becomes nil.
func (s *Sanitizer) OptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	clean := s.Text(*input)
	if clean == "" {
		return nil
	}
	return &clean
}
