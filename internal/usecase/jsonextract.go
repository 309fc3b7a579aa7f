package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/resumind/interview-insight/internal/domain"
)

// Providers routinely wrap the requested JSON in markdown fences or prose.
// extractJSONObject locates the first balanced JSON object in s and returns
// it; if none is found the input is returned trimmed.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	if start == -1 {
		return s
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s[start:]
}

var trailingCommaRE = regexp.MustCompile(`,(\s*[}\]])`)

// decodeJSON extracts the JSON object embedded in a completion and unmarshals
// it into v. A second attempt strips trailing commas, the most common
// malformation seen from smaller models.
func decodeJSON(s string, v any) error {
	obj := extractJSONObject(s)
	if err := json.Unmarshal([]byte(obj), v); err == nil {
		return nil
	}
	fixed := trailingCommaRE.ReplaceAllString(obj, "$1")
	if err := json.Unmarshal([]byte(fixed), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	return nil
}
