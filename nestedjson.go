package mdhtml

import (
	"encoding/json"
	"strings"
)

// maxNestedJSONLen caps the input size of a nested JSON parse attempt.
// Anything longer is treated as not-JSON without parsing.
const maxNestedJSONLen = 100000

// IsNestedJSON reports whether s is a JSON object or array, optionally
// wrapped in single or double quotes. Primitives, the null literal,
// malformed JSON, blank input and oversized input all report false.
func IsNestedJSON(s string) bool {
	_, ok := ParseNestedJSON(s)
	return ok
}

// ParseNestedJSON parses a nested JSON candidate. It only accepts values
// whose top-level parse result is an object or array; everything else
// returns (nil, false). A cheap size and first-character check runs before
// the full parse.
func ParseNestedJSON(s string) (any, bool) {
	if len(s) > maxNestedJSONLen {
		return nil, false
	}
	candidate := strings.TrimSpace(s)
	if candidate == "" {
		return nil, false
	}
	candidate = unwrapQuotes(candidate)
	if candidate == "" {
		return nil, false
	}
	switch candidate[0] {
	case '{', '[':
	default:
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}

// unwrapQuotes strips one matching pair of single or double quotes so that
// a quoted YAML scalar holding JSON is still detected.
func unwrapQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

const (
	toggleExpanded  = "▼" // down triangle
	toggleCollapsed = "▶" // right triangle
)

// renderNestedJSON emits the toggle-aware markup for a detected nested JSON
// value. The expansion predicate chooses between the parsed view and the
// raw view; a nil predicate always renders raw.
func renderNestedJSON(raw string, parsed any, expanded ExpandedFunc) string {
	var b strings.Builder
	b.WriteString(`<span class="nested-json">`)
	if expanded != nil && expanded(raw) {
		b.WriteString(`<span class="nested-json-toggle">` + toggleExpanded + `</span>`)
		b.WriteString(`<span class="nested-json-parsed">`)
		b.WriteString(highlightScript(prettyJSON(parsed, raw)))
		b.WriteString(`</span>`)
	} else {
		b.WriteString(`<span class="nested-json-toggle">` + toggleCollapsed + `</span>`)
		b.WriteString(`<span class="nested-json-raw">` + escapeHTML(raw) + `</span>`)
	}
	b.WriteString(`</span>`)
	return b.String()
}

func prettyJSON(v any, fallback string) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fallback
	}
	return string(out)
}
