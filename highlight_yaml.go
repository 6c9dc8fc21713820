package mdhtml

import (
	"regexp"
	"strings"
)

// highlightYAML classifies YAML text line by line. Block scalars and
// multi-line quoted strings carry state across lines; everything else is
// decided per line. The expanded predicate, when non-nil, enables nested
// JSON detection on scalar values.
func highlightYAML(text string, expanded ExpandedFunc) string {
	var st yamlState
	st.expanded = expanded
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for idx, line := range lines {
		if idx > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(st.renderLine(line))
	}
	return b.String()
}

type yamlState struct {
	expanded ExpandedFunc

	// blockScalar is set after a |, |- or > indicator; continuation lines
	// stay strings until indentation falls back to the indicator's level.
	blockScalar  bool
	scalarIndent int

	// multiline is set when a quoted value has no closing quote on its
	// line; quote holds the delimiter to look for.
	multiline bool
	quote     byte
}

var (
	yamlKeyRe   = regexp.MustCompile(`^(\s*)([^:#\s][^:]*):(\s*)(.*)$`)
	yamlItemRe  = regexp.MustCompile(`^(\s*)- (.*)$`)
	yamlNumRe   = regexp.MustCompile(`^[+-]?\d+(\.\d+)?([eE][+-]?\d+)?$`)
	yamlBlockRe = regexp.MustCompile(`^(\|[+-]?|>[+-]?)$`)
)

func (st *yamlState) renderLine(line string) string {
	if st.blockScalar {
		if strings.TrimSpace(line) == "" || indentOf(line) > st.scalarIndent {
			return span("string", line)
		}
		st.blockScalar = false
	}
	if st.multiline {
		pos := closingQuotePos(line, st.quote, 0)
		if pos < 0 {
			return span("string", line)
		}
		st.multiline = false
		return span("string", line[:pos+1]) + escapeHTML(line[pos+1:])
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		ws := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		return ws + span("comment", strings.TrimLeft(line, " \t"))
	}
	if m := yamlItemRe.FindStringSubmatch(line); m != nil {
		return m[1] + span("punctuation", "-") + " " + st.renderValue(m[2], indentOf(line))
	}
	if m := yamlKeyRe.FindStringSubmatch(line); m != nil {
		out := m[1] + span("key", m[2]) + span("punctuation", ":") + m[3]
		return out + st.renderValue(m[4], indentOf(line))
	}
	return escapeHTML(line)
}

// renderValue classifies a scalar value. indent is the indentation of the
// owning line, used as the block scalar threshold.
func (st *yamlState) renderValue(value string, indent int) string {
	if value == "" {
		return ""
	}
	if yamlBlockRe.MatchString(value) {
		st.blockScalar = true
		st.scalarIndent = indent
		return span("punctuation", value)
	}
	if st.expanded != nil {
		if parsed, ok := ParseNestedJSON(value); ok {
			return renderNestedJSON(value, parsed, st.expanded)
		}
	}
	switch {
	case yamlNumRe.MatchString(value):
		return span("number", value)
	case strings.EqualFold(value, "true"), strings.EqualFold(value, "false"):
		return span("boolean", value)
	case strings.EqualFold(value, "null"), value == "~":
		return span("null", value)
	}
	if value[0] == '"' || value[0] == '\'' {
		if closingQuotePos(value, value[0], 1) < 0 {
			st.multiline = true
			st.quote = value[0]
		}
		return span("string", value)
	}
	return span("string", value)
}

// closingQuotePos finds the first unescaped occurrence of quote at or
// after start, or -1.
func closingQuotePos(s string, quote byte, start int) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}
