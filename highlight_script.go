package mdhtml

import "strings"

// scriptKeywords covers the shared JavaScript keyword set plus the
// TypeScript type-system keywords. Matching is whole-word only: the
// scanner consumes full identifiers before the lookup, so a keyword never
// matches inside a longer name.
var scriptKeywords = map[string]struct{}{}

func init() {
	words := []string{
		"abstract", "any", "as", "asserts", "async", "await", "break",
		"case", "catch", "class", "const", "continue", "debugger",
		"declare", "default", "delete", "do", "else", "enum", "export",
		"extends", "finally", "for", "from", "function", "get", "if",
		"implements", "import", "in", "infer", "instanceof", "interface",
		"is", "keyof", "let", "namespace", "never", "new", "of",
		"override", "private", "protected", "public", "readonly",
		"return", "satisfies", "set", "static", "super", "switch",
		"this", "throw", "try", "type", "typeof", "unknown", "var",
		"void", "while", "yield",
	}
	for _, w := range words {
		scriptKeywords[w] = struct{}{}
	}
}

// highlightScript tokenizes TypeScript, JavaScript and JSON text into
// classified spans. A string literal directly followed by a colon is
// classified as a key, which covers JSON object keys.
func highlightScript(src string) string {
	var b strings.Builder
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			b.WriteString(escapeHTML(plain.String()))
			plain.Reset()
		}
	}
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == '/' && i+1 < n && src[i+1] == '/':
			flush()
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = n - i
			}
			b.WriteString(span("comment", src[i:i+end]))
			i += end
		case c == '/' && i+1 < n && src[i+1] == '*':
			flush()
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				b.WriteString(span("comment", src[i:]))
				i = n
			} else {
				b.WriteString(span("comment", src[i:i+end+4]))
				i += end + 4
			}
		case c == '"' || c == '\'':
			flush()
			end := closingQuotePos(src, c, i+1)
			if end < 0 {
				b.WriteString(span("string", src[i:]))
				i = n
			} else {
				class := "string"
				if isJSONKey(src, end+1) {
					class = "key"
				}
				b.WriteString(span(class, src[i:end+1]))
				i = end + 1
			}
		case c == '`':
			flush()
			end := closingQuotePos(src, '`', i+1)
			if end < 0 {
				b.WriteString(span("template", src[i:]))
				i = n
			} else {
				b.WriteString(span("template", src[i:end+1]))
				i = end + 1
			}
		case isDigit(c):
			flush()
			j := i
			for j < n && isNumberByte(src[j]) {
				j++
			}
			b.WriteString(span("number", src[i:j]))
			i = j
		case isIdentStart(c):
			flush()
			j := i
			for j < n && isIdentByte(src[j]) {
				j++
			}
			word := src[i:j]
			switch {
			case word == "true" || word == "false":
				b.WriteString(span("boolean", word))
			case word == "null" || word == "undefined":
				b.WriteString(span("null", word))
			default:
				if _, ok := scriptKeywords[word]; ok {
					b.WriteString(span("keyword", word))
				} else {
					plain.WriteString(word)
				}
			}
			i = j
		case isScriptPunct(c):
			flush()
			b.WriteString(span("punctuation", string(c)))
			i++
		default:
			plain.WriteByte(c)
			i++
		}
	}
	flush()
	return b.String()
}

// isJSONKey reports whether the next non-space byte at or after pos is a
// colon, marking the preceding string literal as an object key.
func isJSONKey(src string, pos int) bool {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t':
			pos++
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '.' || c == '_' || c == 'x' || c == 'X' ||
		c == 'e' || c == 'E' || c == 'o' || c == 'O' || c == 'b' || c == 'B' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isScriptPunct(c byte) bool {
	switch c {
	case '{', '}', '[', ']', '(', ')', ';', ',', '.', ':', '?', '=', '+',
		'-', '*', '/', '%', '&', '|', '!', '^', '~', '<', '>':
		return true
	}
	return false
}
