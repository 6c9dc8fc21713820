package mdhtml

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// languageAliases normalizes common language hints onto canonical names.
var languageAliases = map[string]string{
	"js":      "javascript",
	"jsx":     "javascript",
	"mjs":     "javascript",
	"cjs":     "javascript",
	"node":    "javascript",
	"ts":      "typescript",
	"tsx":     "typescript",
	"yml":     "yaml",
	"json5":   "json",
	"jsonc":   "json",
	"sh":      "bash",
	"shell":   "bash",
	"zsh":     "bash",
	"golang":  "go",
	"py":      "python",
	"rb":      "ruby",
	"rs":      "rust",
	"kt":      "kotlin",
	"cs":      "csharp",
	"c++":     "cpp",
	"md":      "markdown",
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if canonical, ok := languageAliases[lang]; ok {
		return canonical
	}
	return lang
}

// Highlight classifies code into HTML spans carrying the fixed syntax-*
// classes. YAML and the TypeScript/JavaScript/JSON family use the native
// tokenizers; other known languages fall back to chroma lexers mapped onto
// the same class vocabulary; unknown languages render as escaped plain
// text. WithExpanded supplies the nested JSON expansion predicate consumed
// by the YAML tokenizer.
func Highlight(code, lang string, opts ...Option) string {
	cfg := applyOptions(opts)
	switch normalized := normalizeLanguage(lang); normalized {
	case "":
		return escapeHTML(code)
	case "yaml":
		return highlightYAML(code, cfg.expanded)
	case "javascript", "typescript", "json":
		return highlightScript(code)
	default:
		return highlightChroma(code, normalized)
	}
}

// span wraps text in one classified syntax span. The class must belong to
// the fixed vocabulary: keyword, string, number, boolean, null, comment,
// punctuation, key, template.
func span(class, text string) string {
	if text == "" {
		return ""
	}
	return `<span class="syntax-` + class + `">` + escapeHTML(text) + `</span>`
}

func highlightChroma(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return escapeHTML(code)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return escapeHTML(code)
	}
	var b strings.Builder
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		if class := chromaClass(tok.Type); class != "" {
			b.WriteString(span(class, tok.Value))
		} else {
			b.WriteString(escapeHTML(tok.Value))
		}
	}
	return b.String()
}

// chromaClass maps chroma token types onto the syntax-* vocabulary. Types
// without a sensible mapping render unclassified.
func chromaClass(t chroma.TokenType) string {
	switch {
	case t == chroma.KeywordConstant:
		return "boolean"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t == chroma.LiteralStringBacktick:
		return "template"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InCategory(chroma.Punctuation), t.InCategory(chroma.Operator):
		return "punctuation"
	case t == chroma.NameTag, t == chroma.NameAttribute:
		return "key"
	default:
		return ""
	}
}
