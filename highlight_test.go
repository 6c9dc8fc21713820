package mdhtml

import (
	"strings"
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"js", "javascript"},
		{"TS", "typescript"},
		{"yml", "yaml"},
		{"Golang", "go"},
		{"  py ", "python"},
		{"rust", "rust"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := normalizeLanguage(tc.in); got != tc.want {
			t.Fatalf("normalizeLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHighlightYAML(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "key with number",
			src:  "count: 42",
			want: `<span class="syntax-key">count</span><span class="syntax-punctuation">:</span> <span class="syntax-number">42</span>`,
		},
		{
			name: "scientific notation",
			src:  "rate: -1.5e-3",
			want: `<span class="syntax-key">rate</span><span class="syntax-punctuation">:</span> <span class="syntax-number">-1.5e-3</span>`,
		},
		{
			name: "boolean is case insensitive",
			src:  "flag: TRUE",
			want: `<span class="syntax-key">flag</span><span class="syntax-punctuation">:</span> <span class="syntax-boolean">TRUE</span>`,
		},
		{
			name: "tilde null",
			src:  "value: ~",
			want: `<span class="syntax-key">value</span><span class="syntax-punctuation">:</span> <span class="syntax-null">~</span>`,
		},
		{
			name: "comment line",
			src:  "  # note",
			want: `  <span class="syntax-comment"># note</span>`,
		},
		{
			name: "array item",
			src:  "- apple",
			want: `<span class="syntax-punctuation">-</span> <span class="syntax-string">apple</span>`,
		},
		{
			name: "block scalar continuation",
			src:  "text: |\n  first\n  second\nnext: 1",
			want: `<span class="syntax-key">text</span><span class="syntax-punctuation">:</span> <span class="syntax-punctuation">|</span>` + "\n" +
				`<span class="syntax-string">  first</span>` + "\n" +
				`<span class="syntax-string">  second</span>` + "\n" +
				`<span class="syntax-key">next</span><span class="syntax-punctuation">:</span> <span class="syntax-number">1</span>`,
		},
		{
			name: "multiline double quoted string",
			src:  "msg: \"hello\nworld\" trailing",
			want: `<span class="syntax-key">msg</span><span class="syntax-punctuation">:</span> <span class="syntax-string">&quot;hello</span>` + "\n" +
				`<span class="syntax-string">world&quot;</span> trailing`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Highlight(tc.src, "yaml"); got != tc.want {
				t.Fatalf("Highlight yaml\n got %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestHighlightYAMLNestedJSON(t *testing.T) {
	t.Parallel()
	src := `data: {"a": 1}`
	collapsed := Highlight(src, "yaml", WithExpanded(func(string) bool { return false }))
	for _, want := range []string{
		`<span class="nested-json">`,
		`<span class="nested-json-toggle">` + "\u25b6" + `</span>`,
		`<span class="nested-json-raw">`,
	} {
		if !strings.Contains(collapsed, want) {
			t.Fatalf("collapsed missing %q:\n%s", want, collapsed)
		}
	}
	expanded := Highlight(src, "yaml", WithExpanded(func(string) bool { return true }))
	for _, want := range []string{
		`<span class="nested-json-toggle">` + "\u25bc" + `</span>`,
		`<span class="nested-json-parsed">`,
		`<span class="syntax-key">&quot;a&quot;</span>`,
	} {
		if !strings.Contains(expanded, want) {
			t.Fatalf("expanded missing %q:\n%s", want, expanded)
		}
	}
	// Without the predicate the value stays an ordinary string scalar.
	plain := Highlight(src, "yaml")
	if strings.Contains(plain, "nested-json") {
		t.Fatalf("nested json should need an expansion predicate:\n%s", plain)
	}
}

func TestHighlightScript(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		contains []string
		omits    []string
	}{
		{
			name: "typescript keywords",
			src:  "interface Point { readonly x: number }",
			contains: []string{
				`<span class="syntax-keyword">interface</span>`,
				`<span class="syntax-keyword">readonly</span>`,
			},
		},
		{
			name:     "keyword must be a whole word",
			src:      "const typeOfThing = interfaceFoo",
			contains: []string{`<span class="syntax-keyword">const</span>`},
			omits: []string{
				`<span class="syntax-keyword">type</span>`,
				`<span class="syntax-keyword">interface</span>`,
			},
		},
		{
			name:     "line comment",
			src:      "let x = 1 // note",
			contains: []string{`<span class="syntax-comment">// note</span>`},
		},
		{
			name:     "block comment",
			src:      "/* multi\nline */ let y",
			contains: []string{`<span class="syntax-comment">/* multi`},
		},
		{
			name:     "template literal",
			src:      "const s = `tpl ${x}`",
			contains: []string{`<span class="syntax-template">`},
		},
		{
			name: "json literals",
			src:  `{"name": "v", "count": 3, "on": true, "none": null}`,
			contains: []string{
				`<span class="syntax-key">&quot;name&quot;</span>`,
				`<span class="syntax-string">&quot;v&quot;</span>`,
				`<span class="syntax-number">3</span>`,
				`<span class="syntax-boolean">true</span>`,
				`<span class="syntax-null">null</span>`,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Highlight(tc.src, "ts")
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("missing %q in:\n%s", want, got)
				}
			}
			for _, omit := range tc.omits {
				if strings.Contains(got, omit) {
					t.Fatalf("unexpected %q in:\n%s", omit, got)
				}
			}
		})
	}
}

func TestHighlightFallbacks(t *testing.T) {
	t.Parallel()
	// Unknown languages and empty hints degrade to escaped plain text.
	if got := Highlight("<b>1</b>", ""); got != "&lt;b&gt;1&lt;/b&gt;" {
		t.Fatalf("empty language: got %q", got)
	}
	if got := Highlight("plain words", "no-such-language"); got != "plain words" {
		t.Fatalf("unknown language: got %q", got)
	}
	// Known non-native languages route through the chroma lexers.
	got := Highlight("func main() {}", "go")
	if !strings.Contains(got, `<span class="syntax-keyword">func</span>`) {
		t.Fatalf("chroma fallback missing keyword span:\n%s", got)
	}
}
