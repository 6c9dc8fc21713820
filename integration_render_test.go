package mdhtml

import (
	"os"
	"strings"
	"testing"
)

func readSample(t testing.TB) string {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestIntegrationRenderSample(t *testing.T) {
	src := readSample(t)
	out := ToHTML(src)

	contains := []string{
		"<h1>Release Notes</h1>",
		"<h1>Setext Section</h1>",
		"<h2>Features</h2>",
		"<em>emphasis</em>",
		"<strong>strong</strong>",
		"<strong><em>both</em></strong>",
		"<code>inline code</code>",
		`<ul class="task-list">`,
		`<input type="checkbox" checked disabled /> Shipped highlighting`,
		"<li>YAML tokenizer</li>",
		`<th style="text-align: left">Name</th>`,
		`<th style="text-align: right">Count</th>`,
		"<th>Share</th>",
		"<dt>Term</dt>",
		"<dd>Definition two</dd>",
		"<blockquote>",
		`<a href="https://example.com/guide" title="The Guide">docs</a>`,
		`<span class="color-swatch" style="background-color: #ff8800">`,
		`<a href="https://example.com">https://example.com</a>`,
		`<a href="mailto:team@example.com">team@example.com</a>`,
		`<a class="footnote-ref" href="#fn-src" id="fnref-src">[1]</a>`,
		`<pre><code class="language-yaml">`,
		`<span class="syntax-key">name</span>`,
		`<span class="syntax-keyword">interface</span>`,
		"<hr />",
		`<div class="footnotes">`,
		"Primary source material.",
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in rendered output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "title: Release Notes") {
		t.Fatalf("front matter leaked into output:\n%s", out)
	}
}

// TestRoundTripSemantics renders Markdown to HTML, converts the HTML back,
// and re-renders. The two HTML documents must agree on structure even when
// whitespace differs.
func TestRoundTripSemantics(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"",
		"A paragraph with **strong** and *em*.",
		"",
		"- one",
		"- two",
		"",
		"| A | B |",
		"|---|---|",
		"| 1 | 2 |",
	}, "\n")
	first := ToHTML(src)
	md, err := ConvertHTML(first, WithWrap(0))
	if err != nil {
		t.Fatalf("ConvertHTML: %v", err)
	}
	second := ToHTML(md)
	for _, tag := range []string{"<h1>", "<strong>", "<em>", "<ul>", "<li>", "<table>", "<td>1</td>"} {
		if strings.Count(first, tag) != strings.Count(second, tag) {
			t.Fatalf("round trip changed %q count\nfirst:\n%s\nsecond:\n%s", tag, first, second)
		}
	}
}
