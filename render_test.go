package mdhtml

import (
	"strings"
	"sync"
	"testing"
)

func TestToHTMLScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		contains []string
		omits    []string
	}{
		{
			name: "task list",
			src:  "- [ ] Todo\n- [x] Done",
			contains: []string{
				`<ul class="task-list">`,
				`<li><input type="checkbox" disabled /> Todo</li>`,
				`<li><input type="checkbox" checked disabled /> Done</li>`,
			},
		},
		{
			name: "plain table has no style attributes",
			src:  "| A | B |\n|---|---|\n| 1 | 2 |",
			contains: []string{
				"<table>", "<thead>", "<th>A</th><th>B</th>",
				"<tbody>", "<td>1</td><td>2</td>",
			},
			omits: []string{"style="},
		},
		{
			name: "aligned table styles only aligned columns",
			src:  "| L | N |\n|:---|---|\n| a | b |",
			contains: []string{
				`<th style="text-align: left">L</th><th>N</th>`,
				`<td style="text-align: left">a</td><td>b</td>`,
			},
		},
		{
			name:     "definition list",
			src:      "Term\n: Definition",
			contains: []string{"<dl>", "<dt>Term</dt>", "<dd>Definition</dd>", "</dl>"},
		},
		{
			name: "nested list",
			src:  "- Parent\n  1. Child",
			contains: []string{
				"<ul>", "<li>Parent\n<ol>", "<li>Child</li>", "</ol>\n</li>",
			},
		},
		{
			name:     "ordered list start attribute only when not one",
			src:      "5. five\n6. six",
			contains: []string{`<ol start="5">`},
		},
		{
			name:     "ordered list starting at one",
			src:      "1. one\n2. two",
			contains: []string{"<ol>"},
			omits:    []string{"start="},
		},
		{
			name:     "blockquote",
			src:      "> # Heading\n> body",
			contains: []string{"<blockquote>", "<h1>Heading</h1>", "<p>body</p>", "</blockquote>"},
		},
		{
			name:     "horizontal rule",
			src:      "above\n\n---\n\nbelow",
			contains: []string{"<p>above</p>", "<hr />", "<p>below</p>"},
		},
		{
			name:     "code block highlights known language",
			src:      "```yaml\nkey: true\n```",
			contains: []string{`<pre><code class="language-yaml">`, `<span class="syntax-key">key</span>`},
		},
		{
			name:     "code block without language is escaped verbatim",
			src:      "```\n<b>&</b>\n```",
			contains: []string{"<pre><code>&lt;b&gt;&amp;&lt;/b&gt;</code></pre>"},
		},
		{
			name:     "no footnote section without definitions",
			src:      "Just text.",
			contains: []string{"<p>Just text.</p>"},
			omits:    []string{"footnotes"},
		},
		{
			name: "front matter is skipped",
			src:  "---\ntitle: Post\n---\n\n# Hello",
			contains: []string{
				"<h1>Hello</h1>",
			},
			omits: []string{"title: Post"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ToHTML(tc.src)
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

func TestFootnoteListSortedByDefinitionOrder(t *testing.T) {
	t.Parallel()
	// The text references [^2] before [^1]; [^1] is defined first and must
	// still list first.
	src := "See [^2] and then [^1].\n\n[^1]: First defined\n[^2]: Second defined"
	got := ToHTML(src)
	first := strings.Index(got, `id="fn-1"`)
	second := strings.Index(got, `id="fn-2"`)
	if first < 0 || second < 0 {
		t.Fatalf("missing footnote items in:\n%s", got)
	}
	if first > second {
		t.Fatalf("footnote order wrong (fn-1 at %d, fn-2 at %d):\n%s", first, second, got)
	}
	if !strings.Contains(got, `id="fnref-2">[2]</a>`) {
		t.Fatalf("reference [^2] should carry index 2:\n%s", got)
	}
}

func TestConcurrentParsesStayIsolated(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				got := ToHTML("A[^x].\n\n[^x]: even note")
				if !strings.Contains(got, "even note") || strings.Contains(got, "odd note") {
					t.Errorf("even parse contaminated:\n%s", got)
				}
				return
			}
			got := ToHTML("B[^x].\n\n[^x]: odd note")
			if !strings.Contains(got, "odd note") || strings.Contains(got, "even note") {
				t.Errorf("odd parse contaminated:\n%s", got)
			}
		}(i)
	}
	wg.Wait()
}
