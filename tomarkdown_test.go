package mdhtml

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, src string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

func TestHeadingConverterRoundTrip(t *testing.T) {
	t.Parallel()
	for level := 1; level <= 6; level++ {
		prefix := strings.Repeat("#", level)
		rendered := ToHTML(prefix + "  Some  Title ")
		node := findElement(parseFragment(t, rendered), fmt.Sprintf("h%d", level))
		if node == nil {
			t.Fatalf("level %d: no heading element in %q", level, rendered)
		}
		got := FromHTML(node)
		want := prefix + " Some  Title\n\n"
		if got != want {
			t.Fatalf("level %d: got %q want %q", level, got, want)
		}
	}
}

func TestHeadingConverterEdgeCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		tag  string
		want string
	}{
		{
			name: "nested inline markup flattens to text",
			src:  "<h2>Hello <em>big</em> <code>world</code></h2>",
			tag:  "h2",
			want: "## Hello big world\n\n",
		},
		{
			name: "whitespace only content yields nothing",
			src:  "<h3>   </h3>",
			tag:  "h3",
			want: "",
		},
		{
			name: "empty heading yields nothing",
			src:  "<h1></h1>",
			tag:  "h1",
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			node := findElement(parseFragment(t, tc.src), tc.tag)
			if node == nil {
				t.Fatalf("no %s element in %q", tc.tag, tc.src)
			}
			if got := FromHTML(node); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestConvertHTML(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		opts []Option
		want string
	}{
		{
			name: "paragraph with inline markup",
			src:  `<p>Plain <strong>bold</strong> <em>italic</em> <code>code</code> <a href="https://example.com">link</a></p>`,
			want: "Plain **bold** *italic* `code` [link](https://example.com)\n",
		},
		{
			name: "unsupported elements convert to nothing",
			src:  `<video src="x.mp4"></video><p>kept</p>`,
			want: "kept\n",
		},
		{
			name: "code block with language class",
			src:  `<pre><code class="language-go">package main</code></pre>`,
			want: "```go\npackage main\n```\n",
		},
		{
			name: "unordered list with task items",
			src:  `<ul class="task-list"><li><input type="checkbox" disabled /> Todo</li><li><input type="checkbox" checked disabled /> Done</li></ul>`,
			want: "- [ ] Todo\n- [x] Done\n",
		},
		{
			name: "nested list indents children",
			src:  "<ul><li>Parent<ol><li>Child</li></ol></li></ul>",
			want: "- Parent\n  1. Child\n",
		},
		{
			name: "ordered list respects start",
			src:  `<ol start="3"><li>three</li><li>four</li></ol>`,
			want: "3. three\n4. four\n",
		},
		{
			name: "table with alignment styles",
			src: `<table><thead><tr><th style="text-align: right">N</th><th>T</th></tr></thead>` +
				`<tbody><tr><td style="text-align: right">1</td><td>a</td></tr></tbody></table>`,
			want: "| N | T |\n| ---: | --- |\n| 1 | a |\n",
		},
		{
			name: "blockquote prefixes lines",
			src:  "<blockquote><p>one</p><p>two</p></blockquote>",
			want: "> one\n>\n> two\n",
		},
		{
			name: "definition list",
			src:  "<dl><dt>Term</dt><dd>First</dd><dd>Second</dd></dl>",
			want: "Term\n: First\n: Second\n",
		},
		{
			name: "horizontal rule",
			src:  "<p>a</p><hr /><p>b</p>",
			want: "a\n\n---\n\nb\n",
		},
		{
			name: "wrap option reflows paragraphs",
			src:  "<p>alpha beta gamma delta epsilon</p>",
			opts: []Option{WithWrap(12)},
			want: "alpha beta\ngamma delta\nepsilon\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ConvertHTML(tc.src, tc.opts...)
			if err != nil {
				t.Fatalf("ConvertHTML: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
