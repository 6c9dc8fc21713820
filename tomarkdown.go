package mdhtml

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
)

// tagConverter turns one element into canonical Markdown text. Unsupported
// elements and empty content yield an empty string.
type tagConverter func(n *html.Node, cfg config) string

// tagConverters dispatches block-level conversion per element tag. Built in
// init because the converters recurse through FromHTML.
var tagConverters map[string]tagConverter

func init() {
	tagConverters = map[string]tagConverter{
		"h1":         convertHeading,
		"h2":         convertHeading,
		"h3":         convertHeading,
		"h4":         convertHeading,
		"h5":         convertHeading,
		"h6":         convertHeading,
		"p":          convertParagraph,
		"ul":         convertTopList,
		"ol":         convertTopList,
		"pre":        convertPre,
		"blockquote": convertBlockquote,
		"table":      convertTable,
		"hr":         convertRule,
		"dl":         convertDefList,
		"div":        convertContainer,
		"section":    convertContainer,
		"article":    convertContainer,
		"body":       convertContainer,
	}
}

// FromHTML converts an element tree to canonical Markdown. Unsupported
// elements convert to nothing rather than failing.
func FromHTML(n *html.Node, opts ...Option) string {
	return convertNode(n, applyOptions(opts))
}

// ConvertHTML parses an HTML document or fragment and converts its body to
// Markdown.
func ConvertHTML(src string, opts ...Option) (string, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	cfg := applyOptions(opts)
	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	out := convertChildren(body, cfg)
	return strings.TrimRight(out, "\n") + "\n", nil
}

func convertNode(n *html.Node, cfg config) string {
	switch n.Type {
	case html.DocumentNode:
		return convertChildren(n, cfg)
	case html.ElementNode:
		if conv, ok := tagConverters[n.Data]; ok {
			return conv(n, cfg)
		}
		return ""
	default:
		return ""
	}
}

func convertChildren(n *html.Node, cfg config) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(convertNode(c, cfg))
	}
	return b.String()
}

func convertContainer(n *html.Node, cfg config) string {
	return convertChildren(n, cfg)
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// convertHeading flattens the heading's text content, discarding nested
// inline markup, and always terminates with exactly two newlines.
func convertHeading(n *html.Node, _ config) string {
	level := headingLevel(n.Data)
	if level == 0 {
		return ""
	}
	text := strings.TrimSpace(flattenText(n))
	if text == "" {
		return ""
	}
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

func convertParagraph(n *html.Node, cfg config) string {
	text := strings.TrimSpace(inlineMarkdown(n))
	if text == "" {
		return ""
	}
	if cfg.wrap > 0 {
		text = wordwrap.String(text, cfg.wrap)
	}
	return text + "\n\n"
}

func convertRule(_ *html.Node, _ config) string {
	return "---\n\n"
}

func convertPre(n *html.Node, _ config) string {
	code := findElement(n, "code")
	if code == nil {
		code = n
	}
	lang := ""
	for _, class := range strings.Fields(attrValue(code, "class")) {
		if rest, ok := strings.CutPrefix(class, "language-"); ok {
			lang = rest
			break
		}
	}
	text := strings.TrimRight(flattenText(code), "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return "```" + lang + "\n" + text + "\n```\n\n"
}

func convertBlockquote(n *html.Node, cfg config) string {
	inner := strings.TrimRight(convertChildren(n, cfg), "\n")
	if strings.TrimSpace(inner) == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(inner, "\n") {
		if line == "" {
			b.WriteString(">\n")
			continue
		}
		b.WriteString("> " + line + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func convertTopList(n *html.Node, cfg config) string {
	out := convertList(n, cfg, 0)
	if out == "" {
		return ""
	}
	return out + "\n"
}

func convertList(n *html.Node, cfg config, depth int) string {
	ordered := n.Data == "ol"
	num := 1
	if start := attrValue(n, "start"); start != "" {
		fmt.Sscanf(start, "%d", &num)
	}
	indent := strings.Repeat("  ", depth)
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		text, nested := splitListItem(c, cfg, depth)
		if task, checked := taskState(c); task {
			box := "[ ] "
			if checked {
				box = "[x] "
			}
			text = box + text
		}
		b.WriteString(indent + marker + text + "\n")
		b.WriteString(nested)
	}
	return b.String()
}

// splitListItem separates an li's own inline content from nested lists.
func splitListItem(li *html.Node, cfg config, depth int) (text, nested string) {
	var inline strings.Builder
	var sub strings.Builder
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			sub.WriteString(convertList(c, cfg, depth+1))
			continue
		}
		if c.Type == html.ElementNode && c.Data == "input" {
			continue
		}
		inline.WriteString(inlineMarkdown(c))
	}
	return strings.TrimSpace(inline.String()), sub.String()
}

func taskState(li *html.Node) (task, checked bool) {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "input" &&
			attrValue(c, "type") == "checkbox" {
			return true, hasAttr(c, "checked")
		}
	}
	return false, false
}

func convertTable(n *html.Node, cfg config) string {
	var headers, seps []string
	var rows [][]string
	walkElements(n, "th", func(th *html.Node) {
		headers = append(headers, strings.TrimSpace(inlineMarkdown(th)))
		seps = append(seps, separatorFor(attrValue(th, "style")))
	})
	walkElements(n, "tr", func(tr *html.Node) {
		var row []string
		walkElements(tr, "td", func(td *html.Node) {
			row = append(row, strings.TrimSpace(inlineMarkdown(td)))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	if len(headers) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	b.WriteString("\n")
	return b.String()
}

func separatorFor(style string) string {
	switch {
	case strings.Contains(style, "text-align: center"):
		return ":---:"
	case strings.Contains(style, "text-align: right"):
		return "---:"
	case strings.Contains(style, "text-align: left"):
		return ":---"
	default:
		return "---"
	}
}

func convertDefList(n *html.Node, cfg config) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			b.WriteString(strings.TrimSpace(inlineMarkdown(c)) + "\n")
		case "dd":
			b.WriteString(": " + strings.TrimSpace(inlineMarkdown(c)) + "\n")
		}
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteString("\n")
	return b.String()
}

// inlineMarkdown renders the inline markup of a node back to Markdown
// syntax.
func inlineMarkdown(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return ""
	}
	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inner.WriteString(inlineMarkdown(c))
	}
	text := inner.String()
	if n.Type != html.ElementNode {
		return text
	}
	switch n.Data {
	case "strong", "b":
		return "**" + text + "**"
	case "em", "i":
		return "*" + text + "*"
	case "code":
		return "`" + flattenText(n) + "`"
	case "del", "s", "strike":
		return "~~" + text + "~~"
	case "mark":
		return "==" + text + "=="
	case "sup":
		return "^" + text + "^"
	case "sub":
		return "~" + text + "~"
	case "br":
		return "  \n"
	case "a":
		href := attrValue(n, "href")
		if href == "" {
			return text
		}
		return "[" + text + "](" + href + ")"
	case "img":
		return "![" + attrValue(n, "alt") + "](" + attrValue(n, "src") + ")"
	default:
		return text
	}
}

func flattenText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(flattenText(c))
	}
	return b.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func walkElements(n *html.Node, tag string, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == tag {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, tag, fn)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}
