package mdhtml

import (
	"fmt"
	"sort"
	"strings"
)

// ToHTML converts Markdown source to an HTML document fragment. A fresh
// parser state backs every call, so concurrent conversions are independent.
// A leading front-matter block is skipped before tokenization.
func ToHTML(src string, opts ...Option) string {
	cfg := applyOptions(opts)
	st := newParserState()
	_, body := SplitFrontMatter(src)
	blocks := tokenizeWith(splitLines(body), st)
	var b strings.Builder
	renderBlocks(&b, blocks, st, cfg)
	renderFootnoteSection(&b, st, cfg)
	return b.String()
}

func renderBlocks(b *strings.Builder, blocks []Block, st *parserState, cfg config) {
	for _, blk := range blocks {
		switch blk.Kind {
		case BlockHeading:
			fmt.Fprintf(b, "<h%d>%s</h%d>\n", blk.Level, parseInlineWith(blk.Text, st, cfg), blk.Level)
		case BlockParagraph:
			fmt.Fprintf(b, "<p>%s</p>\n", parseInlineWith(blk.Text, st, cfg))
		case BlockCode:
			renderCodeBlock(b, blk, cfg)
		case BlockList:
			renderList(b, blk, st, cfg)
		case BlockTable:
			renderTable(b, blk, st, cfg)
		case BlockQuote:
			b.WriteString("<blockquote>\n")
			renderBlocks(b, blk.Children, st, cfg)
			b.WriteString("</blockquote>\n")
		case BlockRule:
			b.WriteString("<hr />\n")
		case BlockDefList:
			renderDefList(b, blk, st, cfg)
		}
	}
}

func renderCodeBlock(b *strings.Builder, blk Block, cfg config) {
	b.WriteString("<pre><code")
	if blk.Language != "" {
		fmt.Fprintf(b, ` class="language-%s"`, escapeHTML(blk.Language))
	}
	b.WriteString(">")
	if cfg.highlight && blk.Language != "" {
		b.WriteString(Highlight(blk.Text, blk.Language, WithExpanded(cfg.expanded)))
	} else {
		b.WriteString(escapeHTML(blk.Text))
	}
	b.WriteString("</code></pre>\n")
}

func renderList(b *strings.Builder, blk Block, st *parserState, cfg config) {
	taskList := false
	for _, item := range blk.Items {
		if item.Task {
			taskList = true
			break
		}
	}
	tag := "ul"
	open := "<ul>"
	if blk.Ordered {
		tag = "ol"
		if blk.Start != 1 {
			open = fmt.Sprintf(`<ol start="%d">`, blk.Start)
		} else {
			open = "<ol>"
		}
	} else if taskList {
		open = `<ul class="task-list">`
	}
	b.WriteString(open + "\n")
	for _, item := range blk.Items {
		b.WriteString("<li>")
		if item.Task {
			if item.Checked {
				b.WriteString(`<input type="checkbox" checked disabled /> `)
			} else {
				b.WriteString(`<input type="checkbox" disabled /> `)
			}
		}
		b.WriteString(parseInlineWith(item.Text, st, cfg))
		if len(item.Children) > 0 {
			b.WriteString("\n")
			renderBlocks(b, item.Children, st, cfg)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</" + tag + ">\n")
}

func renderTable(b *strings.Builder, blk Block, st *parserState, cfg config) {
	align := func(col int) Alignment {
		if col < len(blk.Aligns) {
			return blk.Aligns[col]
		}
		return AlignNone
	}
	cell := func(tag, text string, col int) string {
		attr := ""
		if a := align(col); a != AlignNone {
			attr = fmt.Sprintf(` style="text-align: %s"`, a)
		}
		return "<" + tag + attr + ">" + parseInlineWith(text, st, cfg) + "</" + tag + ">"
	}
	b.WriteString("<table>\n<thead>\n<tr>")
	for col, h := range blk.Headers {
		b.WriteString(cell("th", h, col))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range blk.Rows {
		b.WriteString("<tr>")
		for col, text := range row {
			b.WriteString(cell("td", text, col))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}

func renderDefList(b *strings.Builder, blk Block, st *parserState, cfg config) {
	b.WriteString("<dl>\n")
	for _, def := range blk.Defs {
		fmt.Fprintf(b, "<dt>%s</dt>\n", parseInlineWith(def.Term, st, cfg))
		for _, d := range def.Definitions {
			fmt.Fprintf(b, "<dd>%s</dd>\n", parseInlineWith(d, st, cfg))
		}
	}
	b.WriteString("</dl>\n")
}

// renderFootnoteSection appends the footnote list, sorted ascending by the
// index assigned at definition time. Nothing is emitted when no footnote
// was defined.
func renderFootnoteSection(b *strings.Builder, st *parserState, cfg config) {
	if len(st.footnotes) == 0 {
		return
	}
	type entry struct {
		id string
		fn footnote
	}
	entries := make([]entry, 0, len(st.footnotes))
	for id, fn := range st.footnotes {
		entries = append(entries, entry{id: id, fn: fn})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].fn.index < entries[j].fn.index })
	b.WriteString(`<div class="footnotes">` + "\n<hr />\n<ol>\n")
	for _, e := range entries {
		fmt.Fprintf(b, `<li class="footnote-item" id="fn-%s">%s <a class="footnote-backref" href="#fnref-%s">&#8617;</a></li>`+"\n",
			e.id, parseInlineWith(e.fn.content, st, cfg), e.id)
	}
	b.WriteString("</ol>\n</div>\n")
}
