package mdhtml

import (
	"regexp"
	"strconv"
	"strings"
)

// A recognizer inspects lines starting at index i and either claims one or
// more lines or declines. On a match, next is the first unconsumed line
// index. A match may produce no block at all when the lines only feed
// parser state, such as footnote and link reference definitions.
type recognizer func(lines []string, i int, st *parserState) (blk *Block, next int, ok bool)

// recognizers are tried in order at every position. Paragraph accumulation
// is the fallback when none of them match. Built in init because the list
// recognizer recurses through tokenizeWith for nested content.
var recognizers []recognizer

func init() {
	recognizers = []recognizer{
		recognizeFencedCode,
		recognizeATXHeading,
		recognizeRule,
		recognizeBlockquote,
		recognizeTable,
		recognizeFootnoteDef,
		recognizeLinkRefDef,
		recognizeSetextHeading,
		recognizeDefList,
		recognizeList,
		recognizeIndentedCode,
	}
}

// Tokenize splits Markdown source into block tokens. Footnote and link
// reference definitions are consumed but not returned; use ToHTML when
// their resolution matters.
func Tokenize(src string) []Block {
	return tokenizeWith(splitLines(src), newParserState())
}

func tokenizeWith(lines []string, st *parserState) []Block {
	var blocks []Block
	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		blk, next, ok := matchBlock(lines, i, st)
		if ok {
			if blk != nil {
				blocks = append(blocks, *blk)
			}
			i = next
			continue
		}
		blk2, next2 := gatherParagraph(lines, i, st)
		blocks = append(blocks, blk2)
		i = next2
	}
	return blocks
}

func matchBlock(lines []string, i int, st *parserState) (*Block, int, bool) {
	for _, rec := range recognizers {
		if blk, next, ok := rec(lines, i, st); ok {
			return blk, next, true
		}
	}
	return nil, 0, false
}

// gatherParagraph collects lines until a blank line or a position where some
// recognizer takes over.
func gatherParagraph(lines []string, i int, st *parserState) (Block, int) {
	var buf []string
	j := i
	for j < len(lines) {
		if strings.TrimSpace(lines[j]) == "" {
			break
		}
		if j > i {
			if _, _, ok := matchBlock(lines, j, st); ok {
				break
			}
		}
		buf = append(buf, lines[j])
		j++
	}
	return Block{Kind: BlockParagraph, Text: strings.Join(buf, "\n")}, j
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.Split(src, "\n")
}

var atxHeadingRe = regexp.MustCompile(`^(#{1,6}) +(.*)$`)

func recognizeATXHeading(lines []string, i int, _ *parserState) (*Block, int, bool) {
	m := atxHeadingRe.FindStringSubmatch(lines[i])
	if m == nil {
		return nil, 0, false
	}
	content := strings.TrimSpace(m[2])
	if content == "" {
		return nil, 0, false
	}
	return &Block{Kind: BlockHeading, Level: len(m[1]), Text: content}, i + 1, true
}

var setextUnderlineRe = regexp.MustCompile(`^(=+|-+)\s*$`)

func recognizeSetextHeading(lines []string, i int, _ *parserState) (*Block, int, bool) {
	if i+1 >= len(lines) {
		return nil, 0, false
	}
	content := strings.TrimSpace(lines[i])
	if content == "" {
		return nil, 0, false
	}
	// A list marker line underlined by dashes is a list, not a heading.
	if matchListMarker(lines[i]) != nil {
		return nil, 0, false
	}
	m := setextUnderlineRe.FindStringSubmatch(lines[i+1])
	if m == nil {
		return nil, 0, false
	}
	level := 1
	if m[1][0] == '-' {
		level = 2
	}
	return &Block{Kind: BlockHeading, Level: level, Text: content}, i + 2, true
}

func recognizeFencedCode(lines []string, i int, _ *parserState) (*Block, int, bool) {
	opener := strings.TrimLeft(lines[i], " \t")
	if !strings.HasPrefix(opener, "```") {
		return nil, 0, false
	}
	lang := strings.TrimSpace(strings.TrimPrefix(opener, "```"))
	var content []string
	j := i + 1
	for j < len(lines) {
		if strings.HasPrefix(strings.TrimLeft(lines[j], " \t"), "```") {
			j++
			return &Block{Kind: BlockCode, Language: lang, Text: strings.Join(content, "\n")}, j, true
		}
		content = append(content, lines[j])
		j++
	}
	// Unterminated fences consume to end of input.
	return &Block{Kind: BlockCode, Language: lang, Text: strings.Join(content, "\n")}, j, true
}

func recognizeIndentedCode(lines []string, i int, _ *parserState) (*Block, int, bool) {
	var content []string
	j := i
	for j < len(lines) {
		stripped, ok := stripCodeIndent(lines[j])
		if !ok {
			break
		}
		content = append(content, stripped)
		j++
	}
	if j == i {
		return nil, 0, false
	}
	for len(content) > 0 && strings.TrimSpace(content[len(content)-1]) == "" {
		content = content[:len(content)-1]
	}
	if len(content) == 0 {
		return nil, 0, false
	}
	return &Block{Kind: BlockCode, Text: strings.Join(content, "\n")}, j, true
}

func stripCodeIndent(line string) (string, bool) {
	if strings.HasPrefix(line, "\t") {
		return line[1:], true
	}
	if strings.HasPrefix(line, "    ") {
		return line[4:], true
	}
	return "", false
}

func recognizeRule(lines []string, i int, _ *parserState) (*Block, int, bool) {
	trimmed := strings.TrimSpace(lines[i])
	if len(trimmed) < 3 {
		return nil, 0, false
	}
	ch := trimmed[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return nil, 0, false
	}
	for k := 0; k < len(trimmed); k++ {
		if trimmed[k] != ch {
			return nil, 0, false
		}
	}
	return &Block{Kind: BlockRule}, i + 1, true
}

func recognizeBlockquote(lines []string, i int, st *parserState) (*Block, int, bool) {
	if !isQuoteLine(lines[i]) {
		return nil, 0, false
	}
	var inner []string
	j := i
	for j < len(lines) && isQuoteLine(lines[j]) {
		inner = append(inner, stripQuoteMarker(lines[j]))
		j++
	}
	children := tokenizeWith(inner, st)
	return &Block{Kind: BlockQuote, Children: children}, j, true
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), ">")
}

func stripQuoteMarker(line string) string {
	s := strings.TrimLeft(line, " ")
	s = strings.TrimPrefix(s, ">")
	s = strings.TrimPrefix(s, " ")
	return s
}

var tableSeparatorCellRe = regexp.MustCompile(`^:?-+:?$`)

func recognizeTable(lines []string, i int, _ *parserState) (*Block, int, bool) {
	if i+1 >= len(lines) {
		return nil, 0, false
	}
	headers, ok := splitTableRow(lines[i])
	if !ok {
		return nil, 0, false
	}
	seps, ok := splitTableRow(lines[i+1])
	if !ok || len(seps) == 0 {
		return nil, 0, false
	}
	aligns := make([]Alignment, 0, len(seps))
	for _, cell := range seps {
		cell = strings.TrimSpace(cell)
		if !tableSeparatorCellRe.MatchString(cell) {
			return nil, 0, false
		}
		aligns = append(aligns, alignmentOf(cell))
	}
	var rows [][]string
	j := i + 2
	for j < len(lines) {
		row, ok := splitTableRow(lines[j])
		if !ok {
			break
		}
		rows = append(rows, row)
		j++
	}
	return &Block{Kind: BlockTable, Headers: headers, Aligns: aligns, Rows: rows}, j, true
}

func alignmentOf(cell string) Alignment {
	leading := strings.HasPrefix(cell, ":")
	trailing := strings.HasSuffix(cell, ":")
	switch {
	case leading && trailing:
		return AlignCenter
	case leading:
		return AlignLeft
	case trailing:
		return AlignRight
	default:
		return AlignNone
	}
}

// splitTableRow splits a pipe-delimited row into trimmed cells. Leading and
// trailing pipes are optional.
func splitTableRow(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.Contains(trimmed, "|") {
		return nil, false
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for k, part := range parts {
		cells[k] = strings.TrimSpace(part)
	}
	return cells, true
}

func recognizeDefList(lines []string, i int, _ *parserState) (*Block, int, bool) {
	if !isDefTerm(lines, i) {
		return nil, 0, false
	}
	var defs []DefItem
	j := i
	for j < len(lines) {
		if !isDefTerm(lines, j) {
			break
		}
		item := DefItem{Term: strings.TrimSpace(lines[j])}
		j++
		for j < len(lines) && strings.HasPrefix(lines[j], ": ") {
			item.Definitions = append(item.Definitions, strings.TrimSpace(lines[j][2:]))
			j++
		}
		defs = append(defs, item)
		// A blank line continues the list only when another term/definition
		// pair follows directly.
		if j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			if j+1 < len(lines) && isDefTerm(lines, j+1) {
				j++
				continue
			}
			break
		}
	}
	return &Block{Kind: BlockDefList, Defs: defs}, j, true
}

func isDefTerm(lines []string, i int) bool {
	if i >= len(lines) || i+1 >= len(lines) {
		return false
	}
	term := lines[i]
	trimmed := strings.TrimSpace(term)
	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return false
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ">") {
		return false
	}
	if matchListMarker(term) != nil {
		return false
	}
	return strings.HasPrefix(lines[i+1], ": ")
}

var footnoteDefRe = regexp.MustCompile(`^\[\^([^\]]+)\]:\s*(.*)$`)

func recognizeFootnoteDef(lines []string, i int, st *parserState) (*Block, int, bool) {
	m := footnoteDefRe.FindStringSubmatch(lines[i])
	if m == nil {
		return nil, 0, false
	}
	st.setFootnote(m[1], strings.TrimSpace(m[2]))
	return nil, i + 1, true
}

var linkRefDefRe = regexp.MustCompile(`^\[([^\^\]][^\]]*)\]:\s*(\S+)(?:\s+"([^"]*)")?\s*$`)

func recognizeLinkRefDef(lines []string, i int, st *parserState) (*Block, int, bool) {
	m := linkRefDefRe.FindStringSubmatch(lines[i])
	if m == nil {
		return nil, 0, false
	}
	st.setLinkRef(m[1], m[2], m[3])
	return nil, i + 1, true
}

// listMarker describes a matched list item marker line.
type listMarker struct {
	indent  int
	ordered bool
	num     int
	content string
}

var listMarkerRe = regexp.MustCompile(`^(\s*)(?:([-*+])|(\d+)[.)]) +(.*)$`)

func matchListMarker(line string) *listMarker {
	m := listMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	lm := &listMarker{indent: indentWidth(m[1]), content: m[4]}
	if m[3] != "" {
		lm.ordered = true
		lm.num, _ = strconv.Atoi(m[3])
	}
	return lm
}

func indentWidth(prefix string) int {
	w := 0
	for _, r := range prefix {
		if r == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

var taskMarkerRe = regexp.MustCompile(`^\[( |[xX])\] ?(.*)$`)

func recognizeList(lines []string, i int, st *parserState) (*Block, int, bool) {
	first := matchListMarker(lines[i])
	if first == nil || first.indent >= 4 {
		return nil, 0, false
	}
	blk := Block{Kind: BlockList, Ordered: first.ordered, Start: 1}
	if first.ordered {
		blk.Start = first.num
	}
	j := i
	for j < len(lines) {
		mm := matchListMarker(lines[j])
		if mm == nil || mm.indent != first.indent || mm.ordered != first.ordered {
			break
		}
		item := ListItem{Text: mm.content}
		if !first.ordered {
			if tm := taskMarkerRe.FindStringSubmatch(mm.content); tm != nil {
				item.Task = true
				item.Checked = tm[1] != " "
				item.Text = tm[2]
			}
		}
		j++
		cont := gatherContinuation(lines, &j, first.indent)
		attachContinuation(&item, cont, st)
		blk.Items = append(blk.Items, item)
	}
	if len(blk.Items) == 0 {
		return nil, 0, false
	}
	return &blk, j, true
}

// gatherContinuation collects the more-indented lines following a list item
// marker, including blank lines sandwiched between indented runs.
func gatherContinuation(lines []string, j *int, baseIndent int) []string {
	var cont []string
	for *j < len(lines) {
		line := lines[*j]
		if strings.TrimSpace(line) == "" {
			if *j+1 < len(lines) && indentOf(lines[*j+1]) > baseIndent {
				cont = append(cont, "")
				*j++
				continue
			}
			break
		}
		if indentOf(line) > baseIndent {
			cont = append(cont, line)
			*j++
			continue
		}
		break
	}
	return cont
}

func indentOf(line string) int {
	return indentWidth(line[:len(line)-len(strings.TrimLeft(line, " \t"))])
}

// attachContinuation dedents an item's continuation lines and either parses
// them as a nested block sequence (when they open with a list marker) or
// folds them into the item text.
func attachContinuation(item *ListItem, cont []string, st *parserState) {
	if len(cont) == 0 {
		return
	}
	dedented := dedent(cont)
	firstIdx := 0
	for firstIdx < len(dedented) && strings.TrimSpace(dedented[firstIdx]) == "" {
		firstIdx++
	}
	if firstIdx < len(dedented) && matchListMarker(dedented[firstIdx]) != nil {
		item.Children = append(item.Children, tokenizeWith(dedented, st)...)
		return
	}
	for _, line := range dedented {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item.Text += "\n" + line
	}
}

func dedent(lines []string) []string {
	min := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if w := indentOf(line); min < 0 || w < min {
			min = w
		}
	}
	if min <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for k, line := range lines {
		out[k] = stripIndent(line, min)
	}
	return out
}

func stripIndent(line string, width int) string {
	stripped := 0
	for len(line) > 0 && stripped < width {
		switch line[0] {
		case ' ':
			stripped++
		case '\t':
			stripped += 4
		default:
			return line
		}
		line = line[1:]
	}
	return line
}
