package mdhtml

// BlockKind discriminates the variants of a Block.
type BlockKind uint8

const (
	// BlockParagraph is a run of plain text lines.
	BlockParagraph BlockKind = iota
	// BlockHeading is an ATX or setext heading.
	BlockHeading
	// BlockCode is a fenced or indented code block.
	BlockCode
	// BlockList is an ordered or unordered list, possibly nested.
	BlockList
	// BlockTable is a pipe-delimited table.
	BlockTable
	// BlockQuote is a blockquote wrapping nested blocks.
	BlockQuote
	// BlockRule is a horizontal rule.
	BlockRule
	// BlockDefList is a definition list.
	BlockDefList
)

// Alignment is a table column alignment. The zero value means no alignment
// and renders without a style attribute.
type Alignment string

const (
	AlignNone   Alignment = ""
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Block is one block-level element of a tokenized document. Kind selects
// which fields carry the payload; unrelated fields stay at their zero value.
type Block struct {
	Kind BlockKind

	// Text carries heading and paragraph content, and the body of a code
	// block.
	Text string

	// Level is the heading level, 1 through 6.
	Level int

	// Language is the fence info string of a code block, possibly empty.
	Language string

	// Ordered and Start describe a list. Start is the ordinal of the first
	// item and is meaningful only for ordered lists.
	Ordered bool
	Start   int
	Items   []ListItem

	// Headers, Aligns and Rows describe a table. Aligns may be shorter than
	// Headers; missing columns align as AlignNone.
	Headers []string
	Aligns  []Alignment
	Rows    [][]string

	// Children holds the nested blocks of a blockquote.
	Children []Block

	// Defs holds the term/definition pairs of a definition list.
	Defs []DefItem
}

// ListItem is a single list entry. Children holds a nested list parsed from
// the item's more-indented continuation lines.
type ListItem struct {
	Text     string
	Task     bool
	Checked  bool
	Children []Block
}

// DefItem is one term of a definition list with its definitions.
type DefItem struct {
	Term        string
	Definitions []string
}
