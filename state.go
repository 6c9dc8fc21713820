package mdhtml

import "strings"

// linkRef is a reference-style link target collected during tokenization.
type linkRef struct {
	url   string
	title string
}

// footnote is a footnote definition with its display index. Indices are
// assigned in order of first definition within one parse and start at 1.
type footnote struct {
	content string
	index   int
}

// parserState collects link references and footnote definitions during one
// top-level parse. A fresh instance is built per call so concurrent parses
// never share registries.
type parserState struct {
	linkRefs  map[string]linkRef
	footnotes map[string]footnote
	nextIndex int
}

func newParserState() *parserState {
	return &parserState{
		linkRefs:  make(map[string]linkRef),
		footnotes: make(map[string]footnote),
		nextIndex: 1,
	}
}

// setLinkRef registers a reference target. Ids are case-insensitive.
func (st *parserState) setLinkRef(id, url, title string) {
	st.linkRefs[strings.ToLower(id)] = linkRef{url: url, title: title}
}

// getLinkRef resolves a reference id case-insensitively.
func (st *parserState) getLinkRef(id string) (linkRef, bool) {
	ref, ok := st.linkRefs[strings.ToLower(id)]
	return ref, ok
}

// setFootnote registers a footnote definition. The first definition of an id
// wins and fixes the display index; later duplicates are ignored.
func (st *parserState) setFootnote(id, content string) {
	if _, ok := st.footnotes[id]; ok {
		return
	}
	st.footnotes[id] = footnote{content: content, index: st.nextIndex}
	st.nextIndex++
}

func (st *parserState) getFootnote(id string) (footnote, bool) {
	fn, ok := st.footnotes[id]
	return fn, ok
}
