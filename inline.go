package mdhtml

import (
	"fmt"
	"regexp"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ParseInline converts the inline spans of a single block's text into an
// HTML fragment. Sanitize(false) passes raw markup through unescaped.
// Reference and footnote ids resolve against an empty registry here; use
// ToHTML when definitions elsewhere in the document matter.
func ParseInline(text string, opts ...Option) string {
	return parseInlineWith(text, newParserState(), applyOptions(opts))
}

var (
	escapeSeqRe = regexp.MustCompile("\\\\([*_~`\\[])")
	codeSpanRe  = regexp.MustCompile("`([^`]+)`")

	boldItalicStarRe  = regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`)
	boldItalicUnderRe = regexp.MustCompile(`___([^_]+)___`)
	boldStarRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderRe       = regexp.MustCompile(`__([^_]+)__`)
	italicStarRe      = regexp.MustCompile(`\*([^*]+)\*`)
	italicUnderRe     = regexp.MustCompile(`(^|[^0-9A-Za-z_])_([^_]+)_($|[^0-9A-Za-z_])`)

	strikeRe = regexp.MustCompile(`~~([^~]+)~~`)
	markRe   = regexp.MustCompile(`==([^=]+)==`)
	supRe    = regexp.MustCompile(`\^([^\^\s]+)\^`)
	subRe    = regexp.MustCompile(`~([^~\s]+)~`)

	imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	refFullRe      = regexp.MustCompile(`\[([^\]]+)\]\[([^\]]+)\]`)
	refCollapsedRe = regexp.MustCompile(`\[([^\]]+)\]\[\]`)
	refShortcutRe  = regexp.MustCompile(`\[([^\]^][^\]]*)\]`)

	autolinkRawRe   = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9+.-]*://[^>\s]+)>`)
	autolinkEscRe   = regexp.MustCompile(`&lt;([a-zA-Z][a-zA-Z0-9+.-]*://.+?)&gt;`)
	autoEmailRawRe  = regexp.MustCompile(`<([\w.+-]+@[\w.-]+\.[A-Za-z]{2,})>`)
	autoEmailEscRe  = regexp.MustCompile(`&lt;([\w.+-]+@[\w.-]+\.[A-Za-z]{2,})&gt;`)
	footnoteRefRe   = regexp.MustCompile(`\[\^([^\]]+)\]`)
	colorPreviewRe  = regexp.MustCompile(`(^|\s)#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	hardBreakRe     = regexp.MustCompile(` {2,}\n`)
	footnoteAnchorF = `<a class="footnote-ref" href="#fn-%s" id="fnref-%s">[%d]</a>`
)

// inlineRun carries the placeholder tables of one parseInline invocation.
// Protected segments are swapped for NUL-delimited markers so later rules
// cannot re-interpret them, then restored at the end.
type inlineRun struct {
	st       *parserState
	cfg      config
	restores []string
}

func (r *inlineRun) protect(replacement string) string {
	r.restores = append(r.restores, replacement)
	return fmt.Sprintf("\x00%d\x00", len(r.restores)-1)
}

func (r *inlineRun) restore(text string) string {
	// Restorations may nest (a code span inside a restored segment does
	// not happen, but escape markers can sit inside link text), so loop
	// until no markers remain.
	for strings.Contains(text, "\x00") {
		changed := false
		for idx, repl := range r.restores {
			marker := fmt.Sprintf("\x00%d\x00", idx)
			if strings.Contains(text, marker) {
				text = strings.ReplaceAll(text, marker, repl)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return text
}

func parseInlineWith(text string, st *parserState, cfg config) string {
	if text == "" {
		return ""
	}
	if cfg.sanitize {
		text = escapeHTML(text)
	}
	r := &inlineRun{st: st, cfg: cfg}

	// Literal escapes resolve to the bare character and bypass every
	// formatting rule below.
	text = escapeSeqRe.ReplaceAllStringFunc(text, func(m string) string {
		return r.protect(m[1:])
	})

	// Code span content is never re-interpreted.
	text = codeSpanRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := codeSpanRe.FindStringSubmatch(m)[1]
		return r.protect("<code>" + inner + "</code>")
	})

	text = boldItalicStarRe.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldItalicUnderRe.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldStarRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicStarRe.ReplaceAllString(text, "<em>$1</em>")
	// The underscore match consumes its trailing boundary character, which
	// would skip the next span in runs like "_a_ _b_". Each pass removes
	// underscores, so repeating until stable terminates.
	for {
		next := italicUnderRe.ReplaceAllString(text, "${1}<em>${2}</em>${3}")
		if next == text {
			break
		}
		text = next
	}

	text = strikeRe.ReplaceAllString(text, "<del>$1</del>")
	text = markRe.ReplaceAllString(text, "<mark>$1</mark>")
	text = supRe.ReplaceAllString(text, "<sup>$1</sup>")
	text = subRe.ReplaceAllString(text, "<sub>$1</sub>")

	text = r.applyImages(text)
	text = r.applyLinks(text)
	text = r.applyReferenceLinks(text)
	text = r.applyAutolinks(text)
	text = r.applyFootnoteRefs(text)

	text = colorPreviewRe.ReplaceAllString(text,
		`$1<span class="color-preview"><span class="color-swatch" style="background-color: #$2"></span>#$2</span>`)
	text = hardBreakRe.ReplaceAllString(text, "<br />\n")

	return r.restore(text)
}

func (r *inlineRun) applyImages(text string) string {
	return imageRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := imageRe.FindStringSubmatch(m)
		url, title := r.splitLinkDest(sub[2])
		tag := `<img src="` + url + `" alt="` + sub[1] + `"`
		if title != "" {
			tag += ` title="` + title + `"`
		}
		return r.protect(tag + ` />`)
	})
}

func (r *inlineRun) applyLinks(text string) string {
	return linkRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		url, title := r.splitLinkDest(sub[2])
		tag := `<a href="` + url + `"`
		if title != "" {
			tag += ` title="` + title + `"`
		}
		return r.protect(tag + `>` + sub[1] + `</a>`)
	})
}

// splitLinkDest separates a link destination from its optional quoted
// title. The quote characters arrive escaped when sanitizing.
func (r *inlineRun) splitLinkDest(dest string) (url, title string) {
	dest = strings.TrimSpace(dest)
	cut := strings.IndexAny(dest, " \t")
	if cut < 0 {
		return dest, ""
	}
	url = dest[:cut]
	title = strings.TrimSpace(dest[cut+1:])
	quote := `"`
	if r.cfg.sanitize {
		quote = "&quot;"
	}
	title = strings.TrimPrefix(title, quote)
	title = strings.TrimSuffix(title, quote)
	return url, title
}

func (r *inlineRun) applyReferenceLinks(text string) string {
	text = refFullRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := refFullRe.FindStringSubmatch(m)
		if ref, ok := r.st.getLinkRef(sub[2]); ok {
			return r.protect(r.refAnchor(ref, sub[1]))
		}
		return m
	})
	text = refCollapsedRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := refCollapsedRe.FindStringSubmatch(m)
		if ref, ok := r.st.getLinkRef(sub[1]); ok {
			return r.protect(r.refAnchor(ref, sub[1]))
		}
		return m
	})
	text = refShortcutRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := refShortcutRe.FindStringSubmatch(m)
		if ref, ok := r.st.getLinkRef(sub[1]); ok {
			return r.protect(r.refAnchor(ref, sub[1]))
		}
		return m
	})
	return text
}

func (r *inlineRun) refAnchor(ref linkRef, text string) string {
	tag := `<a href="` + ref.url + `"`
	if ref.title != "" {
		tag += ` title="` + ref.title + `"`
	}
	return tag + `>` + text + `</a>`
}

func (r *inlineRun) applyAutolinks(text string) string {
	urlRe, emailRe := autolinkRawRe, autoEmailRawRe
	if r.cfg.sanitize {
		urlRe, emailRe = autolinkEscRe, autoEmailEscRe
	}
	text = urlRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := urlRe.FindStringSubmatch(m)
		return r.protect(`<a href="` + sub[1] + `">` + sub[1] + `</a>`)
	})
	text = emailRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := emailRe.FindStringSubmatch(m)
		return r.protect(`<a href="mailto:` + sub[1] + `">` + sub[1] + `</a>`)
	})
	return text
}

func (r *inlineRun) applyFootnoteRefs(text string) string {
	return footnoteRefRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := footnoteRefRe.FindStringSubmatch(m)
		fn, ok := r.st.getFootnote(sub[1])
		if !ok {
			return m
		}
		return r.protect(fmt.Sprintf(footnoteAnchorF, sub[1], sub[1], fn.index))
	})
}
