// Package mdhtml converts between a Markdown dialect and sanitized HTML.
//
// The forward direction tokenizes source text into typed blocks, parses the
// inline spans of each block and assembles an HTML document restricted to a
// fixed tag and class vocabulary. The reverse direction walks an HTML
// element tree and emits canonical Markdown per element tag. Independent
// per-language tokenizers classify code into syntax-* spans for embedding
// in rendered output.
//
// Core properties:
//   - One parser state per conversion; concurrent calls never share state
//   - Malformed input degrades to plain text instead of failing
//   - Stable class names form the styling contract with the embedding UI
//   - A hard size ceiling bounds nested JSON parse attempts
//
// Example:
//
//	html := mdhtml.ToHTML("# Hello\n\nMarkdown in, HTML out.\n")
//	fmt.Println(html)
//
// The reverse converter accepts a golang.org/x/net/html node:
//
//	md, err := mdhtml.ConvertHTML("<h1>Hello</h1>", mdhtml.WithWrap(80))
//	if err != nil {
//		log.Fatal(err)
//	}
package mdhtml
