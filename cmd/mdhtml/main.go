package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/pflag"
	"golang.org/x/net/html"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
	"pkt.systems/mdhtml"
	"pkt.systems/version"
)

const defaultWrap = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdhtml")
}

func main() {
	var (
		reverse     bool
		selector    string
		wrapFlag    int
		lang        string
		raw         bool
		noHighlight bool
		frontMatter bool
		outPath     string
		showVersion bool
	)

	flags := pflag.NewFlagSet("mdhtml", pflag.ExitOnError)
	flags.BoolVarP(&reverse, "reverse", "r", false, "Convert HTML to Markdown instead of Markdown to HTML")
	flags.StringVarP(&selector, "select", "s", "", "CSS selector choosing the subtree to convert (reverse mode)")
	flags.IntVarP(&wrapFlag, "wrap", "w", 0, "Wrap column for emitted Markdown (0 uses terminal width if available)")
	flags.StringVarP(&lang, "lang", "l", "", "Highlight input as code in the given language and exit")
	flags.BoolVar(&raw, "raw", false, "Pass raw markup through without HTML escaping")
	flags.BoolVar(&noHighlight, "no-highlight", false, "Skip syntax highlighting of fenced code blocks")
	flags.BoolVar(&frontMatter, "front-matter", false, "Print decoded front-matter metadata and exit")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdhtml [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, source text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	if err := mdhtml.ValidateInput(src); err != nil {
		fmt.Fprintf(os.Stderr, "validate input: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if err := run(writer, string(src), runConfig{
		reverse:     reverse,
		selector:    selector,
		wrap:        resolveWrap(wrapFlag),
		lang:        lang,
		raw:         raw,
		noHighlight: noHighlight,
		frontMatter: frontMatter,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	reverse     bool
	selector    string
	wrap        int
	lang        string
	raw         bool
	noHighlight bool
	frontMatter bool
}

func run(w io.Writer, src string, cfg runConfig) error {
	switch {
	case cfg.frontMatter:
		meta, _ := mdhtml.SplitFrontMatter(src)
		if meta == nil {
			return fmt.Errorf("no front matter found")
		}
		out, err := yaml.Marshal(meta)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case cfg.lang != "":
		_, err := io.WriteString(w, mdhtml.Highlight(src, cfg.lang)+"\n")
		return err
	case cfg.reverse:
		md, err := reverseConvert(src, cfg)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	default:
		opts := []mdhtml.Option{mdhtml.Sanitize(!cfg.raw), mdhtml.WithHighlight(!cfg.noHighlight)}
		_, err := io.WriteString(w, mdhtml.ToHTML(src, opts...))
		return err
	}
}

func reverseConvert(src string, cfg runConfig) (string, error) {
	opts := []mdhtml.Option{mdhtml.WithWrap(cfg.wrap)}
	if cfg.selector == "" {
		return mdhtml.ConvertHTML(src, opts...)
	}
	sel, err := cascadia.Parse(cfg.selector)
	if err != nil {
		return "", fmt.Errorf("selector %q: %w", cfg.selector, err)
	}
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	node := cascadia.Query(root, sel)
	if node == nil {
		return "", fmt.Errorf("selector %q matched nothing", cfg.selector)
	}
	return strings.TrimRight(mdhtml.FromHTML(node, opts...), "\n") + "\n", nil
}

func resolveWrap(wrap int) int {
	if wrap > 0 {
		return wrap
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWrap
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
