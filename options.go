package mdhtml

// ExpandedFunc reports whether a nested JSON value should render expanded.
// It receives the raw candidate text and is supplied by the embedding UI.
type ExpandedFunc func(raw string) bool

// Option configures conversion behavior.
type Option func(*config)

type config struct {
	sanitize  bool
	expanded  ExpandedFunc
	wrap      int
	highlight bool
}

func defaultConfig() config {
	return config{sanitize: true, highlight: true}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Sanitize enables or disables HTML escaping of source text. It is on by
// default; disabling it passes raw markup through untouched.
func Sanitize(enabled bool) Option {
	return func(cfg *config) {
		cfg.sanitize = enabled
	}
}

// WithExpanded supplies the expansion-state predicate used for nested JSON
// previews inside highlighted YAML. Without it, nested JSON renders raw.
func WithExpanded(fn ExpandedFunc) Option {
	return func(cfg *config) {
		cfg.expanded = fn
	}
}

// WithWrap sets the column at which the Markdown emitter wraps paragraph
// text. Zero or negative disables wrapping.
func WithWrap(width int) Option {
	return func(cfg *config) {
		cfg.wrap = width
	}
}

// WithHighlight enables or disables syntax highlighting of fenced code
// blocks during HTML rendering. It is on by default.
func WithHighlight(enabled bool) Option {
	return func(cfg *config) {
		cfg.highlight = enabled
	}
}
