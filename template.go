package take

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/takedsl/take/document"
)

// Template is a compiled take template. Compilation happens once in New;
// the resulting directive tree is immutable, so a single Template may
// execute concurrently from any number of goroutines, each run producing
// its own Result.
type Template struct {
	tree     []node
	base     *url.URL
	urlAttrs map[string]struct{}
}

// DefaultURLAttrs lists the attributes whose values resolve against the
// base URL unless URLAttrs overrides the set.
var DefaultURLAttrs = []string{"href", "src"}

type config struct {
	baseURL  string
	urlAttrs []string
}

// Option configures compilation.
type Option func(*config)

// BaseURL sets the template's default base URL. Relative href and src
// values resolve against it at execution time unless ExecBaseURL
// overrides it for a single run.
func BaseURL(raw string) Option {
	return func(c *config) { c.baseURL = raw }
}

// URLAttrs replaces the set of attributes treated as URL-carrying.
func URLAttrs(names ...string) Option {
	return func(c *config) { c.urlAttrs = names }
}

// New compiles template source. Template faults surface as one of
// *ScanError, *UnexpectedTokenError, *InvalidDirectiveError or
// *TakeSyntaxError, all of which implement CompileError.
func New(src string, opts ...Option) (*Template, error) {
	cfg := config{urlAttrs: DefaultURLAttrs}
	for _, opt := range opts {
		opt(&cfg)
	}

	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	tree, err := parse(toks)
	if err != nil {
		return nil, err
	}

	t := &Template{tree: tree, urlAttrs: make(map[string]struct{}, len(cfg.urlAttrs))}
	for _, name := range cfg.urlAttrs {
		t.urlAttrs[name] = struct{}{}
	}
	if cfg.baseURL != "" {
		u, err := url.Parse(cfg.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		t.base = u
	}
	return t, nil
}

// MustNew is New for templates known to compile, such as package-level
// declarations. It panics on error.
func MustNew(src string, opts ...Option) *Template {
	t, err := New(src, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

type execConfig struct {
	baseURL string
}

// ExecOption configures one execution.
type ExecOption func(*execConfig)

// ExecBaseURL overrides the template's base URL for this execution.
func ExecBaseURL(raw string) ExecOption {
	return func(c *execConfig) { c.baseURL = raw }
}

// Exec parses markup and executes the template against it.
func (t *Template) Exec(markup string, opts ...ExecOption) (Result, error) {
	return t.ExecReader(strings.NewReader(markup), opts...)
}

// ExecReader parses a document from r and executes the template.
func (t *Template) ExecReader(r io.Reader, opts ...ExecOption) (Result, error) {
	doc, err := document.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return t.ExecDocument(doc, opts...)
}

// ExecDocument executes the template against an already parsed document.
// Execution cannot fail for data reasons: selectors that match nothing
// produce the defined empty values instead.
func (t *Template) ExecDocument(doc *document.Document, opts ...ExecOption) (Result, error) {
	var cfg execConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	base := t.base
	if cfg.baseURL != "" {
		u, err := url.Parse(cfg.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		base = u
	}

	root := docSet{sel: doc.Root()}
	out := Result{}
	in := &interp{root: root, urlAttrs: t.urlAttrs}
	in.push(scope{value: root, out: out, base: base})
	in.runAll(t.tree)
	return out, nil
}
