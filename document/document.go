// Package document parses HTML and exposes the ordered, CSS-addressable
// element selections take templates run against. It wraps goquery, the Go
// rendition of the jQuery selection API.
package document

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is one parsed HTML document. Every Selection derived from it
// shares a single node tree, so element identity is stable across
// repeated queries.
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses HTML from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// ParseString parses HTML held in a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the selection holding the document node itself.
func (d *Document) Root() *Selection {
	return &Selection{sel: d.doc.Selection}
}

// Selection is an ordered set of elements within one document.
type Selection struct {
	sel *goquery.Selection
}

// Select returns the descendants matching the CSS selector, in document
// order. An invalid selector matches nothing.
func (s *Selection) Select(selector string) *Selection {
	return &Selection{sel: s.sel.Find(selector)}
}

// Eq narrows to the element at the signed index. A negative index counts
// from the end; out of range yields an empty selection.
func (s *Selection) Eq(index int) *Selection {
	return &Selection{sel: s.sel.Eq(index)}
}

// Len reports the number of elements in the selection.
func (s *Selection) Len() int {
	return s.sel.Length()
}

// Text returns the combined text content of the selection.
func (s *Selection) Text() string {
	return s.sel.Text()
}

// Attr returns the named attribute of the first element and whether it is
// present.
func (s *Selection) Attr(name string) (string, bool) {
	return s.sel.Attr(name)
}

// Html renders the inner HTML of the first element.
func (s *Selection) Html() (string, error) {
	return s.sel.Html()
}

// ResolveURL joins a possibly relative reference against base. Absolute
// references and unparsable values pass through unchanged.
func ResolveURL(base *url.URL, ref string) string {
	if base == nil || ref == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return ref
	}
	return base.ResolveReference(u).String()
}
