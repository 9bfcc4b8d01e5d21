package take

import "github.com/takedsl/take/document"

// ElementSet is the document capability the interpreter consumes: an
// ordered set of elements that can be narrowed by CSS selector or index
// and asked for its text, attributes and HTML. document.Selection
// provides the standard implementation; any backend satisfying the
// contract can stand in.
type ElementSet interface {
	// Select returns the descendants of the set matching the CSS
	// selector, in document order.
	Select(selector string) ElementSet
	// Eq narrows to the single element at the signed index. A negative
	// index counts from the end; out of range yields the empty set.
	Eq(index int) ElementSet
	// Len reports the number of elements.
	Len() int
	// Text returns the text content. The empty set has text "".
	Text() string
	// Attr returns the named attribute of the first element and whether
	// it is present.
	Attr(name string) (string, bool)
	// Html renders the inner HTML of the first element.
	Html() (string, error)
}

// docSet adapts document.Selection to ElementSet.
type docSet struct {
	sel *document.Selection
}

func (d docSet) Select(selector string) ElementSet { return docSet{sel: d.sel.Select(selector)} }

func (d docSet) Eq(index int) ElementSet { return docSet{sel: d.sel.Eq(index)} }

func (d docSet) Len() int { return d.sel.Len() }

func (d docSet) Text() string { return d.sel.Text() }

func (d docSet) Attr(name string) (string, bool) { return d.sel.Attr(name) }

func (d docSet) Html() (string, error) { return d.sel.Html() }

// Interface compliance
var _ ElementSet = docSet{}
