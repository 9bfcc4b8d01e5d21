package document

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `
<div>
	<ul title="list">
		<li><a href="/a">first</a></li>
		<li><a href="/b">second</a></li>
		<li><a href="/c">third</a></li>
	</ul>
</div>
`

func parsePage(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Root().Select("li").Len())
}

func TestSelection_Select(t *testing.T) {
	doc := parsePage(t)
	assert.Equal(t, 3, doc.Root().Select("a").Len())
	assert.Equal(t, 1, doc.Root().Select("ul li:first-child a").Len())
	assert.Equal(t, 0, doc.Root().Select("table").Len())
}

func TestSelection_SelectInvalidSelector(t *testing.T) {
	doc := parsePage(t)
	assert.Equal(t, 0, doc.Root().Select("!!not a selector").Len())
}

func TestSelection_SelectScopesToDescendants(t *testing.T) {
	doc := parsePage(t)
	ul := doc.Root().Select("ul")
	assert.Equal(t, 3, ul.Select("a").Len())
	assert.Equal(t, 0, ul.Select("div").Len())
}

func TestSelection_Eq(t *testing.T) {
	doc := parsePage(t)
	links := doc.Root().Select("a")

	assert.Equal(t, "first", links.Eq(0).Text())
	assert.Equal(t, "third", links.Eq(2).Text())
	assert.Equal(t, "third", links.Eq(-1).Text())
	assert.Equal(t, "first", links.Eq(-3).Text())
}

func TestSelection_EqOutOfRange(t *testing.T) {
	doc := parsePage(t)
	links := doc.Root().Select("a")

	assert.Equal(t, 0, links.Eq(3).Len())
	assert.Equal(t, 0, links.Eq(-4).Len())
	assert.Equal(t, "", links.Eq(3).Text())
}

func TestSelection_Attr(t *testing.T) {
	doc := parsePage(t)

	v, ok := doc.Root().Select("ul").Attr("title")
	require.True(t, ok)
	assert.Equal(t, "list", v)

	// Attr reads the first element of a multi-element selection.
	v, ok = doc.Root().Select("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/a", v)

	_, ok = doc.Root().Select("ul").Attr("missing")
	assert.False(t, ok)

	_, ok = doc.Root().Select("table").Attr("title")
	assert.False(t, ok)
}

func TestSelection_Html(t *testing.T) {
	doc := parsePage(t)

	h, err := doc.Root().Select("li").Eq(0).Html()
	require.NoError(t, err)
	assert.Equal(t, `<a href="/a">first</a>`, h)
}

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://example.com/docs/page.html")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/docs/a", ResolveURL(base, "a"))
	assert.Equal(t, "https://example.com/a", ResolveURL(base, "/a"))
	assert.Equal(t, "https://example.com/about", ResolveURL(base, "../about"))
	assert.Equal(t, "http://other.com/x", ResolveURL(base, "http://other.com/x"))
	assert.Equal(t, "", ResolveURL(base, ""))
	assert.Equal(t, "/a", ResolveURL(nil, "/a"))
	assert.Equal(t, "://bad", ResolveURL(base, "://bad"))
}
