package selector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const fixture = `
<html><body>
  <ul id="menu">
    <li class="entry"><span class="title">Пицца</span><a href="/cat/pizza">перейти</a></li>
    <li class="entry"><span class="title">Напитки</span><a href="/cat/drinks">перейти</a></li>
    text node between entries
    <li class="entry empty"></li>
  </ul>
  <div class="teaser">
    <img class="lazy" data-src="/img/1.png">
    <meta content="420">
  </div>
</body></html>`

func parse(t *testing.T, raw string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestCompileRejectsInvalidQueries(t *testing.T) {
	_, err := Compile("li[", ModeCSS)
	assert.Error(t, err)

	_, err = Compile("//*[", ModeXPath)
	assert.Error(t, err)
}

func TestCompileEmptySelectorMatchesNothing(t *testing.T) {
	q, err := Compile("   ", ModeCSS)
	require.NoError(t, err)
	assert.True(t, q.IsZero())
	assert.Nil(t, q.Select(parse(t, fixture)))
	assert.Nil(t, q.SelectOne(parse(t, fixture)))
}

func TestSelectCSS(t *testing.T) {
	doc := parse(t, fixture)

	entries := MustCompile("#menu .entry", ModeCSS).Select(doc)
	require.Len(t, entries, 3)

	// document order
	assert.Equal(t, "Пицца", Text(MustCompile(".title", ModeCSS).SelectOne(entries[0])))
	assert.Equal(t, "Напитки", Text(MustCompile(".title", ModeCSS).SelectOne(entries[1])))
}

func TestSelectXPath(t *testing.T) {
	doc := parse(t, fixture)

	entries := MustCompile("//ul[@id='menu']/li", ModeXPath).Select(doc)
	require.Len(t, entries, 3)

	name := MustCompile(".//span[@class='title']", ModeXPath).SelectOne(entries[0])
	assert.Equal(t, "Пицца", Text(name))
}

func TestSelectScopedToSubtree(t *testing.T) {
	doc := parse(t, fixture)
	q := MustCompile("a", ModeCSS)

	entries := MustCompile(".entry", ModeCSS).Select(doc)
	require.NotEmpty(t, entries)

	// scoping to the first entry must not leak the second entry's link
	links := q.Select(entries[0])
	require.Len(t, links, 1)
	assert.Equal(t, "/cat/pizza", Attr(links[0], "href"))
}

func TestSelectIncludesMatchingScope(t *testing.T) {
	doc := parse(t, fixture)
	entry := MustCompile(".entry", ModeCSS).SelectOne(doc)
	require.NotNil(t, entry)

	assert.Equal(t, entry, MustCompile("li", ModeCSS).SelectOne(entry))
}

func TestSelectOneAbsent(t *testing.T) {
	doc := parse(t, fixture)
	assert.Nil(t, MustCompile(".nope", ModeCSS).SelectOne(doc))
	assert.Empty(t, MustCompile(".nope", ModeCSS).Select(doc))
}

func TestAttrHelpers(t *testing.T) {
	doc := parse(t, fixture)

	img := MustCompile("img.lazy", ModeCSS).SelectOne(doc)
	require.NotNil(t, img)
	assert.Equal(t, "", Attr(img, "src"))
	assert.Equal(t, "/img/1.png", FirstAttr(img, "src", "data-src", "content"))

	meta := MustCompile(".teaser meta", ModeCSS).SelectOne(doc)
	require.NotNil(t, meta)
	assert.Equal(t, "420", FirstAttr(meta, "src", "data-src", "content"))

	assert.Equal(t, "", Attr(nil, "href"))
}

func TestElementChildren(t *testing.T) {
	doc := parse(t, fixture)
	menu := MustCompile("#menu", ModeCSS).SelectOne(doc)
	require.NotNil(t, menu)

	// text nodes between entries are not element children
	children := ElementChildren(menu)
	require.Len(t, children, 3)
	for _, child := range children {
		assert.Equal(t, "li", child.Data)
	}
}
