package goquery_test

import (
	"testing"

	"github.com/fwojciec/htmlsift"
	"github.com/fwojciec/htmlsift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	t.Parallel()

	t.Run("accepts known charset", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser(htmlsift.ParserOptions{Charset: "windows-1252"})

		require.NoError(t, err)
	})

	t.Run("rejects unknown charset", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser(htmlsift.ParserOptions{Charset: "klingon-8"})

		assert.Equal(t, htmlsift.EINVALID, htmlsift.ErrorCode(err))
	})
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses full document", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewParser(htmlsift.ParserOptions{})
		require.NoError(t, err)

		tree, err := p.Parse([]byte(`<p>Hello</p>`))

		require.NoError(t, err)
		assert.Equal(t, 1, tree.Document().Find("html > body > p").Length())
	})

	t.Run("parses empty buffer", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewParser(htmlsift.ParserOptions{})
		require.NoError(t, err)

		tree, err := p.Parse(nil)

		require.NoError(t, err)
		assert.Equal(t, 1, tree.Document().Find("body").Length())
	})

	t.Run("parses fragment without document elements", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewParser(htmlsift.ParserOptions{Fragment: true})
		require.NoError(t, err)

		tree, err := p.Parse([]byte(`<p>a</p><p>b</p>`))

		require.NoError(t, err)
		assert.Equal(t, 2, tree.Document().Find("p").Length())
		assert.Equal(t, 0, tree.Document().Find("body").Length())
	})

	t.Run("decodes charset declared in meta tag", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewParser(htmlsift.ParserOptions{})
		require.NoError(t, err)

		buf := []byte("<html><head><meta charset=\"windows-1252\"></head><body><p>caf\xe9</p></body></html>")
		tree, err := p.Parse(buf)

		require.NoError(t, err)
		assert.Equal(t, "café", tree.Document().Find("p").Text())
	})

	t.Run("decodes forced charset", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewParser(htmlsift.ParserOptions{Charset: "iso-8859-1"})
		require.NoError(t, err)

		tree, err := p.Parse([]byte("<p>caf\xe9</p>"))

		require.NoError(t, err)
		assert.Equal(t, "café", tree.Document().Find("p").Text())
	})

	t.Run("parses noscript as markup when scripting disabled", func(t *testing.T) {
		t.Parallel()

		disabled := false
		buf := []byte(`<body><noscript><p>fallback</p></noscript></body>`)

		off, err := goquery.NewParser(htmlsift.ParserOptions{Scripting: &disabled})
		require.NoError(t, err)
		tree, err := off.Parse(buf)
		require.NoError(t, err)
		assert.Equal(t, 1, tree.Document().Find("noscript p").Length())

		on, err := goquery.NewParser(htmlsift.ParserOptions{})
		require.NoError(t, err)
		tree, err = on.Parse(buf)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Document().Find("noscript p").Length())
	})
}

func TestTree_Position(t *testing.T) {
	t.Parallel()

	p, err := goquery.NewParser(htmlsift.ParserOptions{})
	require.NoError(t, err)

	tree, err := p.Parse([]byte(`<html><head></head><body><article>A</article><div></div><article>B</article></body></html>`))
	require.NoError(t, err)

	nodes := tree.Document().Find("article").Nodes
	require.Len(t, nodes, 2)

	assert.Equal(t, htmlsift.Position{Path: "/html[1]/body[1]/article[1]", Index: 3}, tree.Position(nodes[0]))
	assert.Equal(t, htmlsift.Position{Path: "/html[1]/body[1]/article[2]", Index: 5}, tree.Position(nodes[1]))
}
