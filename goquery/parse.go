package goquery

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlsift"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Parser turns raw bytes into a Tree. Its options are fixed at construction
// so one Parser can be shared by concurrent extractions.
type Parser struct {
	fragment  bool
	scripting bool
	encoding  encoding.Encoding // nil means sniff per document
}

// NewParser creates a Parser from passthrough options.
// Returns EINVALID if opts names an unknown charset.
func NewParser(opts htmlsift.ParserOptions) (*Parser, error) {
	p := &Parser{
		fragment:  opts.Fragment,
		scripting: opts.Scripting == nil || *opts.Scripting,
	}
	if opts.Charset != "" {
		e, _ := charset.Lookup(opts.Charset)
		if e == nil {
			return nil, htmlsift.Errorf(htmlsift.EINVALID, "unknown charset %q", opts.Charset)
		}
		p.encoding = e
	}
	return p, nil
}

// Parse decodes buf and parses it into a Tree.
func (p *Parser) Parse(buf []byte) (*Tree, error) {
	e := p.encoding
	if e == nil {
		e, _, _ = charset.DetermineEncoding(buf, "text/html")
	}
	r := transform.NewReader(bytes.NewReader(buf), e.NewDecoder())
	opt := html.ParseOptionEnableScripting(p.scripting)

	if p.fragment {
		bodyContext := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		nodes, err := html.ParseFragmentWithOptions(r, bodyContext, opt)
		if err != nil {
			return nil, htmlsift.Errorf(htmlsift.EINVALID, "failed to parse HTML: %v", err)
		}
		root := &html.Node{Type: html.DocumentNode}
		for _, n := range nodes {
			root.AppendChild(n)
		}
		return NewTree(root), nil
	}

	root, err := html.ParseWithOptions(r, opt)
	if err != nil {
		return nil, htmlsift.Errorf(htmlsift.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewTree(root), nil
}

// Tree is a parsed document. It is not modified after construction.
type Tree struct {
	doc      *goquery.Document
	ordinals map[*html.Node]int
}

// NewTree wraps root and records the document order of its elements.
func NewTree(root *html.Node) *Tree {
	t := &Tree{
		doc:      goquery.NewDocumentFromNode(root),
		ordinals: make(map[*html.Node]int),
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			t.ordinals[n] = len(t.ordinals)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return t
}

// Document returns the goquery document backing the tree.
func (t *Tree) Document() *goquery.Document {
	return t.doc
}

// Position returns the location of n within the tree.
func (t *Tree) Position(n *html.Node) htmlsift.Position {
	return htmlsift.Position{Path: elementPath(n), Index: t.ordinals[n]}
}

// elementPath builds a path such as "/html[1]/body[1]/article[2]", counting
// same-named element siblings from 1.
func elementPath(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		k := 1
		for s := cur.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode && s.Data == cur.Data {
				k++
			}
		}
		parts = append(parts, cur.Data+"["+strconv.Itoa(k)+"]")
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}
