package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/htmlsift"
	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector.
//
// The supported syntax is whatever cascadia accepts: type, universal, #id,
// .class and attribute selectors ([a], =, ~=, |=, ^=, $=, *=, and #= for
// regular expressions), the descendant, >, + and ~ combinators, selector
// groups, and the pseudo-classes :not, :has, :haschild, :contains,
// :containsOwn, :matches, :matchesOwn, the :nth-* and :*-child / :*-of-type
// families, :empty, :root, :link, :lang, :enabled, :disabled, :checked,
// :input and :placeholder-shown. Pseudo-elements are rejected.
type Selector struct {
	raw     string
	matcher cascadia.Selector
}

// CompileSelector compiles s. Returns EINVALID if s is not a valid selector
// or uses a pseudo-element.
func CompileSelector(s string) (Selector, error) {
	group, err := cascadia.ParseGroup(s)
	if err != nil {
		return Selector{}, htmlsift.Errorf(htmlsift.EINVALID, "invalid selector %q: %v", s, err)
	}
	for _, sel := range group {
		if pe := sel.PseudoElement(); pe != "" {
			return Selector{}, htmlsift.Errorf(htmlsift.EINVALID, "invalid selector %q: pseudo-element ::%s not supported", s, pe)
		}
	}

	m, err := cascadia.Compile(s)
	if err != nil {
		return Selector{}, htmlsift.Errorf(htmlsift.EINVALID, "invalid selector %q: %v", s, err)
	}
	return Selector{raw: s, matcher: m}, nil
}

// String returns the selector source.
func (s Selector) String() string {
	return s.raw
}

// ExecuteSelector applies sel to the tree. With multiple unset only the
// first match in document order is used; otherwise every match is, in
// document order. Each match becomes one segment holding its visible text.
// The returned bool is false when nothing matched.
func ExecuteSelector(t *Tree, sel Selector, multiple bool) ([]htmlsift.Segment, bool) {
	nodes := selectNodes(t, sel, multiple)
	segments := make([]htmlsift.Segment, 0, len(nodes))
	for _, n := range nodes {
		segments = append(segments, htmlsift.Segment{
			Content:  Text(n),
			Selector: sel.raw,
			Position: t.Position(n),
		})
	}
	return segments, len(segments) > 0
}

func selectNodes(t *Tree, sel Selector, multiple bool) []*html.Node {
	if multiple {
		return t.doc.FindMatcher(sel.matcher).Nodes
	}
	return t.doc.FindMatcher(goquery.SingleMatcher(sel.matcher)).Nodes
}
