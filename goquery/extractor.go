// Package goquery implements htmlsift.Extractor on top of goquery, cascadia
// and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"strings"

	"github.com/fwojciec/htmlsift"
	"github.com/fwojciec/htmlsift/digest"
	"github.com/fwojciec/htmlsift/glob"
	gobwas "github.com/gobwas/glob"
	"golang.org/x/net/html"
)

// Ensure Extractor implements htmlsift.Extractor at compile time.
var _ htmlsift.Extractor = (*Extractor)(nil)

// htmlMIME matches any MIME type mentioning html (text/html,
// application/xhtml+xml, ...).
var htmlMIME = gobwas.MustCompile("*html*")

// Extractor extracts configured content from HTML documents.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	resolver  htmlsift.SelectorResolver
	parser    *Parser
	selectors map[string]Selector
	converter htmlsift.Converter
	format    htmlsift.Format
	digest    htmlsift.DigestAlgorithm
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter sets the converter used when the configured format is
// markdown. It is ignored for the text format.
func WithConverter(c htmlsift.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithResolver replaces the glob matcher built from the configured rules.
// Selectors returned by r that were not configured are compiled on demand.
func WithResolver(r htmlsift.SelectorResolver) Option {
	return func(e *Extractor) {
		e.resolver = r
	}
}

// NewExtractor validates cfg and compiles its patterns, selectors and parser
// options once. Returns EINVALID for any configuration error, so extraction
// is never attempted with an invalid configuration.
func NewExtractor(cfg htmlsift.Config, opts ...Option) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	matcher, err := glob.NewMatcher(cfg.Rules)
	if err != nil {
		return nil, err
	}

	parser, err := NewParser(cfg.Parser)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		resolver:  matcher,
		parser:    parser,
		selectors: make(map[string]Selector),
		format:    cfg.Format,
		digest:    cfg.Digest,
	}

	def, err := CompileSelector(htmlsift.DefaultSelector.Selector)
	if err != nil {
		return nil, err
	}
	e.selectors[def.raw] = def

	for _, d := range cfg.Rules {
		for i, r := range d.Rules {
			if _, ok := e.selectors[r.ContentSelector]; ok {
				continue
			}
			sel, err := CompileSelector(r.ContentSelector)
			if err != nil {
				return nil, htmlsift.Errorf(htmlsift.EINVALID, "domain %q rule %d: %s", d.Domain, i, htmlsift.ErrorMessage(err))
			}
			e.selectors[sel.raw] = sel
		}
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.format == htmlsift.FormatMarkdown && e.converter == nil {
		return nil, htmlsift.Errorf(htmlsift.EINVALID, "markdown format requires a converter")
	}

	return e, nil
}

// Supports reports whether mimeType contains "html", ignoring case.
func (e *Extractor) Supports(mimeType string) bool {
	return htmlMIME.Match(strings.ToLower(mimeType))
}

// Load extracts the content selected for url from buf.
//
// When no rule matches url the default "body" selector is used and a warning
// is recorded. buf is parsed exactly once. Selectors that match nothing are
// reported together in a single warning. Parse failures are returned as
// EINVALID errors with no partial result.
func (e *Extractor) Load(buf []byte, url string) (*htmlsift.Result, error) {
	var warnings []string

	selectors := e.resolver.Resolve(url)
	if len(selectors) == 0 {
		selectors = []htmlsift.ResolvedSelector{htmlsift.DefaultSelector}
		warnings = append(warnings, htmlsift.DefaultSelectorWarning)
	}

	tree, err := e.parser.Parse(buf)
	if err != nil {
		return nil, err
	}

	var segments []htmlsift.Segment
	var failed []string
	for _, rs := range selectors {
		sel, err := e.selector(rs.Selector)
		if err != nil {
			failed = append(failed, rs.Selector)
			continue
		}

		found, err := e.execute(tree, sel, rs.Multiple)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			failed = append(failed, rs.Selector)
			continue
		}
		segments = append(segments, found...)
	}

	if len(failed) > 0 {
		warnings = append(warnings, failedSelectorsWarning(failed))
	}

	content := make([]string, len(segments))
	partitions := make([]htmlsift.Partition, len(segments))
	for i, s := range segments {
		content[i] = s.Content
		partitions[i] = htmlsift.Partition{Selector: s.Selector, Position: s.Position}
	}

	return &htmlsift.Result{
		Content:    content,
		Digest:     digest.Compute(content, e.digest),
		Partitions: partitions,
		Warnings:   warnings,
	}, nil
}

// selector returns the precompiled selector for raw, compiling it if a
// custom resolver produced a selector that was not configured.
func (e *Extractor) selector(raw string) (Selector, error) {
	if sel, ok := e.selectors[raw]; ok {
		return sel, nil
	}
	return CompileSelector(raw)
}

// execute runs sel and renders each match in the configured format.
func (e *Extractor) execute(t *Tree, sel Selector, multiple bool) ([]htmlsift.Segment, error) {
	if e.format != htmlsift.FormatMarkdown {
		segments, _ := ExecuteSelector(t, sel, multiple)
		return segments, nil
	}

	nodes := selectNodes(t, sel, multiple)
	segments := make([]htmlsift.Segment, 0, len(nodes))
	for _, n := range nodes {
		var buf bytes.Buffer
		if err := html.Render(&buf, n); err != nil {
			return nil, htmlsift.Errorf(htmlsift.EINTERNAL, "failed to render %q match: %v", sel.raw, err)
		}
		md, err := e.converter.Convert(buf.String())
		if err != nil {
			return nil, htmlsift.Errorf(htmlsift.EINTERNAL, "failed to convert %q match: %v", sel.raw, err)
		}
		segments = append(segments, htmlsift.Segment{
			Content:  md,
			Selector: sel.raw,
			Position: t.Position(n),
		})
	}
	return segments, nil
}

// failedSelectorsWarning lists selectors as "`a`, `b`".
func failedSelectorsWarning(selectors []string) string {
	quoted := make([]string, len(selectors))
	for i, s := range selectors {
		quoted[i] = "`" + s + "`"
	}
	return htmlsift.FailedSelectorsWarning + strings.Join(quoted, ", ")
}
