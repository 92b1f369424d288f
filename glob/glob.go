// Package glob resolves extraction rules for a URL. Domains are matched with
// wildcard patterns against the URL host and rule patterns are matched as
// globs against the URL path, both using github.com/gobwas/glob.
//
// Domain patterns use "." as the separator: "*" matches within a single
// label, so "*.example.com" matches "docs.example.com" but neither
// "example.com" nor "a.b.example.com"; "**" crosses labels. Domain matching
// is case-insensitive.
//
// Path patterns use "/" as the separator: "*" and "?" stay within one path
// segment, "**" crosses segments, and "[abc]", "[!abc]", "[a-z]" and
// "{a,b}" behave as in conventional globs.
package glob

import (
	"net/url"
	"strings"

	"github.com/fwojciec/htmlsift"
	"github.com/gobwas/glob"
)

// Ensure Matcher implements htmlsift.SelectorResolver at compile time.
var _ htmlsift.SelectorResolver = (*Matcher)(nil)

// MatchDomain reports whether the host of rawURL matches the domain pattern.
// Invalid patterns never match.
func MatchDomain(pattern, rawURL string) bool {
	g, err := compileDomain(pattern)
	if err != nil {
		return false
	}
	return g.Match(Host(rawURL))
}

// MatchPath reports whether path matches the glob pattern.
// Invalid patterns never match.
func MatchPath(pattern, path string) bool {
	g, err := compilePath(pattern)
	if err != nil {
		return false
	}
	return g.Match(path)
}

// Host returns the lower-cased hostname of rawURL without the port.
// If rawURL is not a well-formed absolute URL the lower-cased raw string
// is returned instead.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Hostname())
}

// URLPath returns the path component of rawURL, or "/" when the path is
// empty. If rawURL is not a well-formed absolute URL the raw string is
// returned unchanged so it can still be matched.
func URLPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return rawURL
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

// ResolveSelectors returns the selectors of every rule whose domain and path
// patterns both match rawURL, in domain declaration order and then rule
// order. It returns an empty slice when nothing matches.
func ResolveSelectors(rawURL string, rules htmlsift.RuleSet) []htmlsift.ResolvedSelector {
	path := URLPath(rawURL)
	selectors := []htmlsift.ResolvedSelector{}
	for _, d := range rules {
		if !MatchDomain(d.Domain, rawURL) {
			continue
		}
		for _, r := range d.Rules {
			if MatchPath(r.Pattern, path) {
				selectors = append(selectors, htmlsift.ResolvedSelector{
					Selector: r.ContentSelector,
					Multiple: r.All,
				})
			}
		}
	}
	return selectors
}

// Matcher resolves selectors against patterns compiled once per RuleSet.
// It is immutable and safe for concurrent use.
type Matcher struct {
	domains []domainMatcher
}

type domainMatcher struct {
	glob  glob.Glob
	rules []ruleMatcher
}

type ruleMatcher struct {
	glob     glob.Glob
	selector htmlsift.ResolvedSelector
}

// NewMatcher validates rules and compiles every domain and path pattern.
// Returns EINVALID if a rule is malformed or a pattern does not compile.
func NewMatcher(rules htmlsift.RuleSet) (*Matcher, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{domains: make([]domainMatcher, 0, len(rules))}
	for _, d := range rules {
		dg, err := compileDomain(d.Domain)
		if err != nil {
			return nil, htmlsift.Errorf(htmlsift.EINVALID, "invalid domain pattern %q: %v", d.Domain, err)
		}

		dm := domainMatcher{glob: dg, rules: make([]ruleMatcher, 0, len(d.Rules))}
		for i, r := range d.Rules {
			pg, err := compilePath(r.Pattern)
			if err != nil {
				return nil, htmlsift.Errorf(htmlsift.EINVALID, "domain %q rule %d: invalid pattern %q: %v", d.Domain, i, r.Pattern, err)
			}
			dm.rules = append(dm.rules, ruleMatcher{
				glob:     pg,
				selector: htmlsift.ResolvedSelector{Selector: r.ContentSelector, Multiple: r.All},
			})
		}
		m.domains = append(m.domains, dm)
	}
	return m, nil
}

// Resolve returns the selectors that apply to rawURL.
// It has the same semantics as ResolveSelectors.
func (m *Matcher) Resolve(rawURL string) []htmlsift.ResolvedSelector {
	host := Host(rawURL)
	path := URLPath(rawURL)

	selectors := []htmlsift.ResolvedSelector{}
	for _, d := range m.domains {
		if !d.glob.Match(host) {
			continue
		}
		for _, r := range d.rules {
			if r.glob.Match(path) {
				selectors = append(selectors, r.selector)
			}
		}
	}
	return selectors
}

func compileDomain(pattern string) (glob.Glob, error) {
	return glob.Compile(strings.ToLower(pattern), '.')
}

func compilePath(pattern string) (glob.Glob, error) {
	return glob.Compile(pattern, '/')
}
