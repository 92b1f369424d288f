package htmlsift

// DefaultSelector is used when no extraction rule matches a URL.
var DefaultSelector = ResolvedSelector{Selector: "body", Multiple: false}

// ExtractionRule maps a URL path glob to a CSS selector.
type ExtractionRule struct {
	// Pattern is a glob matched against the URL path (e.g. "/blog/**").
	Pattern string `json:"pattern" yaml:"pattern"`

	// ContentSelector is the CSS selector whose matched nodes become segments.
	ContentSelector string `json:"contentSelector" yaml:"contentSelector"`

	// All extracts every matching node instead of only the first one.
	All bool `json:"all,omitempty" yaml:"all,omitempty"`
}

// Validate returns an error if the rule contains invalid fields.
func (r *ExtractionRule) Validate() error {
	if r.Pattern == "" {
		return Errorf(EINVALID, "rule pattern required")
	}
	if r.ContentSelector == "" {
		return Errorf(EINVALID, "rule content selector required")
	}
	return nil
}

// DomainRules is the ordered list of rules scoped to one domain wildcard.
type DomainRules struct {
	Domain string           `json:"domain"`
	Rules  []ExtractionRule `json:"rules"`
}

// RuleSet maps domain wildcards to extraction rules. It is a slice rather
// than a map because declaration order determines output order.
type RuleSet []DomainRules

// Validate returns an error if any domain or rule is invalid.
func (rs RuleSet) Validate() error {
	seen := make(map[string]bool, len(rs))
	for _, d := range rs {
		if d.Domain == "" {
			return Errorf(EINVALID, "rule domain required")
		}
		if seen[d.Domain] {
			return Errorf(EINVALID, "duplicate rule domain %q", d.Domain)
		}
		seen[d.Domain] = true

		for i := range d.Rules {
			if err := d.Rules[i].Validate(); err != nil {
				return Errorf(EINVALID, "domain %q rule %d: %s", d.Domain, i, ErrorMessage(err))
			}
		}
	}
	return nil
}

// ResolvedSelector is a selector that applies to a specific URL.
type ResolvedSelector struct {
	Selector string
	Multiple bool
}

// SelectorResolver returns the selectors that apply to a URL.
type SelectorResolver interface {
	// Resolve returns the selectors in rule order. An empty result is not
	// an error; callers fall back to DefaultSelector.
	Resolve(url string) []ResolvedSelector
}
