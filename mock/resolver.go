package mock

import "github.com/fwojciec/htmlsift"

var _ htmlsift.SelectorResolver = (*SelectorResolver)(nil)

// SelectorResolver is a mock implementation of htmlsift.SelectorResolver.
type SelectorResolver struct {
	ResolveFn func(url string) []htmlsift.ResolvedSelector
}

func (r *SelectorResolver) Resolve(url string) []htmlsift.ResolvedSelector {
	return r.ResolveFn(url)
}
