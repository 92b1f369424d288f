package mock

import "github.com/fwojciec/htmlsift"

var _ htmlsift.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of htmlsift.Extractor.
type Extractor struct {
	LoadFn     func(buf []byte, url string) (*htmlsift.Result, error)
	SupportsFn func(mimeType string) bool
}

func (e *Extractor) Load(buf []byte, url string) (*htmlsift.Result, error) {
	return e.LoadFn(buf, url)
}

func (e *Extractor) Supports(mimeType string) bool {
	return e.SupportsFn(mimeType)
}
