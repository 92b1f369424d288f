package mock

import "github.com/fwojciec/htmlsift"

var _ htmlsift.Converter = (*Converter)(nil)

// Converter is a mock implementation of htmlsift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
