package mock

import (
	"context"

	"github.com/fwojciec/htmlsift"
)

var _ htmlsift.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of htmlsift.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(ctx context.Context, url string, result *htmlsift.Result) error
}

func (w *ResultWriter) WriteResult(ctx context.Context, url string, result *htmlsift.Result) error {
	return w.WriteResultFn(ctx, url, result)
}
