package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/htmlsift"
	"github.com/fwojciec/htmlsift/yaml"
	"golang.org/x/sync/errgroup"
)

// batchRecord is one output line of the batch command.
type batchRecord struct {
	URL    string           `json:"url"`
	Path   string           `json:"path"`
	Result *htmlsift.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Run executes the batch command. Documents are extracted concurrently and
// written one JSON object per line in manifest order. A failing document
// does not stop the others.
func (c *BatchCmd) Run(deps *Dependencies) error {
	entries, err := yaml.LoadManifest(c.Manifest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsift.ErrorMessage(err))
		return err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	base := filepath.Dir(c.Manifest)
	records := make([]batchRecord, len(entries))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = extractEntry(ctx, deps, base, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	var failed int
	for _, r := range records {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(records))
	}
	return nil
}

// extractEntry loads one manifest document and, when a writer is configured,
// stores the result. Relative paths are resolved against base.
func extractEntry(ctx context.Context, deps *Dependencies, base string, e yaml.ManifestEntry) batchRecord {
	rec := batchRecord{URL: e.URL, Path: e.Path}

	if e.MIMEType != "" && !deps.Extractor.Supports(e.MIMEType) {
		rec.Error = fmt.Sprintf("unsupported MIME type %q", e.MIMEType)
		return rec
	}

	path := e.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	result, err := deps.Extractor.Load(buf, e.URL)
	if err != nil {
		rec.Error = htmlsift.ErrorMessage(err)
		return rec
	}
	rec.Result = result

	if deps.Writer != nil {
		if err := deps.Writer.WriteResult(ctx, e.URL, result); err != nil {
			rec.Error = fmt.Sprintf("failed to write result: %v", err)
		}
	}
	return rec
}
