// Package slog provides logging decorators for htmlsift services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlsift"
)

// Ensure LoggingExtractor implements htmlsift.Extractor.
var _ htmlsift.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging for each load.
type LoggingExtractor struct {
	next   htmlsift.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next htmlsift.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Load delegates to the wrapped extractor and logs the outcome. Each result
// warning is also logged at warn level.
func (e *LoggingExtractor) Load(buf []byte, url string) (*htmlsift.Result, error) {
	begin := time.Now()
	result, err := e.next.Load(buf, url)
	if err != nil {
		e.logger.Error("extract",
			"url", url,
			"bytes", len(buf),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}

	e.logger.Info("extract",
		"url", url,
		"bytes", len(buf),
		"segments", len(result.Content),
		"warnings", len(result.Warnings),
		"digest", result.Digest,
		"duration", time.Since(begin),
	)
	for _, w := range result.Warnings {
		e.logger.Warn("extract warning", "url", url, "warning", w)
	}
	return result, nil
}

// Supports delegates to the wrapped extractor.
func (e *LoggingExtractor) Supports(mimeType string) bool {
	return e.next.Supports(mimeType)
}
