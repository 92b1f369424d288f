package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlsift"
)

// Ensure LoggingConverter implements htmlsift.Converter.
var _ htmlsift.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   htmlsift.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next htmlsift.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter.
func (c *LoggingConverter) Convert(html string) (string, error) {
	begin := time.Now()
	out, err := c.next.Convert(html)
	if err != nil {
		c.logger.Debug("convert", "in", len(html), "duration", time.Since(begin), "error", err)
		return "", err
	}
	c.logger.Debug("convert", "in", len(html), "out", len(out), "duration", time.Since(begin))
	return out, nil
}
