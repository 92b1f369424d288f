// Package htmltomarkdown renders matched nodes as Markdown segments.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/htmlsift"
)

// Ensure Converter implements htmlsift.Converter at compile time.
var _ htmlsift.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. It is safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with CommonMark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms the outer HTML of a matched node into Markdown.
// Nodes without content convert to an empty string so an empty match still
// yields a segment.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", htmlsift.Errorf(htmlsift.EINTERNAL, "failed to convert HTML to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
