package htmlsift

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms the outer HTML of a matched node into Markdown.
	Convert(html string) (string, error)
}
