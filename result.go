package htmlsift

import "context"

// DigestSeparator joins segment text before hashing. It does not occur in
// text extracted from ordinary HTML, so differently segmented content cannot
// collide once concatenated.
const DigestSeparator = "\n\n\n\n"

// Warning texts attached to a Result.
const (
	DefaultSelectorWarning = "no extraction rule matched the URL; used the default selector `body`, which may include redundant content"
	FailedSelectorsWarning = "failed to extract content with selectors: "
)

// Position locates a node within the parsed document.
// It is used for traceability only, never for identity.
type Position struct {
	// Path is an element path such as "/html[1]/body[1]/article[2]".
	Path string `json:"path"`

	// Index is the element's zero-based ordinal in document order.
	Index int `json:"index"`
}

// Segment is the content of one matched node.
type Segment struct {
	Content  string
	Selector string
	Position Position
}

// Partition links a content entry back to the selector and node it came from.
type Partition struct {
	Selector string   `json:"selector"`
	Position Position `json:"position"`
}

// Result is the outcome of extracting one document.
// Content and Partitions always have the same length.
type Result struct {
	Content    []string    `json:"content"`
	Digest     string      `json:"digest"`
	Partitions []Partition `json:"partitions"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// ResultWriter persists extraction results.
type ResultWriter interface {
	// WriteResult stores the result extracted for url.
	WriteResult(ctx context.Context, url string, result *Result) error
}
