package htmlsift

// Format selects how a matched node is turned into segment content.
type Format string

// Supported segment formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// DigestAlgorithm selects the hash used for Result.Digest.
type DigestAlgorithm string

// Supported digest algorithms.
const (
	DigestMD5    DigestAlgorithm = "md5"
	DigestXXHash DigestAlgorithm = "xxhash"
)

// ParserOptions are passed through to the HTML tree parser.
type ParserOptions struct {
	// Fragment parses the buffer as a body fragment instead of a document.
	// Fragments have no html, head or body elements.
	Fragment bool `json:"fragment,omitempty" yaml:"fragment,omitempty"`

	// Scripting controls how noscript content is parsed. Nil means enabled.
	Scripting *bool `json:"scripting,omitempty" yaml:"scripting,omitempty"`

	// Charset forces a decoding label (e.g. "windows-1252"). When empty the
	// encoding is sniffed from the BOM and meta tags, defaulting to UTF-8.
	Charset string `json:"charset,omitempty" yaml:"charset,omitempty"`
}

// Config configures an Extractor.
type Config struct {
	Rules  RuleSet
	Parser ParserOptions
	Format Format
	Digest DigestAlgorithm
}

// Validate returns an error if the configuration is invalid.
// Empty Format and Digest select the defaults.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	switch c.Format {
	case "", FormatText, FormatMarkdown:
	default:
		return Errorf(EINVALID, "unknown format %q", c.Format)
	}
	switch c.Digest {
	case "", DigestMD5, DigestXXHash:
	default:
		return Errorf(EINVALID, "unknown digest algorithm %q", c.Digest)
	}
	return nil
}

// Extractor extracts configured content from HTML documents.
type Extractor interface {
	// Load parses buf once and extracts the content selected for url.
	// Unmatched selectors produce warnings, not errors.
	Load(buf []byte, url string) (*Result, error)

	// Supports reports whether documents of the given MIME type can be
	// handled by this extractor.
	Supports(mimeType string) bool
}
