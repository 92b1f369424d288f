// Package fs writes extraction results to the local filesystem.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/htmlsift"
)

// URLToPath converts a document URL to a relative file path rooted at the
// URL's host. ext is appended to the last segment.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.txt
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", htmlsift.Errorf(htmlsift.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Hostname() == "" {
		return "", htmlsift.Errorf(htmlsift.EINVALID, "URL %q has no host", rawURL)
	}

	host := strings.ToLower(u.Hostname())
	p := u.Path

	// Root or trailing slash → index
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index"
	}

	// Cleaning against "/" drops any ".." that would escape the host directory.
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	return host + "/" + p + ext, nil
}

// FormatResult formats a result with YAML frontmatter followed by its
// segments separated by blank lines.
func FormatResult(rawURL string, result *htmlsift.Result) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(rawURL)
	b.WriteString("\ndigest: ")
	b.WriteString(result.Digest)
	b.WriteString("\nsegments: ")
	b.WriteString(strconv.Itoa(len(result.Content)))
	if len(result.Warnings) > 0 {
		b.WriteString("\nwarnings: ")
		b.WriteString(strconv.Itoa(len(result.Warnings)))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(strings.Join(result.Content, "\n\n"))
	return b.String()
}

// Ensure Writer implements htmlsift.ResultWriter at compile time.
var _ htmlsift.ResultWriter = (*Writer)(nil)

// Writer writes results as files to a directory.
type Writer struct {
	baseDir string
	ext     string
}

// NewWriter creates a new Writer that writes to the given base directory.
// Markdown results get a .md extension, text results .txt.
func NewWriter(baseDir string, format htmlsift.Format) *Writer {
	ext := ".txt"
	if format == htmlsift.FormatMarkdown {
		ext = ".md"
	}
	return &Writer{baseDir: baseDir, ext: ext}
}

// WriteResult writes a result to disk under a path derived from url.
func (w *Writer) WriteResult(ctx context.Context, rawURL string, result *htmlsift.Result) error {
	if result == nil {
		return htmlsift.Errorf(htmlsift.EINVALID, "result required")
	}

	relPath, err := URLToPath(rawURL, w.ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatResult(rawURL, result)), 0644)
}
