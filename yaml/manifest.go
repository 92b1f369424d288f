package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/htmlsift"
	"gopkg.in/yaml.v3"
)

// ManifestEntry names one document of a batch run.
type ManifestEntry struct {
	URL      string `yaml:"url"`
	Path     string `yaml:"path"`
	MIMEType string `yaml:"mimeType,omitempty"`
}

// LoadManifest reads the batch manifest at path.
// Returns ENOTFOUND if the file does not exist.
func LoadManifest(path string) ([]ManifestEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, htmlsift.Errorf(htmlsift.ENOTFOUND, "manifest %q not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseManifest(f)
}

// ParseManifest decodes a list of manifest entries. Each entry needs a url
// and a path.
func ParseManifest(r io.Reader) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, htmlsift.Errorf(htmlsift.EINVALID, "failed to parse manifest: %v", err)
	}

	for i, e := range entries {
		if e.URL == "" {
			return nil, htmlsift.Errorf(htmlsift.EINVALID, "manifest entry %d: url required", i)
		}
		if e.Path == "" {
			return nil, htmlsift.Errorf(htmlsift.EINVALID, "manifest entry %d: path required", i)
		}
	}
	return entries, nil
}
