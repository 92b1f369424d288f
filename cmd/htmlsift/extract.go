package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/htmlsift"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if !deps.Extractor.Supports(c.MIMEType) {
		return htmlsift.Errorf(htmlsift.EINVALID, "unsupported MIME type %q", c.MIMEType)
	}

	buf, err := c.read(deps.Stdin)
	if err != nil {
		return err
	}

	result, err := deps.Extractor.Load(buf, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsift.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (c *ExtractCmd) read(stdin io.Reader) ([]byte, error) {
	if c.Path == "-" {
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return buf, nil
	}

	buf, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	return buf, nil
}
