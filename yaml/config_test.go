package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/htmlsift"
	"github.com/fwojciec/htmlsift/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses rules in declaration order", func(t *testing.T) {
		t.Parallel()

		src := `
format: markdown
digest: xxhash
rules:
  zeta.com:
    - pattern: "/**"
      contentSelector: main
  "*.example.com":
    - pattern: "/blog/*"
      contentSelector: article
      all: true
    - pattern: "/docs/**"
      contentSelector: "#content"
`
		cfg, err := yaml.ParseConfig(strings.NewReader(src))

		require.NoError(t, err)
		assert.Equal(t, htmlsift.FormatMarkdown, cfg.Format)
		assert.Equal(t, htmlsift.DigestXXHash, cfg.Digest)
		assert.Equal(t, htmlsift.RuleSet{
			{Domain: "zeta.com", Rules: []htmlsift.ExtractionRule{
				{Pattern: "/**", ContentSelector: "main"},
			}},
			{Domain: "*.example.com", Rules: []htmlsift.ExtractionRule{
				{Pattern: "/blog/*", ContentSelector: "article", All: true},
				{Pattern: "/docs/**", ContentSelector: "#content"},
			}},
		}, cfg.Rules)
	})

	t.Run("parses JSON documents", func(t *testing.T) {
		t.Parallel()

		src := `{"rules": {"example.com": [{"pattern": "/*", "contentSelector": "main", "all": false}]}}`

		cfg, err := yaml.ParseConfig(strings.NewReader(src))

		require.NoError(t, err)
		require.Len(t, cfg.Rules, 1)
		assert.Equal(t, "example.com", cfg.Rules[0].Domain)
		assert.Equal(t, "main", cfg.Rules[0].Rules[0].ContentSelector)
	})

	t.Run("parses parser options", func(t *testing.T) {
		t.Parallel()

		src := `
parser:
  fragment: true
  scripting: false
  charset: windows-1252
`
		cfg, err := yaml.ParseConfig(strings.NewReader(src))

		require.NoError(t, err)
		assert.True(t, cfg.Parser.Fragment)
		require.NotNil(t, cfg.Parser.Scripting)
		assert.False(t, *cfg.Parser.Scripting)
		assert.Equal(t, "windows-1252", cfg.Parser.Charset)
	})

	t.Run("returns empty config for empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ParseConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, cfg.Rules)
	})

	t.Run("accepts domain without rules", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ParseConfig(strings.NewReader("rules:\n  example.com:\n"))

		require.NoError(t, err)
		require.Len(t, cfg.Rules, 1)
		assert.Empty(t, cfg.Rules[0].Rules)
	})

	t.Run("resolves anchors and aliases", func(t *testing.T) {
		t.Parallel()

		src := `
rules:
  example.com: &shared
    - pattern: "/**"
      contentSelector: main
  example.org: *shared
`
		cfg, err := yaml.ParseConfig(strings.NewReader(src))

		require.NoError(t, err)
		require.Len(t, cfg.Rules, 2)
		assert.Equal(t, cfg.Rules[0].Rules, cfg.Rules[1].Rules)
	})
}

func TestParseConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		message string
	}{
		{
			name:    "malformed document",
			src:     "rules: [",
			message: "failed to parse config",
		},
		{
			name:    "config not a mapping",
			src:     "- a\n- b\n",
			message: "config must be a mapping",
		},
		{
			name:    "unknown top-level key",
			src:     "selectors: {}\n",
			message: `unknown config key "selectors"`,
		},
		{
			name:    "rules not a mapping",
			src:     "rules:\n  - example.com\n",
			message: "rules must be a mapping",
		},
		{
			name:    "rule list not a sequence",
			src:     "rules:\n  example.com: main\n",
			message: `domain "example.com": rules must be a list`,
		},
		{
			name:    "rule not a mapping",
			src:     "rules:\n  example.com:\n    - main\n",
			message: `domain "example.com" rule 0: rule must be a mapping`,
		},
		{
			name:    "missing pattern",
			src:     "rules:\n  example.com:\n    - contentSelector: main\n",
			message: `domain "example.com" rule 0: rule pattern required`,
		},
		{
			name:    "empty content selector",
			src:     "rules:\n  example.com:\n    - pattern: \"/*\"\n    - pattern: \"/a\"\n      contentSelector: \"\"\n",
			message: `domain "example.com" rule 0: rule content selector required`,
		},
		{
			name:    "non-string selector",
			src:     "rules:\n  example.com:\n    - pattern: \"/*\"\n      contentSelector: 42\n",
			message: `domain "example.com" rule 0: contentSelector must be a string`,
		},
		{
			name:    "non-boolean all",
			src:     "rules:\n  example.com:\n    - pattern: \"/*\"\n      contentSelector: main\n      all: \"true\"\n",
			message: `domain "example.com" rule 0: all must be a boolean`,
		},
		{
			name:    "unknown rule key",
			src:     "rules:\n  example.com:\n    - pattern: \"/*\"\n      selector: main\n",
			message: `domain "example.com" rule 0: unknown rule key "selector"`,
		},
		{
			name:    "unknown format",
			src:     "format: pdf\n",
			message: `unknown format "pdf"`,
		},
		{
			name:    "unknown digest",
			src:     "digest: sha1\n",
			message: `unknown digest algorithm "sha1"`,
		},
		{
			name:    "parser options not a mapping",
			src:     "parser: fast\n",
			message: "parser options must be a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := yaml.ParseConfig(strings.NewReader(tt.src))

			require.Error(t, err)
			assert.Equal(t, htmlsift.EINVALID, htmlsift.ErrorCode(err))
			assert.Contains(t, htmlsift.ErrorMessage(err), tt.message)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  example.com:\n    - pattern: \"/**\"\n      contentSelector: main\n"), 0o644))

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		require.Len(t, cfg.Rules, 1)
		assert.Equal(t, "example.com", cfg.Rules[0].Domain)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, htmlsift.ENOTFOUND, htmlsift.ErrorCode(err))
	})
}
