package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/htmlsift"
	"github.com/fwojciec/htmlsift/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "simple path",
			url:  "https://example.com/docs/api/users",
			want: "example.com/docs/api/users.txt",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/docs/",
			want: "example.com/docs/index.txt",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			want: "example.com/index.txt",
		},
		{
			name: "root without trailing slash",
			url:  "https://example.com",
			want: "example.com/index.txt",
		},
		{
			name: "ignores query string and fragment",
			url:  "https://example.com/docs/api?version=2#section",
			want: "example.com/docs/api.txt",
		},
		{
			name: "drops port and lowercases host",
			url:  "https://Docs.Example.com:8443/a",
			want: "docs.example.com/a.txt",
		},
		{
			name: "cannot escape host directory",
			url:  "https://example.com/../../etc/passwd",
			want: "example.com/etc/passwd.txt",
		},
		{
			name:    "relative URL",
			url:     "/docs/api",
			wantErr: true,
		},
		{
			name:    "invalid URL",
			url:     "://bad",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url, ".txt")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, htmlsift.EINVALID, htmlsift.ErrorCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	t.Run("formats result with frontmatter", func(t *testing.T) {
		t.Parallel()

		result := &htmlsift.Result{
			Content: []string{"First", "Second"},
			Digest:  "abc",
		}

		got := fs.FormatResult("https://example.com/a", result)

		want := `---
source: https://example.com/a
digest: abc
segments: 2
---

First

Second`

		assert.Equal(t, want, got)
	})

	t.Run("includes warning count", func(t *testing.T) {
		t.Parallel()

		result := &htmlsift.Result{
			Content:  []string{"x"},
			Warnings: []string{htmlsift.DefaultSelectorWarning},
		}

		got := fs.FormatResult("https://example.com/", result)

		assert.Contains(t, got, "\nwarnings: 1\n")
	})
}

func TestWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("writes text result under host directory", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir, htmlsift.FormatText)

		err := w.WriteResult(context.Background(), "https://example.com/docs/api/users", &htmlsift.Result{
			Content: []string{"Users"},
			Digest:  "d",
		})

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(baseDir, "example.com", "docs", "api", "users.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "source: https://example.com/docs/api/users")
		assert.Contains(t, string(content), "\n\nUsers")
	})

	t.Run("uses md extension for markdown", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir, htmlsift.FormatMarkdown)

		err := w.WriteResult(context.Background(), "https://example.com/docs/", &htmlsift.Result{Content: []string{"# Docs"}})

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(baseDir, "example.com", "docs", "index.md"))
		require.NoError(t, err)
	})

	t.Run("rejects nil result", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir(), htmlsift.FormatText)

		err := w.WriteResult(context.Background(), "https://example.com", nil)

		assert.Equal(t, htmlsift.EINVALID, htmlsift.ErrorCode(err))
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir(), htmlsift.FormatText)

		err := w.WriteResult(context.Background(), "not a url", &htmlsift.Result{})

		assert.Equal(t, htmlsift.EINVALID, htmlsift.ErrorCode(err))
	})
}
