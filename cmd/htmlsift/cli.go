package main

import (
	"context"
	"io"

	"github.com/fwojciec/htmlsift"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor htmlsift.Extractor
	Resolver  htmlsift.SelectorResolver
	Writer    htmlsift.ResultWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Rules    string `short:"r" type:"path" env:"HTMLSIFT_RULES" help:"Rules file (YAML or JSON)"`
	Format   string `short:"f" help:"Segment format: text or markdown (overrides rules file)"`
	Digest   string `help:"Digest algorithm: md5 or xxhash (overrides rules file)"`
	Fragment bool   `help:"Parse documents as body fragments"`
	Charset  string `help:"Force the document character set (e.g. windows-1252)"`
	Verbose  bool   `short:"v" help:"Log extraction details to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract content from one HTML document"`
	Batch   BatchCmd   `cmd:"" help:"Extract content from the documents listed in a manifest"`
	Match   MatchCmd   `cmd:"" help:"Show the selectors that apply to a URL"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" help:"Document URL used for rule matching"`
	Path     string `arg:"" help:"HTML file to read ('-' for stdin)"`
	MIMEType string `name:"mime-type" default:"text/html" help:"Document MIME type"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Manifest    string `arg:"" type:"path" help:"Manifest listing url and path for each document"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
	Out         string `short:"o" type:"path" help:"Also write each result as a file under this directory"`
}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	URL string `arg:"" help:"URL to resolve"`
}
