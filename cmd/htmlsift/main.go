package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlsift"
	"github.com/fwojciec/htmlsift/fs"
	"github.com/fwojciec/htmlsift/glob"
	"github.com/fwojciec/htmlsift/goquery"
	"github.com/fwojciec/htmlsift/htmltomarkdown"
	siftslog "github.com/fwojciec/htmlsift/slog"
	"github.com/fwojciec/htmlsift/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when a document path is "-".
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmlsift"),
		kong.Description("Extract content from HTML documents using per-site selector rules"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'htmlsift --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.config()
	if err != nil {
		if htmlsift.ErrorCode(err) == htmlsift.ENOTFOUND {
			fmt.Fprintln(stderr, "Hint: Set HTMLSIFT_RULES or pass --rules to point at a rules file")
		}
		return fmt.Errorf("failed to load rules: %w", err)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	converter := siftslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger)
	extractor, err := goquery.NewExtractor(*cfg, goquery.WithConverter(converter))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	deps.Extractor = siftslog.NewLoggingExtractor(extractor, logger)

	matcher, err := glob.NewMatcher(cfg.Rules)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	deps.Resolver = matcher

	if cli.Batch.Out != "" {
		deps.Writer = fs.NewWriter(cli.Batch.Out, cfg.Format)
	}

	return kongCtx.Run(deps)
}

// config loads the rules file, if any, and applies flag overrides.
func (c *CLI) config() (*htmlsift.Config, error) {
	cfg := &htmlsift.Config{}
	if c.Rules != "" {
		var err error
		if cfg, err = yaml.LoadConfig(c.Rules); err != nil {
			return nil, err
		}
	}

	if c.Format != "" {
		cfg.Format = htmlsift.Format(c.Format)
	}
	if c.Digest != "" {
		cfg.Digest = htmlsift.DigestAlgorithm(c.Digest)
	}
	if c.Fragment {
		cfg.Parser.Fragment = true
	}
	if c.Charset != "" {
		cfg.Parser.Charset = c.Charset
	}
	return cfg, nil
}
