package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/studio"
	"github.com/fwojciec/studio/gemini"
	"github.com/fwojciec/studio/goldmark"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
)

type analyzeOpts struct {
	app *app

	gemini bool
	model  string
	apiKey string
	file   string
	render bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	o := &analyzeOpts{app: a}
	cmd := &cobra.Command{
		Use:   "analyze [text | -]",
		Short: "Analyze a text snippet",
		Long: `Analyze sends a text snippet for a one-shot analysis: word count,
readability, tone, hashtag suggestions and improvements.

The text comes from the arguments, from --file, or from stdin when the only
argument is "-" or no argument is given. With --gemini the analysis runs
directly against the Gemini API using GEMINI_API_KEY instead of the studio
service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.gemini, "gemini", false, "Analyze directly with the Gemini API")
	f.StringVar(&o.model, "model", "", "Gemini model ID (with --gemini)")
	f.StringVar(&o.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	f.StringVarP(&o.file, "file", "f", "", "Read the text from this file")
	f.BoolVar(&o.render, "render", false, "Render the analysis for the terminal")
	return cmd
}

func (o *analyzeOpts) run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	text, err := o.text(args, stdin)
	if err != nil {
		return err
	}
	if err := studio.ValidateText(text); err != nil {
		return err
	}

	logger, err := o.app.newLogger(false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	analyzer, err := o.analyzer(ctx)
	if err != nil {
		return err
	}
	if analyzer == nil {
		analyzer = o.app.client(logger)
	}

	fmt.Fprintf(stderr, "Analyzing %d characters...\n", uniseg.GraphemeClusterCount(text))
	analysis, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return err
	}
	if o.render {
		analysis = goldmark.Render(analysis, renderWidth, studio.DefaultTheme())
	}
	fmt.Fprintln(stdout, analysis)
	return nil
}

// analyzer returns the Gemini analyzer when requested, or nil to use the
// studio service.
func (o *analyzeOpts) analyzer(ctx context.Context) (studio.Analyzer, error) {
	if !o.gemini {
		return nil, nil
	}
	key := o.apiKey
	if key == "" {
		key = o.app.getenv("GEMINI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("--gemini needs --api-key or GEMINI_API_KEY")
	}
	var opts []gemini.Option
	if o.model != "" {
		opts = append(opts, gemini.WithModel(o.model))
	}
	return gemini.New(ctx, key, opts...)
}

func (o *analyzeOpts) text(args []string, stdin io.Reader) (string, error) {
	switch {
	case o.file != "" && len(args) > 0:
		return "", fmt.Errorf("give the text as arguments or --file, not both: %w", studio.ErrValidation)
	case o.file != "":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return "", fmt.Errorf("read text: %w", err)
		}
		return string(data), nil
	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return strings.Join(args, " "), nil
	}
}
