package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/studio"
	bt "github.com/fwojciec/studio/bubbletea"
	"github.com/fwojciec/studio/goldmark"
	studiojson "github.com/fwojciec/studio/json"
	"github.com/fwojciec/studio/yaml"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	renderWidth  = 100
	previewWidth = 80
)

type generateOpts struct {
	app *app

	briefGlob string
	plain     bool
	render    bool
	out       string
	record    string

	topic    string
	audience string
	tone     string
	keywords string
	session  string
}

func newGenerateCmd(a *app) *cobra.Command {
	o := &generateOpts{app: a}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the content workflow for one or more briefs",
		Long: `Generate submits a content brief and follows the workflow until the content
package is ready.

Without --brief or brief flags an interactive form collects the brief. With
--brief every YAML file matching the pattern is run in turn, in plain mode.
The command exits non-zero when a run fails or the server closes the stream
before the package is ready.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.briefGlob, "brief", "", "YAML brief file or glob pattern (supports **)")
	f.BoolVar(&o.plain, "plain", false, "Print progress lines instead of the interactive UI")
	f.BoolVar(&o.render, "render", false, "Render the finished package for the terminal in plain mode")
	f.StringVarP(&o.out, "out", "o", "", "Write the finished package to this markdown file")
	f.StringVar(&o.record, "record", "", "Write a JSON record of each run to this file")
	f.StringVar(&o.topic, "topic", "", "Brief topic")
	f.StringVar(&o.audience, "audience", "", "Brief target audience")
	f.StringVar(&o.tone, "tone", "", "Brief tone")
	f.StringVar(&o.keywords, "keywords", "", "Brief keywords, comma separated")
	f.StringVar(&o.session, "session", "", "Resume an existing server session")
	return cmd
}

func (o *generateOpts) run(ctx context.Context, stdout, stderr io.Writer) error {
	briefs, err := o.briefs()
	if err != nil {
		return err
	}
	tui := !o.plain && len(briefs) <= 1
	logger, err := o.app.newLogger(tui)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := o.app.client(logger)
	if tui {
		return o.runTUI(ctx, client, briefs)
	}
	if len(briefs) == 0 {
		return fmt.Errorf("plain mode needs --brief or --topic, --audience, --tone and --keywords: %w", studio.ErrValidation)
	}
	return o.runPlain(ctx, client, briefs, stdout, stderr, logger)
}

// briefs collects the briefs to run. It returns none when neither a pattern
// nor any brief flag was given.
func (o *generateOpts) briefs() ([]studio.Brief, error) {
	if o.briefGlob != "" {
		entries, err := yaml.Load(o.briefGlob)
		if err != nil {
			return nil, err
		}
		briefs := make([]studio.Brief, len(entries))
		for i, e := range entries {
			briefs[i] = e.Brief
			if o.session != "" {
				briefs[i].SessionID = o.session
			}
		}
		return briefs, nil
	}
	b := studio.Brief{
		Topic:          o.topic,
		TargetAudience: o.audience,
		Tone:           o.tone,
		Keywords:       o.keywords,
		SessionID:      o.session,
	}
	if b == (studio.Brief{}) {
		return nil, nil
	}
	return []studio.Brief{b}, nil
}

func (o *generateOpts) runTUI(ctx context.Context, gen studio.Generator, briefs []studio.Brief) error {
	var opts []bt.Option
	if len(briefs) == 1 {
		opts = append(opts, bt.WithBrief(briefs[0]))
	}
	started := time.Now()
	final, err := bt.Run(ctx, bt.New(gen, studio.DefaultTheme(), opts...))
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	st := final.State()
	if final.Interrupted() {
		return errors.New("generation interrupted")
	}
	if len(st.Log) > 0 || st.Terminal() {
		if err := o.save(0, 1, final.Brief(), st, started, time.Now()); err != nil {
			return err
		}
	}
	if final.Err() != nil {
		return final.Err()
	}
	if st.Outcome == studio.OutcomeFailed || st.Outcome == studio.OutcomeClosed {
		return outcomeError(st)
	}
	return nil
}

func (o *generateOpts) runPlain(ctx context.Context, gen studio.Generator, briefs []studio.Brief, stdout, stderr io.Writer, logger *zap.Logger) error {
	n := len(briefs)
	var incomplete int
	for i, b := range briefs {
		if n > 1 {
			fmt.Fprintf(stderr, "==> [%d/%d] %s\n", i+1, n, b.Topic)
		}
		started := time.Now()
		run, err := gen.Generate(ctx, b)
		if err != nil {
			return err
		}
		st, err := follow(run, stderr)
		_ = run.Close()
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		o.report(stdout, stderr, st)
		if err := o.save(i, n, b, st, started, time.Now()); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return outcomeError(st)
		}
		if err := outcomeError(st); err != nil {
			if n == 1 {
				return err
			}
			logger.Warn("brief did not complete", zap.String("topic", b.Topic), zap.Stringer("outcome", st.Outcome))
			incomplete++
		}
	}
	if incomplete > 0 {
		return fmt.Errorf("%d of %d briefs did not complete", incomplete, n)
	}
	return nil
}

// follow drains run, printing each new log entry to w as it arrives, and
// returns the last snapshot.
func follow(run studio.Run, w io.Writer) (studio.State, error) {
	last := run.State()
	printed := len(last.Log)
	for {
		s, err := run.Next()
		if errors.Is(err, io.EOF) {
			return last, nil
		}
		if err != nil {
			return last, err
		}
		for _, e := range s.Log[printed:] {
			fmt.Fprintln(w, formatEntry(e))
		}
		printed = len(s.Log)
		last = s
	}
}

func formatEntry(e studio.ProgressEntry) string {
	if e.Kind == studio.EntryStatus {
		return "• " + e.Message
	}
	line := e.Author
	if st := studio.StageOf(e.Author); st != studio.StageNone {
		line = "[" + st.String() + "] " + line
	}
	if e.Preview == "" {
		return line
	}
	preview := strings.Join(strings.Fields(e.Preview), " ")
	return line + ": " + runewidth.Truncate(preview, previewWidth, "…")
}

func (o *generateOpts) report(stdout, stderr io.Writer, st studio.State) {
	switch st.Outcome {
	case studio.OutcomeCompleted:
		content := st.Content
		if o.render {
			content = goldmark.Render(content, renderWidth, studio.DefaultTheme())
		}
		fmt.Fprintln(stdout, content)
	case studio.OutcomeFailed:
		fmt.Fprintln(stderr, "✗ generation failed: "+st.Message)
	case studio.OutcomeClosed:
		fmt.Fprintln(stderr, "! server closed the stream before completing")
	default:
		fmt.Fprintln(stderr, "! cancelled")
	}
}

// save writes the package and the run record for brief i of n.
func (o *generateOpts) save(i, n int, b studio.Brief, st studio.State, started, finished time.Time) error {
	if o.out != "" && st.Outcome == studio.OutcomeCompleted {
		path := numbered(o.out, i, n)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(st.Content), 0o644); err != nil {
			return fmt.Errorf("write package: %w", err)
		}
	}
	if o.record != "" {
		rec := studio.Record{Brief: b, State: st, StartedAt: started, FinishedAt: finished}
		if err := studiojson.Save(numbered(o.record, i, n), rec); err != nil {
			return fmt.Errorf("save record: %w", err)
		}
	}
	return nil
}

// numbered returns path unchanged for a single brief and with a 1-based
// index before the extension otherwise.
func numbered(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

func outcomeError(st studio.State) error {
	switch st.Outcome {
	case studio.OutcomeCompleted:
		return nil
	case studio.OutcomeFailed:
		return fmt.Errorf("generation failed: %s", st.Message)
	case studio.OutcomeClosed:
		return errors.New("server closed the stream before completing")
	default:
		return errors.New("generation cancelled")
	}
}
