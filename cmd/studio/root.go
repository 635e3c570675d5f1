package main

import (
	"fmt"

	"github.com/fwojciec/studio/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultURL = "http://localhost:8000"

// app holds the persistent flags and environment shared by all commands.
type app struct {
	getenv  func(string) string
	url     string
	verbose bool
	logFile string
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}
	root := &cobra.Command{
		Use:   "studio",
		Short: "Generate multi-channel content with the Content Creation Studio",
		Long: `Studio submits content briefs to the Content Creation Studio service and
follows the multi-agent workflow (intake, research, drafting, quality checks,
multi-channel writing and packaging) until the content package is ready.`,
		SilenceUsage: true,
	}

	url := getenv("STUDIO_URL")
	if url == "" {
		url = defaultURL
	}
	root.PersistentFlags().StringVar(&a.url, "url", url, "Studio service base URL (env STUDIO_URL)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write JSON logs to this file instead of stderr")

	root.AddCommand(
		newGenerateCmd(a),
		newAnalyzeCmd(a),
		newHealthCmd(a),
	)
	return root
}

// newLogger builds the command's logger. Logs go to --log-file as JSON when
// set. Otherwise they go to stderr in console form, unless quiet is set, in
// which case they are discarded so they cannot garble a full-screen UI.
func (a *app) newLogger(quiet bool) (*zap.Logger, error) {
	level := zap.WarnLevel
	if a.verbose {
		level = zap.DebugLevel
	}
	if a.logFile == "" && quiet {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if a.logFile != "" {
		cfg.OutputPaths = []string{a.logFile}
	} else {
		cfg.Encoding = "console"
		cfg.OutputPaths = []string{"stderr"}
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func (a *app) client(logger *zap.Logger) *api.Client {
	return api.New(api.WithBaseURL(a.url), api.WithLogger(logger))
}
