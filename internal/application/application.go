package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/eugenenazirov/replace-tokens/internal/config"
	"github.com/eugenenazirov/replace-tokens/internal/input"
	"github.com/eugenenazirov/replace-tokens/internal/report"
	"github.com/eugenenazirov/replace-tokens/internal/rewriter"
	"github.com/eugenenazirov/replace-tokens/internal/tokens"
	"github.com/eugenenazirov/replace-tokens/internal/variables"
)

const (
	msgInputParsed   = "The input has been parsed"
	msgNoReplacement = "No replacement data was found. Please check the input variables"
	msgAllReplaced   = "All tokens have been replaced"
)

// ConfigSource supplies the raw run configuration.
type ConfigSource interface {
	Load() (config.Config, error)
}

// FileFinder expands target patterns into file paths.
type FileFinder interface {
	Find(patterns string, followSymlinks bool) ([]string, error)
}

// ActionInput is the parsed input of a single run.
type ActionInput struct {
	FilePaths    []string
	FileEncoding input.FileEncoding
	TokenPrefix  string
	TokenSuffix  string
	Variables    *variables.Set
}

// Outcome reports how a run ended.
type Outcome int

const (
	OutcomeReplaced Outcome = iota
	OutcomeNoWork
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReplaced:
		return "replaced"
	case OutcomeNoWork:
		return "no-work"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// App wires configuration, file discovery and the rewriter for one run.
type App struct {
	source      ConfigSource
	finder      FileFinder
	logger      *zap.Logger
	recorder    report.Recorder
	rewriteOpts []rewriter.Option
}

// Option configures an App.
type Option func(*App)

// WithRecorder sets the recorder receiving per-file outcomes.
func WithRecorder(recorder report.Recorder) Option {
	return func(a *App) {
		a.recorder = recorder
	}
}

// WithRewriterOptions appends options applied to the rewriter after the
// configured concurrency and rate limit.
func WithRewriterOptions(opts ...rewriter.Option) Option {
	return func(a *App) {
		a.rewriteOpts = append(a.rewriteOpts, opts...)
	}
}

// New initializes the application with its collaborators.
func New(source ConfigSource, finder FileFinder, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		source:   source,
		finder:   finder,
		logger:   logger,
		recorder: report.NewMemoryRecorder(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Recorder returns the recorder holding the per-file outcomes of the last run.
func (a *App) Recorder() report.Recorder {
	return a.recorder
}

// Run performs one replacement run. Any error is logged once and reported
// as OutcomeFailed.
func (a *App) Run(ctx context.Context) Outcome {
	cfg, in, err := a.parseInput()
	if err != nil {
		return a.fail(err)
	}
	a.logger.Debug(msgInputParsed,
		zap.Int("files", len(in.FilePaths)),
		zap.String("encoding", string(in.FileEncoding)),
		zap.Int("variables", in.Variables.Len()),
	)

	if in.Variables.Len() == 0 {
		a.logger.Warn(msgNoReplacement)
		return OutcomeNoWork
	}

	toks := tokens.Compile(in.TokenPrefix, in.TokenSuffix, in.Variables)

	opts := []rewriter.Option{
		rewriter.WithRecorder(a.recorder),
		rewriter.WithLogger(a.logger),
		rewriter.WithConcurrency(cfg.Concurrency),
		rewriter.WithRateLimit(cfg.RateLimitFPS, cfg.RateLimitBurst),
	}
	rw := rewriter.New(append(opts, a.rewriteOpts...)...)

	if err := rw.Apply(ctx, in.FilePaths, in.FileEncoding, toks); err != nil {
		return a.fail(err)
	}

	summary := a.recorder.Summary()
	a.logger.Debug(msgAllReplaced,
		zap.Int("files", summary.Files),
		zap.Int("replacements", summary.Replacements),
		zap.Int("bytes", summary.Bytes),
	)
	return OutcomeReplaced
}

// parseInput collects the run input: file paths first, then encoding,
// delimiters and finally the merged variables.
func (a *App) parseInput() (config.Config, ActionInput, error) {
	cfg, err := a.source.Load()
	if err != nil {
		return config.Config{}, ActionInput{}, err
	}

	paths, err := a.finder.Find(cfg.Target, cfg.FollowSymbolicLinks)
	if err != nil {
		return config.Config{}, ActionInput{}, err
	}
	if len(paths) == 0 {
		return config.Config{}, ActionInput{}, input.NewError(input.Target, "no files were found")
	}

	vars, warnings, err := variables.Resolve(variables.Sources{
		JSON:       cfg.VariablesJSON,
		SecretJSON: cfg.VariablesSecretJSON,
		Lines:      cfg.Variables,
	})
	if err != nil {
		return config.Config{}, ActionInput{}, err
	}
	for _, w := range warnings {
		a.logger.Warn(w.String())
	}

	return cfg, ActionInput{
		FilePaths:    paths,
		FileEncoding: cfg.Encoding,
		TokenPrefix:  cfg.TokenPrefix,
		TokenSuffix:  cfg.TokenSuffix,
		Variables:    vars,
	}, nil
}

func (a *App) fail(err error) Outcome {
	a.logger.Error(err.Error())
	return OutcomeFailed
}
