package rewriter

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eugenenazirov/replace-tokens/internal/charset"
	"github.com/eugenenazirov/replace-tokens/internal/input"
	"github.com/eugenenazirov/replace-tokens/internal/report"
	"github.com/eugenenazirov/replace-tokens/internal/tokens"
)

// EncodingResolver picks the concrete encoding for file content.
type EncodingResolver interface {
	Resolve(data []byte, mode input.FileEncoding) input.FileEncoding
}

// Rewriter substitutes tokens in files in place.
type Rewriter struct {
	resolver    EncodingResolver
	recorder    report.Recorder
	limiter     fileLimiter
	concurrency int
	logger      *zap.Logger

	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte, os.FileMode) error
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithResolver overrides the encoding resolver.
func WithResolver(resolver EncodingResolver) Option {
	return func(r *Rewriter) {
		r.resolver = resolver
	}
}

// WithRecorder sets where per-file outcomes are recorded.
func WithRecorder(recorder report.Recorder) Option {
	return func(r *Rewriter) {
		r.recorder = recorder
	}
}

// WithConcurrency caps the number of files processed at once. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(r *Rewriter) {
		r.concurrency = n
	}
}

// WithRateLimit throttles how many files are started per second. A rate of zero disables throttling.
func WithRateLimit(filesPerSecond float64, burst int) Option {
	return func(r *Rewriter) {
		r.limiter = newTokenBucketLimiter(filesPerSecond, burst)
	}
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Rewriter) {
		r.logger = logger
	}
}

// New constructs a Rewriter.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{
		resolver:  charset.NewResolver(),
		recorder:  report.NewMemoryRecorder(),
		logger:    zap.NewNop(),
		readFile:  os.ReadFile,
		writeFile: os.WriteFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recorder returns the recorder receiving per-file outcomes.
func (r *Rewriter) Recorder() report.Recorder {
	return r.recorder
}

// Apply rewrites every path concurrently. A failing file does not stop the
// others; the first error is returned once every file has been attempted.
// Files written before the failure stay written.
func (r *Rewriter) Apply(ctx context.Context, paths []string, mode input.FileEncoding, toks []tokens.Token) error {
	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for _, path := range paths {
		g.Go(func() error {
			return r.rewriteFile(ctx, path, mode, toks)
		})
	}

	return g.Wait()
}

func (r *Rewriter) rewriteFile(ctx context.Context, path string, mode input.FileEncoding, toks []tokens.Token) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rewrite %s: %w", path, err)
		}
	}

	data, err := r.readFile(path)
	if err != nil {
		return fmt.Errorf("rewrite %s: read: %w", path, err)
	}

	enc := r.resolver.Resolve(data, mode)

	body, tail := charset.Split(data, enc)
	text, err := charset.Decode(body, enc)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}

	text, replaced := tokens.ApplyAll(toks, text)

	out, err := charset.Encode(text, enc)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	out = append(out, tail...)

	if err := r.writeFile(path, out, 0o644); err != nil {
		return fmt.Errorf("rewrite %s: write: %w", path, err)
	}

	r.recorder.Record(report.Entry{
		Path:         path,
		Encoding:     enc,
		Replacements: replaced,
		Bytes:        len(out),
	})
	r.logger.Debug("file rewritten",
		zap.String("path", path),
		zap.String("encoding", string(enc)),
		zap.Int("replacements", replaced),
	)

	return nil
}
