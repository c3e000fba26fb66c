// Package service wires the domain components into the batch pipeline:
// load, extract, aggregate, per-thread outcome and management summaries,
// season statistics, scoring and export.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rollcall/internal/adapters/export"
	"github.com/okian/rollcall/internal/adapters/worker"
	"github.com/okian/rollcall/internal/config"
	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/extract"
	"github.com/okian/rollcall/internal/domain/management"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/outcome"
	"github.com/okian/rollcall/internal/domain/pattern"
	"github.com/okian/rollcall/internal/domain/resolve"
	"github.com/okian/rollcall/internal/domain/scoring"
	"github.com/okian/rollcall/internal/domain/sentiment"
	"github.com/okian/rollcall/pkg/logger"
	"github.com/okian/rollcall/pkg/metrics"
)

// Stage names used for duration metrics.
const (
	StageLoad      = "load"
	StageExtract   = "extract"
	StageAggregate = "aggregate"
	StageThreads   = "threads"
	StageSeason    = "season"
	StageScore     = "score"
	StageExport    = "export"
)

// Thread failure reasons.
const (
	reasonNoMetadata = "no_metadata"
	reasonNoGame     = "no_matching_game"
	reasonNoResult   = "no_result"
	reasonBadDate    = "invalid_date"
	reasonOther      = "other"
)

// Service runs the pipeline for one configuration.
type Service struct {
	mu sync.RWMutex

	cfg        *config.Config
	classifier sentiment.Classifier
	runID      string

	published   *Report
	publishedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClassifier replaces the lexicon sentiment classifier.
func WithClassifier(c sentiment.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// New constructs a Service for cfg.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:        cfg,
		classifier: sentiment.NewLexicon(cfg.PositiveWords, cfg.NegativeWords),
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))
	return s
}

// RunID identifies this run in logs and the manifest line.
func (s *Service) RunID() string { return s.runID }

// ThreadReport is the per-thread part of a run.
type ThreadReport struct {
	Thread  model.ThreadInfo
	Table   *aggregate.Table
	Matrix  *aggregate.Matrix
	Outcome model.Outcome
	Game    management.GameSummary
	Err     error // outcome lookup failure; the thread is reported as Unknown
}

// Report is everything a run produced.
type Report struct {
	RunID    string
	Matrix   *aggregate.Matrix
	Totals   *aggregate.Table
	Mentions []model.Mention
	Threads  []ThreadReport
	Season   *management.SeasonSummary
	Scores   *scoring.Report // nil without a ground-truth sample
}

// Results lists each thread with its outcome.
func (r *Report) Results() []export.GameResult {
	out := make([]export.GameResult, 0, len(r.Threads))
	for _, t := range r.Threads {
		out = append(out, export.GameResult{Thread: t.Thread, Outcome: t.Outcome})
	}
	return out
}

// Failed counts threads whose outcome lookup failed.
func (r *Report) Failed() int {
	n := 0
	for _, t := range r.Threads {
		if t.Err != nil {
			n++
		}
	}
	return n
}

// Run loads the inputs, processes them and exports every table.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	s.logger.Info(ctx, "run started", logger.String("team", s.cfg.Team))

	in, err := timed(StageLoad, func() (*Inputs, error) { return s.Load(ctx) })
	if err != nil {
		return nil, err
	}
	report, err := s.Process(ctx, in)
	if err != nil {
		return nil, err
	}
	if _, err := timed(StageExport, func() (struct{}, error) { return struct{}{}, s.Export(ctx, report) }); err != nil {
		return nil, err
	}
	if s.cfg.MetricsPath != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsPath); err != nil {
			s.logger.Warn(ctx, "metrics flush failed", logger.Error(err))
		}
	}

	s.logger.Info(ctx, "run finished",
		logger.Int("threads", len(report.Threads)),
		logger.Int("failed_threads", report.Failed()),
		logger.String("output_dir", s.cfg.OutputDir),
		logger.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return report, nil
}

// Process runs every in-memory stage on in.
func (s *Service) Process(ctx context.Context, in *Inputs) (*Report, error) {
	if in.Roster == nil {
		return nil, fmt.Errorf("%w: roster", ErrMissingInput)
	}
	set := pattern.Build(in.Roster, pattern.WithWordBoundaries(s.cfg.WordBoundaries))
	stop := pattern.NewStopWords(in.StopWords...)
	resolver := resolve.New(in.Roster)
	identities := in.Roster.Names()
	report := &Report{RunID: s.runID}

	var err error
	report.Mentions, err = timed(StageExtract, func() ([]model.Mention, error) {
		x := extract.New(set, stop, extract.WithLogger(s.logger.Named("extract")))
		return x.ExtractAll(ctx, in.Comments)
	})
	if err != nil {
		return nil, err
	}

	_, _ = timed(StageAggregate, func() (struct{}, error) {
		report.Matrix = aggregate.ByComment(in.Comments, report.Mentions, resolver, identities)
		report.Totals = aggregate.Totals(report.Mentions, resolver, identities)
		return struct{}{}, nil
	})
	s.logger.Info(ctx, "mentions aggregated",
		logger.Int("comments", report.Matrix.Len()),
		logger.Int("surfaces", len(report.Totals.Surfaces)),
	)

	report.Threads, err = timed(StageThreads, func() ([]ThreadReport, error) {
		return s.threads(ctx, in, report, resolver)
	})
	if err != nil {
		return nil, err
	}

	report.Season, _ = timed(StageSeason, func() (*management.SeasonSummary, error) {
		games := make([]management.GameSummary, 0, len(report.Threads))
		for _, t := range report.Threads {
			games = append(games, t.Game)
		}
		return management.Season(games, in.Roster.Management()), nil
	})

	if in.Truth != nil {
		report.Scores, err = timed(StageScore, func() (*scoring.Report, error) {
			return s.scoreSample(ctx, set, stop, resolver, in.Truth)
		})
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

// threads builds the per-thread reports on the worker pool. Results keep the
// first-seen order of threads in the comment table.
func (s *Service) threads(ctx context.Context, in *Inputs, report *Report, resolver *resolve.Resolver) ([]ThreadReport, error) {
	matcher, err := s.matcher(in)
	if err != nil {
		return nil, err
	}
	info := make(map[int64]model.ThreadInfo, len(in.Threads))
	for _, t := range in.Threads {
		if _, ok := info[t.ThreadID]; !ok {
			info[t.ThreadID] = t
		}
	}
	managers := in.Roster.Management()
	identities := in.Roster.Names()

	handle := func(ctx context.Context, id int64) (ThreadReport, error) {
		r := ThreadReport{
			Table:  aggregate.ByThread(id, report.Mentions, resolver, identities),
			Matrix: report.Matrix.Thread(id),
		}
		thread, ok := info[id]
		if ok {
			r.Thread = thread
			r.Outcome, r.Err = matcher.Match(ctx, thread)
		} else {
			r.Thread = model.ThreadInfo{ThreadID: id}
			r.Err = fmt.Errorf("thread %d: %w", id, ErrUnknownThread)
		}
		if r.Err != nil {
			if errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded) {
				return r, r.Err
			}
			r.Outcome = model.Unknown
			metrics.RecordThreadFailure(failureReason(r.Err))
			s.logger.Warn(ctx, "outcome lookup failed", logger.Int64("thread_id", id), logger.Error(r.Err))
		}
		metrics.RecordOutcome(r.Outcome.String())

		tallies, err := management.Tally(ctx, s.classifier, r.Matrix, managers, s.logger.Named("management"))
		if err != nil {
			return r, err
		}
		r.Game = management.Game(id, r.Table, managers, tallies, r.Outcome)
		return r, nil
	}

	ids := aggregate.ThreadIDs(in.Comments)
	pool := worker.NewPool(s.cfg.WorkerCount, handle,
		worker.WithName("threads"),
		worker.WithLogger(s.logger),
	)
	results, err := pool.Run(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ThreadReport, len(results))
	for i, res := range results {
		if res.Err != nil {
			return nil, res.Err
		}
		out[i] = res.Value
	}
	s.logger.Info(ctx, "threads processed", logger.Int("threads", len(out)), logger.Int("workers", pool.Size()))
	return out, nil
}

func (s *Service) matcher(in *Inputs) (*outcome.Matcher, error) {
	return outcome.NewMatcher(in.Schedule, in.Teams, s.cfg.Team,
		outcome.WithLegacyRollback(s.cfg.LegacyDateRollback),
		outcome.WithMaxLookback(s.cfg.MaxLookbackDays),
	)
}

// scoreSample extracts the hand-coded comments on their own and compares the
// result with the hand coding.
func (s *Service) scoreSample(ctx context.Context, set *pattern.Set, stop pattern.StopWords, resolver *resolve.Resolver, truth *aggregate.Matrix) (*scoring.Report, error) {
	x := extract.New(set, stop, extract.WithLogger(s.logger.Named("sample")))
	mentions, err := x.ExtractAll(ctx, truth.Rows())
	if err != nil {
		return nil, err
	}
	machine := aggregate.ByComment(truth.Rows(), mentions, resolver, truth.Identities())
	report, err := scoring.Score(machine, truth)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "sample scored",
		logger.Int("comments", report.Comments),
		logger.String("precision", report.Total.Precision().String()),
		logger.String("recall", report.Total.Recall().String()),
	)
	return report, nil
}

// Export writes every table of report below the output directory.
func (s *Service) Export(ctx context.Context, report *Report) error {
	w := export.New(s.cfg.OutputDir, export.WithLogger(s.logger.Named("export")))
	if err := w.CommentMatrix(ctx, report.Matrix); err != nil {
		return err
	}
	if err := w.Frequency(ctx, report.Totals); err != nil {
		return err
	}
	for _, t := range report.Threads {
		if err := w.GameFrequency(ctx, t.Table); err != nil {
			return err
		}
		if err := w.GameCommentMatrix(ctx, t.Table.ThreadID, t.Matrix); err != nil {
			return err
		}
		if err := w.Game(ctx, t.Game); err != nil {
			return err
		}
	}
	if err := w.GameResults(ctx, report.Results()); err != nil {
		return err
	}
	if err := w.Season(ctx, report.Season); err != nil {
		return err
	}
	if report.Scores != nil {
		if err := w.Scores(ctx, report.Scores); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "tables exported", logger.String("dir", w.Dir()))
	return nil
}

// Outcome looks up the game of a single thread.
func (s *Service) Outcome(ctx context.Context, in *Inputs, threadID int64) (outcome.Result, model.ThreadInfo, error) {
	for _, t := range in.Threads {
		if t.ThreadID != threadID {
			continue
		}
		m, err := s.matcher(in)
		if err != nil {
			return outcome.Result{}, t, err
		}
		res, err := m.Find(ctx, t)
		return res, t, err
	}
	return outcome.Result{}, model.ThreadInfo{}, fmt.Errorf("thread %d: %w", threadID, ErrUnknownThread)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownThread):
		return reasonNoMetadata
	case errors.Is(err, outcome.ErrNoMatchingGame):
		return reasonNoGame
	case errors.Is(err, outcome.ErrNoResult):
		return reasonNoResult
	case errors.Is(err, outcome.ErrInvalidDate):
		return reasonBadDate
	default:
		return reasonOther
	}
}

// timed runs fn and records its duration under stage.
func timed[T any](stage string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	metrics.RecordStageDuration(stage, time.Since(start))
	return v, err
}
