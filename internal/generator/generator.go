package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mappages/internal/catalog"
	"git.home.luguber.info/inful/mappages/internal/config"
	"git.home.luguber.info/inful/mappages/internal/emit"
	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"git.home.luguber.info/inful/mappages/internal/logfields"
	"git.home.luguber.info/inful/mappages/internal/mappage"
	"git.home.luguber.info/inful/mappages/internal/metrics"
	"git.home.luguber.info/inful/mappages/internal/observability"
)

// Stage names used in logs and metrics.
const (
	StageLoad   = "load"
	StageDerive = "derive"
	StageEmit   = "emit"
)

// ContextPreviousRecordIndex names the first record of a duplicate slug pair.
const ContextPreviousRecordIndex = "previous_record_index"

// Duplicate records two catalog entries that produced the same slug.
type Duplicate struct {
	Slug        string
	FirstIndex  int
	SecondIndex int
}

// Result summarizes a run. It is returned for failed runs too.
type Result struct {
	RunID        string
	RecordsRead  int
	PagesWritten int
	Duplicates   []Duplicate
	// Paths lists written files in write order; a path appears once per write.
	Paths    []string
	Duration time.Duration
	// ParseErrorTolerated is set when a malformed catalog was logged and skipped.
	ParseErrorTolerated bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger used for run logs.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRunIDFunc replaces the run id source.
func WithRunIDFunc(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newRunID = fn
		}
	}
}

// Generator turns a catalog into page files according to a config.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	logger   *slog.Logger
	newRunID func() string
}

// New creates a Generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run is shorthand for New(cfg, opts...).Run(ctx).
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (*Result, error) {
	return New(cfg, opts...).Run(ctx)
}

// Run executes one generation pass.
func (g *Generator) Run(ctx context.Context) (result *Result, err error) {
	start := time.Now()
	result = &Result{RunID: g.newRunID()}

	if g.cfg == nil {
		g.recorder.IncRunOutcome(metrics.OutcomeFailed)
		return result, ferrors.ConfigError("config required").Build()
	}

	ctx = observability.WithLogger(ctx, g.logger)
	ctx = observability.WithRunID(ctx, result.RunID)

	defer func() {
		result.Duration = time.Since(start)
		g.recorder.ObserveRunDuration(result.Duration)
		g.recorder.IncRunOutcome(outcomeOf(ctx, err))
		attrs := []slog.Attr{
			logfields.Count(result.PagesWritten),
			logfields.DurationMS(float64(result.Duration.Milliseconds())),
		}
		if err != nil {
			observability.ErrorContext(ctx, "Map page generation failed", append(attrs, logfields.Error(err))...)
			return
		}
		observability.InfoContext(ctx, "Map page generation complete", attrs...)
	}()

	records, err := g.load(ctx)
	if err != nil {
		if g.cfg.Input.TolerateParseErrors && ferrors.HasCategory(err, ferrors.CategoryParse) {
			observability.WarnContext(observability.WithStage(ctx, StageLoad),
				"Catalog could not be parsed, no pages written", logfields.Error(err))
			result.ParseErrorTolerated = true
			return result, nil
		}
		return result, err
	}
	result.RecordsRead = len(records)

	return result, g.process(ctx, records, result)
}

func (g *Generator) load(ctx context.Context) ([]catalog.Record, error) {
	ctx = observability.WithStage(ctx, StageLoad)
	stageStart := time.Now()
	defer func() { g.recorder.ObserveStageDuration(StageLoad, time.Since(stageStart)) }()

	records, err := catalog.Load(g.cfg.Input.Path)
	if err != nil {
		return nil, err
	}
	g.recorder.SetRecordsRead(len(records))
	observability.InfoContext(ctx, "Catalog loaded",
		logfields.Path(g.cfg.Input.Path),
		logfields.Count(len(records)))
	return records, nil
}

func (g *Generator) process(ctx context.Context, records []catalog.Record, result *Result) error {
	writer := emit.NewWriter(g.cfg.Output.Directory, emit.Options{
		CreateDir:   g.cfg.Output.CreateDir,
		BodyFormat:  g.cfg.Output.BodyFormat,
		Fingerprint: g.cfg.Output.Fingerprint,
	})
	opts := mappage.Options{TitleSuffix: g.cfg.TitleSuffix()}

	var deriveTime, emitTime time.Duration
	defer func() {
		if len(records) > 0 {
			g.recorder.ObserveStageDuration(StageDerive, deriveTime)
			g.recorder.ObserveStageDuration(StageEmit, emitTime)
		}
	}()

	seen := make(map[string]int, len(records))
	prepared := false

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		stageStart := time.Now()
		page, err := mappage.Derive(rec, opts)
		deriveTime += time.Since(stageStart)
		if err != nil {
			return err
		}

		if first, dup := seen[page.Slug]; dup {
			if err := g.duplicate(ctx, page, first, result); err != nil {
				return err
			}
		}
		seen[page.Slug] = page.Index

		stageStart = time.Now()
		if !prepared {
			if err := writer.Prepare(); err != nil {
				emitTime += time.Since(stageStart)
				return err
			}
			prepared = true
		}
		path, err := writer.Write(page)
		emitTime += time.Since(stageStart)
		if err != nil {
			return err
		}

		result.PagesWritten++
		result.Paths = append(result.Paths, path)
		g.recorder.IncPagesWritten()
		observability.DebugContext(observability.WithStage(ctx, StageEmit), "Page written",
			logfields.RecordIndex(page.Index),
			logfields.MapName(page.MapName),
			logfields.Slug(page.Slug),
			logfields.Path(path))
	}
	return nil
}

func (g *Generator) duplicate(ctx context.Context, page mappage.Page, first int, result *Result) error {
	result.Duplicates = append(result.Duplicates, Duplicate{
		Slug:        page.Slug,
		FirstIndex:  first,
		SecondIndex: page.Index,
	})
	g.recorder.IncDuplicateSlug()
	observability.WarnContext(observability.WithStage(ctx, StageDerive), "Duplicate slug",
		logfields.Slug(page.Slug),
		slog.Int(ContextPreviousRecordIndex, first),
		logfields.RecordIndex(page.Index),
		logfields.MapName(page.MapName))

	if g.cfg.Output.OnDuplicate != config.DuplicateFail {
		return nil
	}
	b := ferrors.ValidationError("duplicate slug").
		WithContext(ferrors.ContextSlug, page.Slug).
		WithContext(ferrors.ContextMapName, page.MapName).
		WithContext(ferrors.ContextRecordIndex, page.Index).
		WithContext(ContextPreviousRecordIndex, first)
	if page.Line > 0 {
		b = b.WithContext(ferrors.ContextLine, page.Line)
	}
	return b.Build()
}

func outcomeOf(ctx context.Context, err error) metrics.RunOutcome {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case ctx.Err() != nil:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}
