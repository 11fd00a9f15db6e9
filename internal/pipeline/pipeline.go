// Package pipeline orchestrates batch publishing: topics in, reports
// appended to the store one at a time, per-item failures isolated.
package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/equinoxlabs/content-engine/internal/models"
	"github.com/equinoxlabs/content-engine/internal/seo"
	"github.com/equinoxlabs/content-engine/internal/store"
)

// DefaultSeedBatch is the batch size used when seeding an empty store.
const DefaultSeedBatch = 5

// ErrBusy is returned when a batch trigger arrives while a run is in
// flight. The trigger is a no-op; there is no queue.
var ErrBusy = errors.New("pipeline: batch already running")

// Generator produces one structured report for a topic keyword. Calls
// have meaningful latency and a real failure rate.
type Generator interface {
	Generate(ctx context.Context, topic string) (models.Report, error)
}

// BatchResult summarizes one batch run.
type BatchResult struct {
	Requested int
	Published int
	Failed    int
}

// Pipeline drives the publishing loop. A single goroutine runs a
// batch at a time; the running flag is the mutual-exclusion guard.
type Pipeline struct {
	store    *store.Store
	gen      Generator
	keywords *seo.KeywordGenerator
	links    *seo.LinkScorer
	events   *EventLog
	log      *slog.Logger
	seedSize int
	timeout  time.Duration

	mu      sync.Mutex
	running bool
}

// New wires a pipeline. seedSize <= 0 falls back to DefaultSeedBatch;
// timeout bounds each generation call, zero meaning unbounded.
func New(st *store.Store, gen Generator, keywords *seo.KeywordGenerator, links *seo.LinkScorer, seedSize int, timeout time.Duration, logger *slog.Logger) *Pipeline {
	if seedSize <= 0 {
		seedSize = DefaultSeedBatch
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		store:    st,
		gen:      gen,
		keywords: keywords,
		links:    links,
		events:   NewEventLog(),
		log:      logger,
		seedSize: seedSize,
		timeout:  timeout,
	}
}

// Events returns the event log, newest first.
func (p *Pipeline) Events() []string {
	return p.events.Snapshot()
}

// Running reports whether a batch is in flight.
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Autorun is the boot-sequence step: when the store loaded empty, it
// seeds a default batch; otherwise it performs zero generation calls.
// Called once during process startup.
func (p *Pipeline) Autorun(ctx context.Context) (BatchResult, error) {
	if p.store.Len() > 0 {
		p.log.Info("store initialized with saved content", slog.Int("reports", p.store.Len()))
		return BatchResult{}, nil
	}

	p.log.Info("store empty, seeding", slog.Int("batch", p.seedSize))
	return p.RunBatch(ctx, p.seedSize)
}

// RunBatch generates size topics and publishes them strictly in
// sequence. Each success computes internal links against the store as
// it exists at that moment, so later items in a batch may link to
// earlier ones but never the reverse. One item's failure never aborts
// the batch; the run always completes and returns to idle.
func (p *Pipeline) RunBatch(ctx context.Context, size int) (BatchResult, error) {
	if err := p.acquire(); err != nil {
		return BatchResult{}, err
	}
	defer p.release()

	return p.run(ctx, size), nil
}

// Trigger starts a batch in the background and returns immediately:
// nil when the run was started, ErrBusy when one is already in flight.
func (p *Pipeline) Trigger(ctx context.Context, size int) error {
	if err := p.acquire(); err != nil {
		return err
	}
	go func() {
		defer p.release()
		p.run(ctx, size)
	}()
	return nil
}

// run executes one batch. Callers must hold the running guard.
func (p *Pipeline) run(ctx context.Context, size int) BatchResult {
	p.events.Appendf("Initializing content engine")

	queue := p.keywords.Queue(size)
	p.events.Appendf("Queued %d high-value topics", len(queue))

	result := BatchResult{Requested: len(queue)}
	for _, topic := range queue {
		p.events.Appendf("[research] %s", topic)

		report, err := p.generateOne(ctx, topic)
		if err != nil {
			result.Failed++
			p.events.Appendf("[error] generation failed: %s", topic)
			p.log.Warn("generation failed",
				slog.String("topic", topic),
				slog.Any("err", err),
			)
			continue
		}

		// Candidate pool is the store snapshot at append time: the
		// pre-existing collection plus this batch's earlier items.
		report.InternalLinks = p.links.Select(report, p.store.All())

		if err := p.store.Append(report); err != nil {
			result.Failed++
			p.events.Appendf("[error] persist failed: %s", topic)
			p.log.Error("persist failed",
				slog.String("topic", topic),
				slog.Any("err", err),
			)
			continue
		}

		result.Published++
		p.events.Appendf("[publish] Success: %s", report.Title)
		p.log.Info("report published",
			slog.String("slug", report.Slug),
			slog.String("category", report.Category),
		)
	}

	p.events.Appendf("Batch operation complete. Index updated.")
	p.log.Info("batch complete",
		slog.Int("requested", result.Requested),
		slog.Int("published", result.Published),
		slog.Int("failed", result.Failed),
	)
	return result
}

func (p *Pipeline) generateOne(ctx context.Context, topic string) (models.Report, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.gen.Generate(ctx, topic)
}

func (p *Pipeline) acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrBusy
	}
	p.running = true
	return nil
}

func (p *Pipeline) release() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}
