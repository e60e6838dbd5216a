package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/store"
)

// Orchestrator drives one source strategy end to end and owns the
// dedupe/rank/limit policy for every strategy. Each run's accumulating
// state lives entirely inside the call; orchestrators are safe for
// concurrent runs.
type Orchestrator struct {
	source Source
	store  store.Store
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore records run history (request and summary only, never leads).
func WithStore(st store.Store) Option {
	return func(o *Orchestrator) {
		o.store = st
	}
}

// NewOrchestrator creates an Orchestrator over one source strategy.
func NewOrchestrator(source Source, opts ...Option) *Orchestrator {
	o := &Orchestrator{source: source}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the pipeline and returns the final deduplicated, ranked,
// size-bounded lead list.
func (o *Orchestrator) Run(ctx context.Context, req model.Request) ([]model.Lead, error) {
	start := time.Now()
	run := o.beginRun(ctx, req)

	candidates, err := o.source.Discover(ctx, req, func(model.Event) {})
	if err != nil {
		o.finishRun(ctx, run, 0, start, err)
		return nil, eris.Wrapf(err, "orchestrator: %s source", o.source.Name())
	}

	final := Rank(Dedupe(candidates), req.EffectiveLimit())
	o.finishRun(ctx, run, len(final), start, nil)

	zap.L().Info("run complete",
		zap.String("source", o.source.Name()),
		zap.Int("candidates", len(candidates)),
		zap.Int("leads", len(final)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return final, nil
}

// Stream executes the pipeline while emitting typed progress events. The
// returned channel carries events in the order the underlying operations
// resolve, ends with a terminal complete or error event, and is then
// closed. Cancelling ctx stops in-flight fan-out promptly.
func (o *Orchestrator) Stream(ctx context.Context, req model.Request) <-chan model.Event {
	ch := make(chan model.Event, 64)

	go func() {
		defer close(ch)

		emit := func(e model.Event) {
			select {
			case ch <- e:
			case <-ctx.Done():
			}
		}

		start := time.Now()
		run := o.beginRun(ctx, req)

		candidates, err := o.source.Discover(ctx, req, emit)
		if err != nil {
			o.finishRun(ctx, run, 0, start, err)
			emit(model.ErrorEvent(eris.Cause(err).Error()))
			return
		}

		final := Rank(Dedupe(candidates), req.EffectiveLimit())
		o.finishRun(ctx, run, len(final), start, nil)

		emit(model.ProgressEvent(100))
		emit(model.CompleteEvent(fmt.Sprintf("found %d leads", len(final))))
	}()

	return ch
}

// beginRun records the run start in the history store, if one is attached.
func (o *Orchestrator) beginRun(ctx context.Context, req model.Request) *model.Run {
	if o.store == nil {
		return nil
	}
	run, err := o.store.CreateRun(ctx, req, o.source.Name())
	if err != nil {
		zap.L().Warn("run history write failed", zap.Error(err))
		return nil
	}
	return run
}

func (o *Orchestrator) finishRun(ctx context.Context, run *model.Run, leadCount int, start time.Time, runErr error) {
	if o.store == nil || run == nil {
		return
	}

	result := &model.RunResult{
		LeadCount:  leadCount,
		DurationMS: time.Since(start).Milliseconds(),
	}
	status := model.RunStatusComplete
	if runErr != nil {
		status = model.RunStatusFailed
		result.Error = runErr.Error()
	}

	if err := o.store.CompleteRun(ctx, run.ID, status, result); err != nil {
		zap.L().Warn("run history write failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}
