// Package pipeline orchestrates one voice command from transcript to ranked
// result set: intent resolution, entity lookup, concurrent scoring fan-out and
// final ranking, under a wall-clock budget with last-write-wins supersession.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
	"github.com/mkravets/voicehire/internal/intent"
	"github.com/mkravets/voicehire/internal/scoring"
)

// State is the lifecycle phase of the most recent run.
type State string

const (
	StateIdle      State = "idle"
	StateResolving State = "resolving"
	StateExecuting State = "executing"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// DefaultTimeout bounds worst-case latency when an AI provider is
// unresponsive.
const DefaultTimeout = 30 * time.Second

// Pipeline runs commands one transcript at a time. Starting a new run does not
// preempt an in-flight one; the older run's result is dropped before being
// surfaced instead.
type Pipeline struct {
	resolver intent.Resolver
	scorer   scoring.Scorer
	timeout  time.Duration
	logger   *zap.Logger

	generation atomic.Int64

	mu    sync.Mutex
	state State
}

// New builds a pipeline. The resolver and scorer are expected to carry their
// own fallbacks; by the time an error escapes them it is unrecoverable.
func New(resolver intent.Resolver, scorer scoring.Scorer, timeout time.Duration, logger *zap.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		resolver: resolver,
		scorer:   scorer,
		timeout:  timeout,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the phase of the most recent run.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// setState records the phase, but only while the run owning it is still the
// newest one. A superseded run must not overwrite the live run's state.
func (p *Pipeline) setState(generation int64, state State) {
	if p.generation.Load() != generation {
		return
	}
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

// Run executes one finalized transcript against the snapshot and returns the
// ranked result set. The snapshot is treated as immutable for the duration of
// the run so the whole ranking shares one consistent basis.
func (p *Pipeline) Run(ctx context.Context, transcript string, snapshot *catalog.Snapshot) (*Result, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	generation := p.generation.Add(1)
	p.setState(generation, StateResolving)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()

	resolved, err := p.resolver.Resolve(ctx, transcript, snapshot)
	if err != nil {
		return nil, p.fail(generation, err)
	}

	p.logger.Info("intent resolved",
		zap.String("action", string(resolved.Action)),
		zap.String("source", resolved.Source),
		zap.Float64("confidence", resolved.Confidence),
	)

	p.setState(generation, StateExecuting)

	result, err := p.execute(ctx, resolved, snapshot)
	if err != nil {
		return nil, p.fail(generation, err)
	}

	// Last-write-wins: a result that arrives after a newer transcript has
	// started is dropped, never surfaced.
	if p.generation.Load() != generation {
		p.logger.Debug("dropping stale pipeline result",
			zap.Int64("generation", generation),
			zap.Int64("current", p.generation.Load()),
		)
		return nil, ErrSuperseded
	}

	result.Intent = resolved
	p.setState(generation, StateDone)

	p.logger.Info("command completed",
		zap.String("kind", string(result.Kind)),
		zap.Int("results", result.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// fail maps the error to the surfaced taxonomy and marks the run failed,
// unless it was already superseded.
func (p *Pipeline) fail(generation int64, err error) error {
	if p.generation.Load() != generation {
		return ErrSuperseded
	}

	if errors.Is(err, context.DeadlineExceeded) {
		err = ErrTimeout
	}

	p.setState(generation, StateFailed)
	p.logger.Warn("pipeline run failed", zap.Error(err))
	return err
}
