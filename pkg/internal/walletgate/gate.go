// Package walletgate sits between the entropy engine and the wallet
// key-generation flow. Its one job is refusal: no key material may be
// generated, and no wallet created, until a freshly collected sample batch
// has passed every statistical acceptance test. A failing source is
// reported to the host as a normal failure response and the caller may try
// again with a fresh batch — there are no retries inside a test run itself.
package walletgate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/internal/engine"
	"github.com/entropic-dev/galvanometer/pkg/internal/types"
	"github.com/entropic-dev/galvanometer/pkg/internal/utils"
)

// KeyGate authorizes or refuses key generation based on a fresh entropy
// self-test. It serializes test runs: the engine itself assumes
// one-call-at-a-time, and the gate is where that caller-side discipline is
// enforced.
type KeyGate struct {
	componentMetadata types.ComponentMetadata
	engine            *engine.QualityEngine
	source            types.SampleSource
	loggers           []types.Logger
	loggersLock       sync.Mutex

	mu         sync.Mutex
	lastReport *engine.Report
}

// NewKeyGate wires a sample source to a quality engine.
func NewKeyGate(source types.SampleSource, qe *engine.QualityEngine, options ...types.Option[*KeyGate]) *KeyGate {
	g := &KeyGate{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KEY_GATE",
		},
		engine: qe,
		source: source,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// WithLogger attaches one or more loggers to the gate.
func WithLogger(logger ...types.Logger) types.Option[*KeyGate] {
	return func(g *KeyGate) {
		g.loggersLock.Lock()
		defer g.loggersLock.Unlock()
		for _, l := range logger {
			if l != nil {
				g.loggers = append(g.loggers, l)
			}
		}
	}
}

// WithComponentMetadata overrides the gate's name and ID.
func WithComponentMetadata(name string, id string) types.Option[*KeyGate] {
	return func(g *KeyGate) {
		g.componentMetadata.Name = name
		g.componentMetadata.ID = id
	}
}

// GetComponentMetadata returns metadata (ID, Name, Type).
func (g *KeyGate) GetComponentMetadata() types.ComponentMetadata {
	return g.componentMetadata
}

// Authorize collects a fresh batch, judges it, and returns the full report.
// A nil error authorizes key generation. A failing verdict returns an error
// wrapping ErrRNGFailure; the wallet flow must surface it to the host and
// must not fall back to degraded entropy.
func (g *KeyGate) Authorize(ctx context.Context) (engine.Report, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cal := g.engine.Calibration()
	batch, err := g.source.Collect(ctx, cal.SampleCount)
	if err != nil {
		return engine.Report{}, fmt.Errorf("collecting sample batch: %w", err)
	}

	report, err := g.engine.Run(batch)
	if err != nil {
		return engine.Report{}, err
	}
	g.lastReport = &report

	if !report.Verdict.Pass {
		g.notify(types.WarnLevel,
			"Key generation refused",
			"component", g.componentMetadata,
			"event", "Authorize",
			"failedTest", report.Verdict.Failed.String(),
		)
		return report, fmt.Errorf("%s test failed: %w", report.Verdict.Failed, ErrRNGFailure)
	}

	g.notify(types.InfoLevel,
		"Key generation authorized",
		"component", g.componentMetadata,
		"event", "Authorize",
	)
	return report, nil
}

// LastReport returns the most recent report, or nil before the first run.
func (g *KeyGate) LastReport() *engine.Report {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastReport
}

// RunPeriodic re-tests the source on a fixed interval until the context is
// cancelled, invoking onResult after every run. The device self-tests at
// boot and then periodically; a source that drifts out of bounds while idle
// is caught here rather than at the next key generation.
func (g *KeyGate) RunPeriodic(ctx context.Context, interval time.Duration, onResult func(engine.Report, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := g.Authorize(ctx)
			if onResult != nil {
				onResult(report, err)
			}
		}
	}
}

func (g *KeyGate) notify(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	g.loggersLock.Lock()
	loggers := make([]types.Logger, len(g.loggers))
	copy(loggers, g.loggers)
	g.loggersLock.Unlock()
	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		}
	}
}
