package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/ui/style"
)

// RootSpanName is the span wrapping one orchestration.
const RootSpanName = "forge"

// PhaseSpanPrefix prefixes the span name of every pipeline phase.
const PhaseSpanPrefix = "forge."

// PhaseReporter implements sdktrace.SpanProcessor and logs phase durations.
type PhaseReporter struct {
	logger ports.Logger

	mu     sync.Mutex
	phases []phaseTiming
}

type phaseTiming struct {
	name     string
	duration time.Duration
}

// NewPhaseReporter returns a reporter logging through logger.
func NewPhaseReporter(logger ports.Logger) *PhaseReporter {
	return &PhaseReporter{logger: logger}
}

// OnStart resets the collected timings when a new orchestration begins.
func (r *PhaseReporter) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if s.Name() != RootSpanName {
		return
	}
	r.mu.Lock()
	r.phases = nil
	r.mu.Unlock()
}

// OnEnd logs the duration of a finished phase, or the summary when the root span ends.
func (r *PhaseReporter) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime())
	failed := s.Status().Code == codes.Error

	if s.Name() == RootSpanName {
		if failed {
			return
		}
		r.logger.Info(r.summary(elapsed))
		return
	}

	phase, ok := strings.CutPrefix(s.Name(), PhaseSpanPrefix)
	if !ok {
		return
	}

	if failed {
		r.logger.Debug(fmt.Sprintf("%s failed after %s", phase, formatDuration(elapsed)))
		return
	}

	r.mu.Lock()
	r.phases = append(r.phases, phaseTiming{name: phase, duration: elapsed})
	r.mu.Unlock()
	r.logger.Debug(fmt.Sprintf("%s took %s", phase, formatDuration(elapsed)))
}

func (r *PhaseReporter) summary(total time.Duration) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf("%s done in %s", style.Check, formatDuration(total))
	if len(r.phases) == 0 {
		return msg
	}
	parts := make([]string, 0, len(r.phases))
	for _, p := range r.phases {
		parts = append(parts, p.name+" "+formatDuration(p.duration))
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

// ForceFlush does nothing.
func (r *PhaseReporter) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (r *PhaseReporter) Shutdown(context.Context) error {
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
