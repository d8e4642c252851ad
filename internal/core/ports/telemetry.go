package ports

import (
	"context"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer opens the spans timing an orchestration and its phases.
type Tracer interface {
	// Start opens a span nested under the one carried by ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is one timed phase.
type Span interface {
	End()
	// RecordError marks the phase failed with err. A nil err is ignored.
	RecordError(err error)
	SetAttribute(key string, value any)
}
