// Package telemetry holds the shared tracer and span conventions for the
// evaluation surfaces.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentName identifies this library to the tracer provider.
const InstrumentName = "github.com/contoso/creative-eval"

// Span names emitted by the evaluation surfaces.
const (
	SpanNameRunEvaluators      = "run_evaluators"
	SpanNameRunImageEvaluators = "run_image_evaluators"
)

// Attribute keys carried on evaluation spans.
const (
	KeyInputs = "inputs"
	KeyOutput = "output"
)

// Tracer returns the library tracer from the current global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentName)
}
