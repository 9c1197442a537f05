package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("product-catalog/internal/storage/mq")

// withRecordTracing opens a span for every produced and consumed record.
// Trace headers are written and read by msgheader, so kotel is given an
// empty propagator.
func withRecordTracing() kgo.Opt {
	kTracer := kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(propagation.NewCompositeTextMapPropagator()),
	)

	return kgo.WithHooks(kotel.NewKotel(kotel.WithTracer(kTracer)).Hooks()...)
}
