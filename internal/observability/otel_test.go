package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/avelineco/go-shop-backend/internal/config"
)

// tracingConfig returns an enabled OTel config pointing at a collector that
// is never dialed in tests (the exporter connects lazily).
func tracingConfig(insecure bool) config.OTELConfig {
	return config.OTELConfig{
		Enabled:     true,
		Insecure:    insecure,
		Endpoint:    "localhost:4317",
		ServiceName: "shop-backend",
		SampleRatio: 1.0,
	}
}

func preserveOTelGlobals(t *testing.T) {
	t.Helper()
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
}

func TestSetupOTel_DisabledIsNoOp(t *testing.T) {
	preserveOTelGlobals(t)

	cfg := tracingConfig(true)
	cfg.Enabled = false
	shutdown, err := SetupOTel(context.Background(), cfg, "dev")
	if err != nil {
		t.Fatalf("disabled setup: %v", err)
	}
	if shutdown == nil {
		t.Fatalf("shutdown func must be non-nil even when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown: %v", err)
	}
}

func TestSetupOTel_InstallsProviderAndPropagator(t *testing.T) {
	for _, tc := range []struct {
		name     string
		insecure bool
	}{
		{"insecure grpc", true},
		{"tls grpc", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			preserveOTelGlobals(t)

			shutdown, err := SetupOTel(context.Background(), tracingConfig(tc.insecure), "1.0.0")
			if err != nil {
				t.Fatalf("setup: %v", err)
			}
			defer func() { _ = shutdown(context.Background()) }()

			if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
				t.Fatalf("global tracer provider not installed")
			}

			// Spans start and trace context round-trips through the
			// propagator without a live collector.
			ctx, span := otel.Tracer("checkout").Start(context.Background(), "place-order")
			span.End()
			carrier := propagation.MapCarrier{}
			otel.GetTextMapPropagator().Inject(ctx, carrier)
			_ = otel.GetTextMapPropagator().Extract(context.Background(), carrier)
		})
	}
}

func TestSetupOTel_CanceledContextStillInitializes(t *testing.T) {
	preserveOTelGlobals(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Exporter construction is lazy, so setup succeeds even with a dead ctx.
	shutdown, err := SetupOTel(ctx, tracingConfig(true), "dev")
	if err != nil {
		t.Fatalf("setup with canceled ctx: %v", err)
	}
	_ = shutdown(context.Background())
}

func TestSetupOTel_ExporterFailureLeavesGlobalsUntouched(t *testing.T) {
	preserveOTelGlobals(t)

	orig := newOTLPExporterFn
	t.Cleanup(func() { newOTLPExporterFn = orig })
	newOTLPExporterFn = func(ctx context.Context, client otlptrace.Client) (*otlptrace.Exporter, error) {
		return nil, errors.New("collector unreachable")
	}

	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()

	if _, err := SetupOTel(context.Background(), tracingConfig(true), "dev"); err == nil {
		t.Fatalf("expected exporter error")
	}
	if otel.GetTracerProvider() != prevTP {
		t.Fatalf("tracer provider replaced despite failed setup")
	}
	if otel.GetTextMapPropagator() != prevProp {
		t.Fatalf("propagator replaced despite failed setup")
	}
}

func TestSetupOTel_ResourceFailureLeavesGlobalsUntouched(t *testing.T) {
	preserveOTelGlobals(t)

	orig := newServiceResourceFn
	t.Cleanup(func() { newServiceResourceFn = orig })
	newServiceResourceFn = func(ctx context.Context, serviceName, version string) (*resource.Resource, error) {
		return nil, errors.New("bad resource attributes")
	}

	prevTP := otel.GetTracerProvider()

	if _, err := SetupOTel(context.Background(), tracingConfig(true), "dev"); err == nil {
		t.Fatalf("expected resource error")
	}
	if otel.GetTracerProvider() != prevTP {
		t.Fatalf("tracer provider replaced despite failed setup")
	}
}

func TestSetupOTel_ShutdownCompletesWithinTimeout(t *testing.T) {
	preserveOTelGlobals(t)

	shutdown, err := SetupOTel(context.Background(), tracingConfig(true), "dev")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
