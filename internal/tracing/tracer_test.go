package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(DefaultConfig())
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	_, err := NewProvider(cfg)
	require.ErrorContains(t, err, "file_path required")
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = "zipkin"
	_, err := NewProvider(cfg)
	require.ErrorContains(t, err, "unsupported exporter type")
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.FilePath = path

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), SpanRegistrationSubmit)
	span.SetAttributes(attribute.String(AttrRegistrationResult, ResultSucceeded))
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var rec SpanRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
	require.Equal(t, SpanRegistrationSubmit, rec.Name)
	require.Equal(t, ResultSucceeded, rec.Attributes[AttrRegistrationResult])
	require.Equal(t, "UNSET", rec.Status)
}

func TestFileExporter_ShutdownTwice(t *testing.T) {
	e, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, e.Shutdown(context.Background()))
	require.NoError(t, e.Shutdown(context.Background()))
	require.Error(t, e.ExportSpans(context.Background(), nil))
}

func TestNewProviderWithExporter(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	p := NewProviderWithExporter(DefaultConfig(), exp)

	_, span := p.Tracer().Start(context.Background(), SpanRegistrationSubmit)
	span.End()

	require.True(t, p.Enabled())
	require.Len(t, exp.GetSpans(), 1)
	require.Equal(t, SpanRegistrationSubmit, exp.GetSpans()[0].Name)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	h := HTTPMiddleware(tp.Tracer("test"), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "http POST /auth/register", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Contains(t, spans[0].Attributes(), attribute.Int(AttrHTTPStatus, http.StatusInternalServerError))
}

func TestHTTPMiddleware_NilTracer(t *testing.T) {
	next := http.NotFoundHandler()
	require.NotNil(t, HTTPMiddleware(nil, next))
}
