package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	logger.Info(context.Background(), "ingested file", String("file", "a.json"), Int("records", 3), Bool("ok", true))
	out := buf.String()
	for _, want := range []string{"ingested file", "file=a.json", "records=3", "ok=true", "source="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithJSON(true)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Error(context.Background(), "parse failed", Error(errors.New("boom")))
	if !strings.Contains(buf.String(), `"msg":"parse failed"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	ctx := context.Background()
	Get().Debug(ctx, "hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message logged at info level")
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message not logged at debug level")
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("ingest").Warn(context.Background(), "test message", String("k", "v"))
	if !strings.Contains(buf.String(), "ingest.k=v") {
		t.Errorf("expected grouped field, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	if l == nil {
		t.Fatal("nop logger is nil")
	}
	l.Info(context.Background(), "discarded", Strings("files", []string{"a", "b"}))
}
