package log

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
)

func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationExtract)
	testLogger.Warn("warning message", FailedCountKey, 2)
	testErr := fmt.Errorf("test error")
	testLogger.Error("error message", ErrAttrKey, testErr)

	output := buffer.String()
	if output == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	// JSON unmarshaling converts numbers to float64.
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
}

func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		RunIDKey, "run-001",
		ComponentKey, "mfe",
	)

	contextLogger.Info("contextual message", OperationKey, OperationFit)

	if !testLogger.ContainsField(RunIDKey, "run-001") {
		t.Error("Run ID context not found")
	}

	if !testLogger.ContainsField(ComponentKey, "mfe") {
		t.Error("Component context not found")
	}

	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}

	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}

	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}

	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(100), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLoggerProviderRouting(t *testing.T) {
	tp, buffer := NewTestLoggerProvider(LevelDebug)

	SetLoggerProvider(tp)
	defer SetLoggerProvider(NewSlogProvider(slog.Default()))

	logger := GetLoggerWithName("measure")
	logger.Info("registry resolved", MeasureCountKey, 10)

	if buffer.String() == "" {
		t.Fatal("Expected log output through the package provider")
	}
	if !tp.logger.ContainsField(ComponentKey, "measure") {
		t.Error("named logger should carry the component field")
	}
	if !tp.logger.ContainsField(MeasureCountKey, 10.0) {
		t.Error("expected measure count field")
	}
}

func TestGetLogEntries(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	testLogger.Info("first", FeatureKey, "mean.sd")
	testLogger.Warn("second")

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0]["message"] != "first" {
		t.Errorf("entries[0].message = %v, want first", entries[0]["message"])
	}
	if entries[1]["level"] != "WARN" {
		t.Errorf("entries[1].level = %v, want WARN", entries[1]["level"])
	}
}
