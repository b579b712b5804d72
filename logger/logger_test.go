package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func withCapturedOutput(t *testing.T, fn func()) string {
	t.Helper()
	prev := std
	var buf bytes.Buffer
	std = log.New(&buf, "", 0)
	defer func() { std = prev }()
	fn()
	return buf.String()
}

func TestSetLevelAcceptsKnownNamesCaseInsensitively(t *testing.T) {
	defer SetLevel("info")
	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if GetLevel() != "WARN" {
		t.Fatalf("GetLevel: got %q", GetLevel())
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if GetLevel() != "DEBUG" {
		t.Fatalf("GetLevel: got %q", GetLevel())
	}
}

func TestSetLevelRejectsUnknownName(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected an error for an unknown level name")
	}
}

func TestLevelBelowThresholdIsSuppressed(t *testing.T) {
	defer SetLevel("info")
	SetLevel("WARN")
	out := withCapturedOutput(t, func() {
		Info("should not appear")
	})
	if out != "" {
		t.Fatalf("expected no output below threshold, got %q", out)
	}
}

func TestLevelAtOrAboveThresholdIsEmitted(t *testing.T) {
	defer SetLevel("info")
	SetLevel("INFO")
	out := withCapturedOutput(t, func() {
		Warn("disk usage high: %d%%", 91)
	})
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "disk usage high: 91%") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTraceIfOnlyEmitsForEnabledSubsystem(t *testing.T) {
	defer SetLevel("info")
	SetLevel("TRACE")
	EnableTrace("store")

	out := withCapturedOutput(t, func() {
		TraceIf("chunk", "chunk trace line")
		TraceIf("store", "store trace line")
	})
	if strings.Contains(out, "chunk trace line") {
		t.Fatal("subsystem not enabled for trace should be suppressed")
	}
	if !strings.Contains(out, "store trace line") {
		t.Fatal("subsystem enabled for trace should be emitted")
	}
}
