package logger

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if err := Init(cfg); err == nil {
		t.Errorf("unknown level should fail")
	}
}

func TestInitFileSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Console = false
	cfg.File = filepath.Join(t.TempDir(), "navmesh.log")
	if err := Init(cfg); err != nil {
		t.Fatal(err)
	}
	defer SetLogger(nil)
	Info("file sink", zap.Int("regions", 3))
	Sync()
}

func TestPackageLevelCallsReachLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Warn("closest region fallback", zap.Int("region", 2))
	Error("contour rejected")
	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	if logs.All()[0].Message != "closest region fallback" {
		t.Errorf("unexpected message %q", logs.All()[0].Message)
	}
}
