package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if !cfg.Build.MergeConvexRegions || cfg.Build.EpsilonContainsTest != 1 {
		t.Errorf("unexpected build defaults: %+v", cfg.Build)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navmesh.hjson")
	data := []byte(`{
  # keep regions small for debugging
  build: {
    mergeConvexRegions: false
  }
  spatialIndex: {
    cellsX: 4
    cellsZ: 8
  }
  log: {
    level: debug
  }
  server: {
    addr: 127.0.0.1:9000
  }
}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Build.MergeConvexRegions {
		t.Errorf("merge should be disabled")
	}
	if cfg.Build.EpsilonCoplanarTest != 1e-3 {
		t.Errorf("missing keys keep defaults, got %v", cfg.Build.EpsilonCoplanarTest)
	}
	if cfg.SpatialIndex.CellsX != 4 || cfg.SpatialIndex.CellsY != 1 || cfg.SpatialIndex.CellsZ != 8 {
		t.Errorf("spatial index %+v", cfg.SpatialIndex)
	}
	if cfg.Log.Level != "debug" || cfg.Server.Addr != "127.0.0.1:9000" || cfg.Store.Dsn != "navmesh.db" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.hjson")); err == nil {
		t.Errorf("missing file should fail")
	}
	cfg := Default()
	if err := Parse([]byte(`{spatialIndex: {cellsY: 0}}`), cfg); err == nil {
		t.Errorf("zero cells should fail validation")
	}
	if err := Parse([]byte(`{build: [`), Default()); err == nil {
		t.Errorf("broken document should fail")
	}
	cfg, err := Load("")
	if err != nil || cfg.Server.Addr != ":8080" {
		t.Errorf("empty path gives defaults")
	}
}
