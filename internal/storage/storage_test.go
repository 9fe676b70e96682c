package storage

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/sandworld/internal/config"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "run"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestConfigRoundTrip(t *testing.T) {
	s := newStorage(t)

	cfg := config.DefaultConfig()
	if err := s.LoadConfig(cfg); err != nil {
		t.Fatalf("LoadConfig on empty dir: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Fatal("missing config.json should leave cfg unchanged")
	}

	cfg.Seed = 77
	cfg.Scatter = "jitter"
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(s.Path("config.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	got := config.DefaultConfig()
	if err := s.LoadConfig(got); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	s := newStorage(t)
	if err := os.WriteFile(s.Path("config.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadConfig(config.DefaultConfig()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveReport(t *testing.T) {
	s := newStorage(t)
	r := &Report{
		Seed:      5,
		Region:    RegionData{MaxX: 2, MaxY: 3},
		Chunks:    6,
		Materials: map[string]int{"SAND": 10},
		Clouds:    []PlacedData{{Template: "cloud_3", X: 10, Y: 20}},
	}
	if err := s.SaveReport(r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	data, err := os.ReadFile(s.Path("report.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if got.Chunks != 6 || got.Materials["SAND"] != 10 || len(got.Clouds) != 1 || got.Clouds[0].Template != "cloud_3" {
		t.Errorf("report = %+v", got)
	}
}
