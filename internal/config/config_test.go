package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Spring.Stiffness != 0.05 {
		t.Errorf("expected stiffness 0.05, got %f", cfg.Spring.Stiffness)
	}
	if cfg.Spring.Damping != 0.6 {
		t.Errorf("expected damping 0.6, got %f", cfg.Spring.Damping)
	}
	if cfg.Layout.OffsetP1.X != -120 || cfg.Layout.OffsetP2.X != 120 {
		t.Errorf("expected symmetric ±120 offsets, got %+v %+v", cfg.Layout.OffsetP1, cfg.Layout.OffsetP2)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"samples", func(c *Config) { c.Render.Samples = 0 }, "render.samples"},
		{"stride", func(c *Config) { c.Render.TangentStride = -1 }, "render.tangent_stride"},
		{"fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"viewport", func(c *Config) { c.Viewport.Height = 0 }, "viewport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateAllowsAnyTuning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spring.Stiffness = 7
	cfg.Spring.Damping = -2
	if err := cfg.Validate(); err != nil {
		t.Errorf("spring tuning must not be validated: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bezspring.yaml")
	cfg := GetPreset("split")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "spring:\n  stiffness: 0.1\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Spring.Stiffness != 0.1 {
		t.Errorf("expected stiffness 0.1, got %f", cfg.Spring.Stiffness)
	}
	if cfg.Render.Samples != DefaultSamples {
		t.Errorf("expected default samples, got %d", cfg.Render.Samples)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render:\n  fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for fps 0")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("split")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Layout.OffsetP1.Y >= 0 || cfg.Layout.OffsetP2.Y <= 0 {
		t.Errorf("expected P1 above and P2 below the pointer, got %+v %+v", cfg.Layout.OffsetP1, cfg.Layout.OffsetP2)
	}

	cfg.Spring.Stiffness = 99
	if Presets["split"].Spring.Stiffness == 99 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("expected sorted names, got %v", presets)
		}
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}
	defer w.Close()

	cfg := DefaultConfig()
	cfg.Spring.Damping = 0.25
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got.Spring.Damping == 0.25 {
				return
			}
		case err := <-w.Errors:
			t.Logf("watcher error (retrying): %v", err)
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}
}
