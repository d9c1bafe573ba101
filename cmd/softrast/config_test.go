package main

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/taigrr/softrast/pkg/render"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
width = 320
height = 200
fov = 45.0
background = "#ff8000"
raster = "scalar"
no_cull = true
`)
	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 200 || cfg.FOV != 45 || !cfg.NoCull || cfg.Raster != "scalar" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.FPS != 30 || cfg.Far != 100 || cfg.MaxTextureSize != 1024 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("implicit missing config: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	if _, err := loadConfig(path, true); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("explicit missing config: err = %v, want ErrNotExist", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeFile(t, "bad.toml", "width = \"wide\"\n")
	if _, err := loadConfig(path, false); err == nil {
		t.Error("expected an error for a mistyped key")
	}
}

func TestMergeOnlySetFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bound := defaultConfig()
	bound.bindFlags(flags)
	flags.IntVar(&bound.Width, "width", bound.Width, "")
	if err := flags.Parse([]string{"--fov=45", "--raster=scalar", "--width=99", "--wireframe"}); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.FOV = 70
	cfg.Near = 0.5
	cfg.Height = 77
	cfg.merge(bound, flags)

	if cfg.FOV != 45 || cfg.Raster != "scalar" || cfg.Width != 99 || !cfg.Wireframe {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Near != 0.5 || cfg.Height != 77 {
		t.Errorf("file values overwritten: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config)
		ok     bool
	}{
		{"defaults", func(*config) {}, true},
		{"raster", func(c *config) { c.Raster = "gpu" }, false},
		{"raster alias", func(c *config) { c.Raster = "simd" }, true},
		{"fps", func(c *config) { c.FPS = 0 }, false},
		{"size", func(c *config) { c.Height = -1 }, false},
		{"near zero", func(c *config) { c.Near = 0 }, false},
		{"far before near", func(c *config) { c.Far = 0.05 }, false},
		{"fov narrow", func(c *config) { c.FOV = 1 }, false},
		{"fov wide", func(c *config) { c.FOV = 120 }, false},
		{"fov limit", func(c *config) { c.FOV = 90 }, true},
		{"background", func(c *config) { c.Background = "teal" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(&cfg)
			if err := cfg.validate(); (err == nil) != tc.ok {
				t.Errorf("validate() = %v, want ok %v", err, tc.ok)
			}
		})
	}
}

func TestConfigApplies(t *testing.T) {
	cfg := defaultConfig()
	cfg.Background = "#102030"
	cfg.FOV = 90
	cfg.Raster = "scalar"
	cfg.NoCull = true

	bg, err := cfg.background()
	if err != nil {
		t.Fatal(err)
	}
	if bg != render.RGB(0x10, 0x20, 0x30) {
		t.Errorf("background = %#x", uint32(bg))
	}

	cam := cfg.camera()
	if math.Abs(cam.FOV-math.Pi/2) > 1e-12 || cam.Near != cfg.Near || cam.Far != cfg.Far {
		t.Errorf("camera = %+v", cam)
	}

	r := render.NewRenderer(render.NewFramebuffer(1, 1))
	cfg.configure(r)
	if r.Raster != render.RasterScalar || !r.DisableBackfaceCulling || r.Wireframe {
		t.Errorf("renderer = raster %v cull-off %v wire %v", r.Raster, r.DisableBackfaceCulling, r.Wireframe)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := defaultConfigPath(); got != "/tmp/xdg/softrast/config.toml" {
		t.Errorf("defaultConfigPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/me")
	if got := defaultConfigPath(); got != "/home/me/.config/softrast/config.toml" {
		t.Errorf("defaultConfigPath() = %q", got)
	}
}
