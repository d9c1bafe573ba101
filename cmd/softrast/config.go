package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"

	"github.com/taigrr/softrast/pkg/render"
)

const configFile = "config.toml"

// config holds the settings shared by every command. Values come from the
// TOML config file and are overridden by flags the user sets explicitly.
type config struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	FPS            int     `toml:"fps"`
	FOV            float64 `toml:"fov"` // vertical, in degrees
	Near           float64 `toml:"near"`
	Far            float64 `toml:"far"`
	Background     string  `toml:"background"`
	Raster         string  `toml:"raster"`
	NoCull         bool    `toml:"no_cull"`
	Wireframe      bool    `toml:"wireframe"`
	Texture        string  `toml:"texture"`
	MaxTextureSize int     `toml:"max_texture_size"`
	LogFile        string  `toml:"log_file"`
	Debug          bool    `toml:"debug"`
}

func defaultConfig() config {
	return config{
		Width:          640,
		Height:         480,
		FPS:            30,
		FOV:            60,
		Near:           0.1,
		Far:            100,
		Background:     "#1e1e28",
		Raster:         "wide",
		MaxTextureSize: 1024,
	}
}

func defaultConfigPath() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "softrast", configFile)
}

func xdgOrFallback(xdg, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		return dir
	}
	return fallback
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the user named it explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// bindFlags registers the config flags with the config's values as defaults.
func (c *config) bindFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.FPS, "fps", c.FPS, "target frames per second (view)")
	flags.Float64Var(&c.FOV, "fov", c.FOV, "vertical field of view in degrees")
	flags.Float64Var(&c.Near, "near", c.Near, "near plane distance")
	flags.Float64Var(&c.Far, "far", c.Far, "far plane distance")
	flags.StringVar(&c.Background, "bg", c.Background, "background color as hex")
	flags.StringVar(&c.Raster, "raster", c.Raster, "pixel loop: scalar or wide")
	flags.BoolVar(&c.NoCull, "no-cull", c.NoCull, "draw back faces")
	flags.BoolVar(&c.Wireframe, "wireframe", c.Wireframe, "draw triangle edges only")
	flags.StringVar(&c.Texture, "texture", c.Texture, "texture image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	flags.IntVar(&c.MaxTextureSize, "max-texture", c.MaxTextureSize, "downscale textures larger than this (0 keeps full size)")
	flags.StringVar(&c.LogFile, "log", c.LogFile, "write logs to this file")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "log per-frame statistics")
}

// merge copies into c every flag the user set on flags from the
// flag-bound config src.
func (c *config) merge(src config, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "fps":
			c.FPS = src.FPS
		case "fov":
			c.FOV = src.FOV
		case "near":
			c.Near = src.Near
		case "far":
			c.Far = src.Far
		case "bg":
			c.Background = src.Background
		case "raster":
			c.Raster = src.Raster
		case "no-cull":
			c.NoCull = src.NoCull
		case "wireframe":
			c.Wireframe = src.Wireframe
		case "texture":
			c.Texture = src.Texture
		case "max-texture":
			c.MaxTextureSize = src.MaxTextureSize
		case "log":
			c.LogFile = src.LogFile
		case "debug":
			c.Debug = src.Debug
		case "width":
			c.Width = src.Width
		case "height":
			c.Height = src.Height
		}
	})
}

func (c *config) validate() error {
	if _, ok := render.ParseRasterMode(c.Raster); !ok {
		return fmt.Errorf("raster mode %q: want scalar or wide", c.Raster)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.Near > 0 && c.Far > c.Near) {
		return fmt.Errorf("need 0 < near < far, got near %v far %v", c.Near, c.Far)
	}
	if c.FOV < 2 || c.FOV > 90 {
		return fmt.Errorf("fov %v out of range [2, 90]", c.FOV)
	}
	if _, err := c.background(); err != nil {
		return err
	}
	return nil
}

func (c *config) background() (render.Color, error) {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return 0, fmt.Errorf("background %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	return render.RGB(r, g, b), nil
}

func (c *config) rasterMode() render.RasterMode {
	m, _ := render.ParseRasterMode(c.Raster)
	return m
}

// camera returns a camera with the configured projection.
func (c *config) camera() *render.Camera {
	cam := render.NewCamera()
	cam.FOV = c.FOV * math.Pi / 180
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}

// configure applies the raster settings to r.
func (c *config) configure(r *render.Renderer) {
	r.Raster = c.rasterMode()
	r.DisableBackfaceCulling = c.NoCull
	r.Wireframe = c.Wireframe
}
