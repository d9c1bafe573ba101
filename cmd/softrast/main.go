// softrast - software 3D rasterizer for the terminal.
// View OBJ, glTF and GLB files in your terminal, or render them to PNG.
//
// Controls (view):
//
//	Mouse drag  - Orbit the model
//	Scroll      - Zoom in/out
//	W/S         - Orbit up/down
//	A/D         - Orbit left/right
//	+/-         - Adjust zoom
//	R           - Reset view
//	T           - Toggle texture on/off
//	X           - Toggle wireframe
//	C           - Toggle backface culling
//	M           - Switch scalar/wide rasterizer
//	Esc, Q      - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/pkg/logging"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/render"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// app carries the flag-bound settings shared by the subcommands.
type app struct {
	flags      config
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{flags: defaultConfig()}

	root := &cobra.Command{
		Use:   "softrast",
		Short: "Software 3D rasterizer for the terminal",
		Long: "softrast renders OBJ, glTF and GLB models on the CPU with a depth-buffered,\n" +
			"perspective-correct triangle rasterizer. Without a model it shows a cube.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "config file")
	a.flags.bindFlags(root.PersistentFlags())

	root.AddCommand(a.viewCmd(), a.renderCmd())
	return root
}

// resolve loads the config file and applies the flags set on cmd.
func (a *app) resolve(cmd *cobra.Command) (config, error) {
	cfg, err := loadConfig(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}
	cfg.merge(a.flags, cmd.Flags())
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupLogging routes the shared logger to the configured log file, or to
// fallback when no file is set. It returns a function that closes the file.
func setupLogging(cfg config, fallback io.Writer) (func() error, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	w := fallback
	closeLog := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeLog = f, f.Close
	}
	if w == nil {
		logging.SetLogger(nil)
		return closeLog, nil
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeLog, nil
}

// loadModel loads the model at path, or a cube when path is empty, scales it
// to fit a 2-unit box and binds its texture.
func loadModel(path string, cfg config) (*render.Model, error) {
	var mesh *models.Mesh
	if path == "" {
		mesh = models.NewCube(2)
	} else {
		var err error
		mesh, err = models.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
	}
	mesh.Fit(2)
	logging.Logger().Info("model loaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	var tex *render.Texture
	switch {
	case cfg.Texture != "":
		var err error
		tex, err = render.LoadTexture(cfg.Texture, cfg.MaxTextureSize)
		if err != nil {
			return nil, err
		}
	case mesh.Texture != nil:
		tex = render.TextureFromImage(mesh.Texture)
	}
	return render.NewModel(mesh, tex), nil
}
