package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/pkg/logging"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/render"
)

// Input step sizes.
const (
	keyTurn   = 10 * math.Pi / 180
	dragTurn  = 2 * math.Pi / 180
	zoomStep  = 0.5
	homeYaw   = 30
	homePitch = 20
	homeDist  = 4
)

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [model]",
		Short: "View a model in the terminal",
		Long: "view renders a model into the terminal with half-block characters.\n\n" +
			"  drag, a/d/w/s, arrows  orbit\n" +
			"  scroll, +/-            zoom\n" +
			"  x  wireframe   c  culling   m  scalar/wide   t  texture\n" +
			"  r  reset       q, esc     quit",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			// The terminal belongs to the viewer, so logs only go to a file.
			closeLog, err := setupLogging(cfg, nil)
			if err != nil {
				return err
			}
			defer closeLog()

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			model, err := loadModel(path, cfg)
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), cfg, model)
		},
	}
}

// viewer is the interactive state between frames.
type viewer struct {
	cfg      config
	bg       render.Color
	renderer *render.Renderer
	camera   *render.Camera
	model    *render.Model
	texture  *render.Texture // the model's own texture while toggled off
	orbit    *orbit

	dragging bool
	lastX    int
	lastY    int
	dirty    bool
}

func newViewer(cfg config, model *render.Model, cols, rows int) (*viewer, error) {
	bg, err := cfg.background()
	if err != nil {
		return nil, err
	}
	w, h := render.FramebufferSize(cols, rows)
	v := &viewer{
		cfg:      cfg,
		bg:       bg,
		renderer: render.NewRenderer(render.NewFramebuffer(w, h)),
		camera:   cfg.camera(),
		model:    model,
		orbit:    newOrbit(cfg.FPS, shot{Yaw: homeYaw, Pitch: homePitch, Distance: homeDist}),
		dirty:    true,
	}
	cfg.configure(v.renderer)
	return v, nil
}

// action is a viewer command bound to a key.
type action int

const (
	actNone action = iota
	actQuit
	actLeft
	actRight
	actUp
	actDown
	actZoomIn
	actZoomOut
	actReset
	actWireframe
	actCulling
	actRaster
	actTexture
)

func keyAction(ev uv.KeyPressEvent) action {
	switch {
	case ev.MatchString("escape", "q", "ctrl+c"):
		return actQuit
	case ev.MatchString("a", "left"):
		return actLeft
	case ev.MatchString("d", "right"):
		return actRight
	case ev.MatchString("w", "up"):
		return actUp
	case ev.MatchString("s", "down"):
		return actDown
	case ev.MatchString("+", "="):
		return actZoomIn
	case ev.MatchString("-", "_"):
		return actZoomOut
	case ev.MatchString("r"):
		return actReset
	case ev.MatchString("x"):
		return actWireframe
	case ev.MatchString("c"):
		return actCulling
	case ev.MatchString("m"):
		return actRaster
	case ev.MatchString("t"):
		return actTexture
	}
	return actNone
}

// apply runs act and reports whether the viewer should keep running.
func (v *viewer) apply(act action) bool {
	r := v.renderer
	switch act {
	case actQuit:
		return false
	case actLeft:
		v.orbit.turn(-keyTurn, 0)
	case actRight:
		v.orbit.turn(keyTurn, 0)
	case actUp:
		v.orbit.turn(0, keyTurn)
	case actDown:
		v.orbit.turn(0, -keyTurn)
	case actZoomIn:
		v.orbit.zoom(zoomStep)
	case actZoomOut:
		v.orbit.zoom(-zoomStep)
	case actReset:
		v.orbit.reset()
	case actWireframe:
		r.Wireframe = !r.Wireframe
	case actCulling:
		r.DisableBackfaceCulling = !r.DisableBackfaceCulling
	case actRaster:
		if r.Raster == render.RasterWide {
			r.Raster = render.RasterScalar
		} else {
			r.Raster = render.RasterWide
		}
	case actTexture:
		v.model.Texture, v.texture = v.texture, v.model.Texture
	case actNone:
		return true
	}
	logging.Logger().Debug("view action", "action", int(act), "wireframe", r.Wireframe,
		"cull", !r.DisableBackfaceCulling, "raster", r.Raster, "textured", v.model.Texture != nil)
	v.dirty = true
	return true
}

// resize matches the framebuffer to a terminal of cols x rows cells.
func (v *viewer) resize(cols, rows int) {
	v.renderer.Resize(render.FramebufferSize(cols, rows))
	v.dirty = true
}

func (v *viewer) press(x, y int) {
	v.dragging = true
	v.lastX, v.lastY = x, y
}

func (v *viewer) release() {
	v.dragging = false
}

// drag turns the orbit by the mouse motion since the last event. Dragging
// right swings the camera right, dragging up raises it.
func (v *viewer) drag(x, y int) {
	if !v.dragging {
		return
	}
	v.orbit.turn(float64(x-v.lastX)*dragTurn, float64(v.lastY-y)*dragTurn)
	v.lastX, v.lastY = x, y
}

// frame advances the springs and renders when anything changed. It
// reports whether a new frame was drawn.
func (v *viewer) frame() bool {
	if !v.dirty && v.orbit.settled() {
		return false
	}
	v.dirty = false
	v.orbit.update()

	o := v.orbit
	v.camera.Orbit(math3d.V3(0, 0, 0), o.Distance.Value, o.Yaw.Value, o.Pitch.Value)

	v.renderer.ClearBuffers(v.bg)
	v.renderer.RenderScene(&render.Scene{Camera: v.camera, Models: []*render.Model{v.model}})
	return true
}

func runViewer(ctx context.Context, cfg config, model *render.Model) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	v, err := newViewer(cfg, model, cols, rows)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	// Any-event mouse tracking with SGR coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				v.resize(cols, rows)
			case uv.KeyPressEvent:
				if !v.apply(keyAction(ev)) {
					return nil
				}
			case uv.MouseClickEvent:
				v.press(ev.X, ev.Y)
			case uv.MouseReleaseEvent:
				v.release()
			case uv.MouseMotionEvent:
				v.drag(ev.X, ev.Y)
			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					v.apply(actZoomIn)
				case uv.MouseWheelDown:
					v.apply(actZoomOut)
				}
			}

		case <-ticker.C:
			if !v.frame() {
				continue
			}
			v.renderer.Framebuffer().Draw(term, uv.Rectangle(image.Rect(0, 0, cols, rows)))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
