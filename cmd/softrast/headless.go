package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/render"
)

// shot is a camera placement around the origin, angles in degrees.
type shot struct {
	Yaw      float64
	Pitch    float64
	Distance float64
}

func (a *app) renderCmd() *cobra.Command {
	var out string
	s := shot{Yaw: 30, Pitch: 20, Distance: 4}

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render one frame to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			stats, err := renderPNG(cfg, path, out, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d triangles, %d pixels\n", out, stats.Triangles, stats.Pixels)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "softrast.png", "output PNG file")
	f.IntVar(&a.flags.Width, "width", a.flags.Width, "image width in pixels")
	f.IntVar(&a.flags.Height, "height", a.flags.Height, "image height in pixels")
	f.Float64Var(&s.Yaw, "yaw", s.Yaw, "camera orbit yaw in degrees")
	f.Float64Var(&s.Pitch, "pitch", s.Pitch, "camera orbit pitch in degrees")
	f.Float64Var(&s.Distance, "distance", s.Distance, "camera distance from the model center")
	return cmd
}

// renderPNG renders the model at path (a cube when empty) from s and writes
// the frame to out.
func renderPNG(cfg config, path, out string, s shot) (render.FrameStats, error) {
	model, err := loadModel(path, cfg)
	if err != nil {
		return render.FrameStats{}, err
	}
	bg, err := cfg.background()
	if err != nil {
		return render.FrameStats{}, err
	}

	cam := cfg.camera()
	cam.Orbit(math3d.V3(0, 0, 0), s.Distance, s.Yaw*math.Pi/180, s.Pitch*math.Pi/180)

	r := render.NewRenderer(render.NewFramebuffer(cfg.Width, cfg.Height))
	cfg.configure(r)
	r.ClearBuffers(bg)
	r.RenderScene(&render.Scene{Camera: cam, Models: []*render.Model{model}})

	if err := r.Framebuffer().SavePNG(out); err != nil {
		return r.Stats, err
	}
	return r.Stats, nil
}
