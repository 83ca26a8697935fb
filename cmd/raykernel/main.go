// raykernel draws demonstration images with the ray kernel: sphere
// silhouettes, a clock face and a projectile trajectory.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"raykernel/affinetransform"
	"raykernel/canvas"
	"raykernel/geometry"
	"raykernel/projectile"
	"raykernel/render"
	"raykernel/vmath/tuple"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/xerrors"
)

var cmdRoot = &cobra.Command{
	Use:          "raykernel",
	SilenceUsage: true,
}

var output string

func init() {
	cmdRoot.PersistentFlags().StringVar(&output, "output", "out.ppm", "Image to write.  The extension (.ppm or .png) picks the format.")
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmdRoot.AddCommand(cmdSilhouette, cmdClock, cmdTrajectory)
}

func save(c *canvas.Canvas) error {
	if err := c.Save(output); err != nil {
		return xerrors.Errorf("while saving image: %w", err)
	}
	glog.Infof("Wrote %dx%d image to %s", c.Width(), c.Height(), output)
	return nil
}

var cmdSilhouette = &cobra.Command{
	Use:   "silhouette",
	Short: "Trace the shadow of a transformed sphere onto a wall",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if len(silhouetteScale) != 3 || len(silhouetteTranslate) != 3 {
			return xerrors.New("--scale and --translate need exactly three values")
		}

		xform := affinetransform.Identity().
			Scale(silhouetteScale[0], silhouetteScale[1], silhouetteScale[2]).
			Shear(silhouetteShearXY, 0, 0, 0, 0, 0).
			RotateZ(silhouetteRotateZ * math.Pi / 180).
			Translate(silhouetteTranslate[0], silhouetteTranslate[1], silhouetteTranslate[2])

		sphere := geometry.NewSphere(&geometry.IDAllocator{})
		if err := sphere.SetTransform(xform.Matrix()); err != nil {
			return xerrors.Errorf("while placing sphere: %w", err)
		}

		opts := render.Options{
			CanvasSize:  silhouetteSize,
			Parallelism: silhouetteParallelism,
		}
		c, err := render.Silhouette(ctx, []geometry.Sphere{sphere}, opts, progressPrinter())
		if err != nil {
			return xerrors.Errorf("while rendering silhouette: %w", err)
		}
		return save(c)
	},
}

var (
	silhouetteSize        int
	silhouetteParallelism int
	silhouetteScale       []float64
	silhouetteShearXY     float64
	silhouetteRotateZ     float64
	silhouetteTranslate   []float64
)

func init() {
	cmdSilhouette.Flags().IntVar(&silhouetteSize, "size", 100, "Width and height of the image in pixels.")
	cmdSilhouette.Flags().IntVar(&silhouetteParallelism, "parallelism", 8, "Rows traced concurrently.")
	cmdSilhouette.Flags().Float64SliceVar(&silhouetteScale, "scale", []float64{1, 1, 1}, "Sphere scale factors x,y,z.")
	cmdSilhouette.Flags().Float64Var(&silhouetteShearXY, "shear-xy", 0, "Shear x in proportion to y.")
	cmdSilhouette.Flags().Float64Var(&silhouetteRotateZ, "rotate-z", 0, "Rotation about z in degrees, applied after scale and shear.")
	cmdSilhouette.Flags().Float64SliceVar(&silhouetteTranslate, "translate", []float64{0, 0, 0}, "Sphere translation x,y,z, applied last.")
}

// progressPrinter draws an in-place progress line when stderr is a terminal,
// and logs at V(1) otherwise.
func progressPrinter() render.ProgressFunc {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rTraced %d/%d rows", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
	return func(done, total int) {
		glog.V(1).Infof("Traced %d/%d rows", done, total)
	}
}

var cmdClock = &cobra.Command{
	Use:   "clock",
	Short: "Plot the twelve hour marks of a clock face",
	RunE: func(cmd *cobra.Command, args []string) error {
		radius := clockRadius
		if radius <= 0 {
			radius = float64(clockSize) * 3 / 8
		}
		return save(render.Clock(clockSize, radius))
	},
}

var (
	clockSize   int
	clockRadius float64
)

func init() {
	cmdClock.Flags().IntVar(&clockSize, "size", 100, "Width and height of the image in pixels.")
	cmdClock.Flags().Float64Var(&clockRadius, "radius", 0, "Clock radius in pixels.  Defaults to 3/8 of --size.")
}

var cmdTrajectory = &cobra.Command{
	Use:   "trajectory",
	Short: "Plot the path of a projectile under gravity and wind",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := projectile.Projectile{
			Position: tuple.Point(0, 1, 0),
			Velocity: tuple.MulTS(tuple.Normalize(tuple.Vector(1, 1.8, 0)), trajectorySpeed),
		}
		env := projectile.Environment{
			Gravity: tuple.Vector(0, -trajectoryGravity, 0),
			Wind:    tuple.Vector(-trajectoryWind, 0, 0),
		}

		states := projectile.Trajectory(env, start, trajectoryMaxTicks)
		points := make([]tuple.T, 0, len(states))
		for _, s := range states {
			points = append(points, s.Position)
		}
		last := states[len(states)-1].Position
		glog.Infof("Projectile came down after %d ticks at x=%.2f", len(states)-1, last.X())

		return save(render.Trajectory(trajectoryWidth, trajectoryHeight, points))
	},
}

var (
	trajectoryWidth    int
	trajectoryHeight   int
	trajectorySpeed    float64
	trajectoryGravity  float64
	trajectoryWind     float64
	trajectoryMaxTicks int
)

func init() {
	cmdTrajectory.Flags().IntVar(&trajectoryWidth, "width", 900, "Image width in pixels.")
	cmdTrajectory.Flags().IntVar(&trajectoryHeight, "height", 550, "Image height in pixels.")
	cmdTrajectory.Flags().Float64Var(&trajectorySpeed, "speed", 11.25, "Launch speed per tick.")
	cmdTrajectory.Flags().Float64Var(&trajectoryGravity, "gravity", 0.1, "Downward acceleration per tick.")
	cmdTrajectory.Flags().Float64Var(&trajectoryWind, "wind", 0.01, "Headwind acceleration per tick.")
	cmdTrajectory.Flags().IntVar(&trajectoryMaxTicks, "max-ticks", 10000, "Stop after this many ticks even if still airborne.")
}

func main() {
	// glog's flags are parsed by cobra; this only marks the Go flag set parsed.
	flag.CommandLine.Parse([]string{})
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := cmdRoot.Execute(); err != nil {
		glog.Exitf("Error: %v", err)
	}
}
