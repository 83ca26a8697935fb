// Package render draws simple pictures with the ray kernel: flat sphere
// silhouettes, a clock face and a projectile's path.
package render

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"raykernel/affinetransform"
	"raykernel/canvas"
	"raykernel/color"
	"raykernel/geometry"
	"raykernel/intersection"
	"raykernel/ray"
	"raykernel/vmath/matrix"
	"raykernel/vmath/tuple"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
	"golang.org/x/xerrors"
)

// Options configures Silhouette.  Zero fields take the defaults noted below.
type Options struct {
	// CanvasSize is the width and height of the output in pixels.  Default 100.
	CanvasSize int

	// The wall is a square of side WallSize centered on the z axis at WallZ.
	// Defaults 7 and 10.
	WallSize float64
	WallZ    float64

	// Eye is where every ray starts.  Default point (0, 0, -5).
	Eye tuple.T

	// Color paints pixels whose ray hits a sphere.  Default red.
	Color color.RGB

	// Parallelism bounds the number of rows traced at once.  Default 8.
	Parallelism int

	// ProgressInterval is the minimum time between progress callbacks, apart
	// from the final one.  Default 100ms.
	ProgressInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.CanvasSize <= 0 {
		o.CanvasSize = 100
	}
	if o.WallSize <= 0 {
		o.WallSize = 7
	}
	if o.WallZ == 0 {
		o.WallZ = 10
	}
	if o.Eye == (tuple.T{}) {
		o.Eye = tuple.Point(0, 0, -5)
	}
	if o.Color == (color.RGB{}) {
		o.Color = color.RGB{R: 1}
	}
	if o.Parallelism <= 0 {
		o.Parallelism = 8
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 100 * time.Millisecond
	}
	return o
}

// ProgressFunc receives the number of finished rows.  Calls are serialized,
// and the last one always reports done == total.
type ProgressFunc func(done, total int)

// Silhouette casts one ray per pixel from the eye through the wall and paints
// the pixel when the ray hits any of the spheres.  Spheres are only read.
func Silhouette(ctx context.Context, spheres []geometry.Sphere, opts Options, progress ProgressFunc) (*canvas.Canvas, error) {
	tracer := otel.Tracer("raykernel/render")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "render.Silhouette")
	defer span.End()

	opts = opts.withDefaults()
	span.SetAttributes(
		attribute.Int64("canvas_size", int64(opts.CanvasSize)),
		attribute.Int64("spheres", int64(len(spheres))),
	)

	start := time.Now()
	size := opts.CanvasSize
	c := canvas.New(size, size)

	pixelSize := opts.WallSize / float64(size)
	half := opts.WallSize / 2

	var rowsDone atomic.Int64
	var progressMu sync.Mutex
	lastReported := 0
	limiter := rate.NewLimiter(rate.Every(opts.ProgressInterval), 1)
	report := func(done int) {
		if progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		// Rows finish out of order, so a smaller count may arrive late.
		if done <= lastReported {
			return
		}
		if done == size || limiter.Allow() {
			lastReported = done
			progress(done, size)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(opts.Parallelism))

	var acquireErr error
	for y := 0; y < size; y++ {
		if err := sem.Acquire(egCtx, 1); err != nil {
			acquireErr = xerrors.Errorf("while acquiring row semaphore: %w", err)
			break
		}

		y := y // per-iteration copy (go directive is 1.21, pre-loopvar semantics)
		eg.Go(func() error {
			defer sem.Release(1)
			if err := egCtx.Err(); err != nil {
				return xerrors.Errorf("while tracing row %d: %w", y, err)
			}

			worldY := half - pixelSize*float64(y)
			for x := 0; x < size; x++ {
				worldX := -half + pixelSize*float64(x)
				target := tuple.Point(worldX, worldY, opts.WallZ)
				r := ray.New(opts.Eye, tuple.Normalize(tuple.Sub(target, opts.Eye)))
				if _, ok := castRay(r, spheres).Hit(); ok {
					c.Set(x, y, opts.Color)
				}
			}

			done := int(rowsDone.Add(1))
			glog.V(2).Infof("Traced row %d (%d/%d done)", y, done, size)
			report(done)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		err = xerrors.Errorf("while waiting for row tracers: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if acquireErr != nil {
		span.RecordError(acquireErr)
		span.SetStatus(codes.Error, acquireErr.Error())
		return nil, acquireErr
	}

	glog.V(1).Infof("Traced %dx%d silhouette of %d spheres in %v", size, size, len(spheres), time.Since(start))
	span.SetStatus(codes.Ok, "")
	return c, nil
}

func castRay(r ray.Ray, spheres []geometry.Sphere) intersection.Intersections {
	sets := make([]intersection.Intersections, 0, len(spheres))
	for _, s := range spheres {
		sets = append(sets, r.Intersect(s))
	}
	return intersection.Merge(sets...)
}

// ClockPoints returns the twelve hour marks of a clock of the given radius,
// lying in the y=0 plane with twelve o'clock on the +z axis.
func ClockPoints(radius float64) []tuple.T {
	twelve := tuple.Point(0, 0, radius)
	points := make([]tuple.T, 0, 12)
	for hour := 0; hour < 12; hour++ {
		rot := affinetransform.RotationY(float64(hour) * math.Pi / 6)
		points = append(points, matrix.MulMT(rot, twelve))
	}
	return points
}

// Clock plots ClockPoints on a size x size canvas, looking down the y axis.
func Clock(size int, radius float64) *canvas.Canvas {
	c := canvas.New(size, size)
	center := float64(size) / 2
	for _, p := range ClockPoints(radius) {
		x := int(math.Round(center + p.X()))
		y := int(math.Round(center - p.Z()))
		c.Set(x, y, color.White)
	}
	return c
}

// Trajectory plots points by their x and y, with y increasing upward.
// Points that fall outside the canvas are dropped.
func Trajectory(width, height int, points []tuple.T) *canvas.Canvas {
	c := canvas.New(width, height)
	for _, p := range points {
		x := int(math.Round(p.X()))
		y := height - 1 - int(math.Round(p.Y()))
		c.Set(x, y, color.RGB{R: 1, G: 0.8, B: 0.6})
	}
	return c
}
