package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

// DefaultSegments is the number of line segments used to draw a circle
const DefaultSegments = 64

var (
	pointColor  = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	circleColor = color.RGBA{R: 255, G: 150, B: 255, A: 255}
	centerColor = color.RGBA{R: 255, G: 100, B: 255, A: 255}
)

// Options controls the plot layout
type Options struct {
	Title    string
	Segments int
	Width    vg.Length
	Height   vg.Length
}

// DefaultOptions returns a square 6 inch plot
func DefaultOptions() Options {
	return Options{
		Title:    "Circle fit",
		Segments: DefaultSegments,
		Width:    6 * vg.Inch,
		Height:   6 * vg.Inch,
	}
}

// PlotFit plots the input points and the fitted circle with its center. The
// zero circle returned for a failed fit is not drawn.
func PlotFit(points []geometry.Vector2, circle geometry.Circle, opts Options) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, errors.New("no points to plot")
	}
	if opts.Segments < 3 {
		opts.Segments = DefaultSegments
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(toXYs(points))
	if err != nil {
		return nil, fmt.Errorf("failed to plot points: %w", err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("points", scatter)

	bounds := geometry.BoundsOf(points)

	if !circle.IsZero() && circle.Radius > 0 {
		outline, err := plotter.NewLine(toXYs(Outline(circle, opts.Segments)))
		if err != nil {
			return nil, fmt.Errorf("failed to plot circle: %w", err)
		}
		outline.LineStyle.Color = circleColor
		outline.LineStyle.Width = vg.Points(1.5)

		center, err := plotter.NewScatter(toXYs([]geometry.Vector2{circle.Center}))
		if err != nil {
			return nil, fmt.Errorf("failed to plot center: %w", err)
		}
		center.GlyphStyle.Color = centerColor
		center.GlyphStyle.Radius = vg.Points(4)
		center.GlyphStyle.Shape = draw.CrossGlyph{}

		p.Add(outline, center)
		p.Legend.Add(fmt.Sprintf("r = %.3f", circle.Radius), outline)

		bounds.Extend(circle.Center.Sub(geometry.NewVector2(circle.Radius, circle.Radius)))
		bounds.Extend(circle.Center.Add(geometry.NewVector2(circle.Radius, circle.Radius)))
	}

	squareAxes(p, bounds)
	return p, nil
}

// Outline returns segments+1 points tracing the circle, the last equal to the first
func Outline(circle geometry.Circle, segments int) []geometry.Vector2 {
	points := make([]geometry.Vector2, segments+1)
	for i := 0; i < segments; i++ {
		points[i] = circle.PointAt(float64(i) * 2.0 * math.Pi / float64(segments))
	}
	points[segments] = points[0]
	return points
}

// SavePNG plots the fit and writes it to path; the extension picks the image format
func SavePNG(path string, points []geometry.Vector2, circle geometry.Circle, opts Options) error {
	p, err := PlotFit(points, circle, opts)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// WritePNG plots the fit and writes a PNG image to w
func WritePNG(w io.Writer, points []geometry.Vector2, circle geometry.Circle, opts Options) error {
	p, err := PlotFit(points, circle, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

// squareAxes gives both axes the same span so circles are drawn round
func squareAxes(p *plot.Plot, b geometry.Bounds) {
	size := b.Size()
	half := math.Max(size.X, size.Y)/2*1.05 + 1e-9
	c := b.Center()

	p.X.Min, p.X.Max = c.X-half, c.X+half
	p.Y.Min, p.Y.Max = c.Y-half, c.Y+half
}

func toXYs(points []geometry.Vector2) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i].X = p.X
		xys[i].Y = p.Y
	}
	return xys
}
