package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/circlefit/pkg/analysis"
	"github.com/philipparndt/circlefit/pkg/geometry"
	"github.com/philipparndt/circlefit/pkg/pointio"
	"github.com/philipparndt/circlefit/pkg/render"
	"github.com/philipparndt/circlefit/pkg/report"
)

func newFitCmd(rt *runtime) *cobra.Command {
	var (
		plane    string
		plotPath  string
		worst     int
		tolerance float64
	)

	fitCmd := &cobra.Command{
		Use:   "fit [file]",
		Short: "Fit a circle to the points in a file",
		Long: `Fit a circle to the points in a file and report center, radius and fit quality.

Text files hold one point per line as two whitespace separated numbers. Files
ending in .wkt hold a WKT geometry. A trailing .gz, .bz2, .xz, .lz4, .sz or .zst
extension is decompressed first. With --plane, text files hold three columns
of points on an axis-aligned plane.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			out := cmd.OutOrStdout()

			if plane != "" {
				return runFit3D(rt, out, filename, plane)
			}

			points, err := pointio.ParseFile(filename)
			if err != nil {
				return fmt.Errorf("failed to read points: %w", err)
			}

			fit, err := fitPoints(rt, filename, points)
			if err != nil {
				return err
			}

			result := analysis.Analyze(points, fit.Circle)
			if err := report.Write(out, report.New(filename, fit, result), rt.cfg.ReportFormat()); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if !fit.Sentinel && rt.cfg.ReportFormat() == report.FormatText {
				if worst > 0 {
					printWorstPoints(out, result, worst)
				}
				if tolerance > 0 {
					printPointsBeyond(out, result, tolerance)
				}
			}

			if plotPath != "" {
				return savePlot(rt, plotPath, points, fit.Circle)
			}
			return nil
		},
	}

	fitCmd.Flags().StringVar(&plane, "plane", "", "Read three-column points lying on the xy, xz or yz plane")
	fitCmd.Flags().StringVar(&plotPath, "plot", "", "Write a plot of points and fitted circle to this PNG file")
	fitCmd.Flags().IntVarP(&worst, "worst", "n", 0, "List the points with the largest residuals")
	fitCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "List the points whose residual exceeds this distance")

	return fitCmd
}

// fitPoints runs the fit with the configured options and logs the outcome
func fitPoints(rt *runtime, source string, points []geometry.Vector2) (geometry.Fit, error) {
	fit, err := geometry.FitCircleDetailed(points, rt.cfg.FitOptions())
	if err != nil {
		rt.logger.Error("fit failed", "source", source, "points", len(points), "error", err)
		return geometry.Fit{}, fmt.Errorf("failed to fit circle: %w", err)
	}

	if fit.Sentinel {
		rt.logger.Warn("negative radius squared, returning zero circle",
			"source", source, "radius_squared", fit.RadiusSquared)
	} else {
		rt.logger.Debug("fitted circle",
			"source", source,
			"points", fit.Points,
			"center_x", fit.Center.X,
			"center_y", fit.Center.Y,
			"radius", fit.Radius,
			"condition", fit.Condition)
	}
	return fit, nil
}

func runFit3D(rt *runtime, out io.Writer, filename, plane string) error {
	if rt.cfg.ReportFormat() != report.FormatText {
		return fmt.Errorf("--plane supports text output only")
	}

	axis, err := geometry.ParsePlane(plane)
	if err != nil {
		return err
	}

	points, err := pointio.ParseFile3D(filename)
	if err != nil {
		return fmt.Errorf("failed to read points: %w", err)
	}

	fit, err := geometry.FitCircleToPoints3D(points, axis, rt.cfg.FitOptions())
	if err != nil {
		return fmt.Errorf("failed to fit circle: %w", err)
	}

	fmt.Fprintln(out, "Planar Circle Fit")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Source: %s\n", filename)
	fmt.Fprintf(out, "Points: %d\n", len(points))
	fmt.Fprintf(out, "Plane: %s (normal %s)\n\n", plane, formatVector3(fit.Normal))
	fmt.Fprintf(out, "  Center: %s\n", formatVector3(fit.Center))
	fmt.Fprintf(out, "  Radius: %.6f\n", fit.Radius)
	fmt.Fprintf(out, "  StdDev: %.6f units\n", fit.StdDev)
	return nil
}

func printWorstPoints(out io.Writer, result *analysis.FitAnalysis, count int) {
	points := analysis.FindWorstPoints(result, count)

	fmt.Fprintf(out, "\nTop %d Residuals\n", len(points))
	fmt.Fprintln(out, "===============")
	for i, p := range points {
		fmt.Fprintf(out, "%3d. #%d %s residual %s\n",
			i+1, p.Index, analysis.FormatVector(p.Point), analysis.FormatMeasurement(p.Residual, ""))
	}
}

func printPointsBeyond(out io.Writer, result *analysis.FitAnalysis, tolerance float64) {
	points := analysis.FindPointsBeyond(result, tolerance)

	fmt.Fprintf(out, "\n%d of %d Points Beyond %s\n", len(points), result.PointCount, analysis.FormatMeasurement(tolerance, ""))
	fmt.Fprintln(out, "===================")
	for _, p := range points {
		fmt.Fprintf(out, "  #%d %s residual %s\n",
			p.Index, analysis.FormatVector(p.Point), analysis.FormatMeasurement(p.Residual, ""))
	}
}

func savePlot(rt *runtime, path string, points []geometry.Vector2, circle geometry.Circle) error {
	opts := render.DefaultOptions()
	opts.Segments = rt.cfg.Plot.Segments
	if err := render.SavePNG(path, points, circle, opts); err != nil {
		return err
	}
	rt.logger.Info("wrote plot", "path", path)
	return nil
}

func formatVector3(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
