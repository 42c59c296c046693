package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/philipparndt/circlefit/internal/config"
	"github.com/philipparndt/circlefit/pkg/geometry"
)

// arcFlags holds the noise settings shared by demo and generate; the arc
// geometry itself goes through config
type arcFlags struct {
	noise float64
	seed  uint64
}

func addArcFlags(rt *runtime, cmd *cobra.Command, af *arcFlags) {
	cmd.Flags().Float64("center-x", 500, "X coordinate of the arc center")
	cmd.Flags().Float64("center-y", 500, "Y coordinate of the arc center")
	cmd.Flags().Float64("radius", 300, "Radius of the arc")
	cmd.Flags().Int("points", geometry.DefaultArcPoints, "Number of points on the arc")
	cmd.Flags().Float64("span", geometry.DefaultArcSpan, "Angular span of the arc in radians")
	cmd.Flags().Float64Var(&af.noise, "noise", 0, "Standard deviation of Gaussian noise added to each coordinate")
	cmd.Flags().Uint64Var(&af.seed, "seed", 1, "Seed for the noise generator")

	rt.bind(cmd, "arc.center_x", "center-x")
	rt.bind(cmd, "arc.center_y", "center-y")
	rt.bind(cmd, "arc.radius", "radius")
	rt.bind(cmd, "arc.points", "points")
	rt.bind(cmd, "arc.span", "span")
}

// arcPoints builds the configured synthetic arc
func arcPoints(cfg *config.Config, af arcFlags) []geometry.Vector2 {
	points := geometry.ArcPoints(cfg.ArcCenter(), cfg.Arc.Radius, cfg.Arc.Points, cfg.Arc.Span)
	if af.noise > 0 {
		points = geometry.Perturb(points, af.noise, rand.New(rand.NewPCG(af.seed, af.seed)))
	}
	return points
}

func newDemoCmd(rt *runtime) *cobra.Command {
	var (
		af       arcFlags
		plotPath string
	)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Fit a circle to a synthetic arc",
		Long: `Generate points on a known arc (by default center (500, 500), radius 300,
360 points over 1/32 of a turn) and fit a circle to them. Prints the initial
zero state and the fitted center and radius as tab separated values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			points := arcPoints(rt.cfg, af)

			var initial geometry.Circle
			fmt.Fprintf(out, "%f\t%f\t%f\n", initial.Center.X, initial.Center.Y, initial.Radius)

			fit, err := fitPoints(rt, "demo", points)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%f\t%f\t%f\n", fit.Center.X, fit.Center.Y, fit.Radius)

			if plotPath != "" {
				return savePlot(rt, plotPath, points, fit.Circle)
			}
			return nil
		},
	}

	addArcFlags(rt, demoCmd, &af)
	demoCmd.Flags().StringVar(&plotPath, "plot", "", "Write a plot of points and fitted circle to this PNG file")

	return demoCmd
}
