package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/circlefit/pkg/pointio"
)

func newGenerateCmd(rt *runtime) *cobra.Command {
	var af arcFlags

	generateCmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Write points on a synthetic arc to a file",
		Long: `Write points on a known arc to a two-column text file that the fit command
reads back. A compression extension such as .gz compresses the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			points := arcPoints(rt.cfg, af)

			if err := pointio.WriteFile(filename, points); err != nil {
				return fmt.Errorf("failed to write points: %w", err)
			}

			rt.logger.Info("wrote arc",
				"path", filename,
				"points", len(points),
				"radius", rt.cfg.Arc.Radius,
				"noise", af.noise)
			return nil
		},
	}

	addArcFlags(rt, generateCmd, &af)

	return generateCmd
}
