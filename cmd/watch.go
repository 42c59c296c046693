package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/philipparndt/circlefit/internal/config"
	"github.com/philipparndt/circlefit/pkg/analysis"
	"github.com/philipparndt/circlefit/pkg/pointio"
	"github.com/philipparndt/circlefit/pkg/report"
	"github.com/philipparndt/circlefit/pkg/watcher"
)

func newWatchCmd(rt *runtime) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Refit a point file whenever it changes",
		Long:  "Fit the points in a file, then watch it and print a new report after every change until interrupted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, rt, cmd.OutOrStdout(), args[0])
		},
	}

	watchCmd.Flags().Duration("debounce", config.DefaultDebounce, "Wait this long after the last change before refitting")
	rt.bind(watchCmd, "watch.debounce", "debounce")

	return watchCmd
}

func runWatch(ctx context.Context, rt *runtime, out io.Writer, filename string) error {
	var mu sync.Mutex
	refit := func(path string) {
		mu.Lock()
		defer mu.Unlock()

		if err := fitAndReport(rt, out, path); err != nil {
			rt.logger.Error("refit failed", "path", path, "error", err)
		}
	}

	fw, err := watcher.NewFileWatcher(rt.cfg.Watch.Debounce, rt.logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch([]string{filename}, refit); err != nil {
		return err
	}

	refit(filename)
	rt.logger.Info("watching for changes", "path", filename, "debounce", rt.cfg.Watch.Debounce)

	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// fitAndReport reads, fits and reports one point file
func fitAndReport(rt *runtime, out io.Writer, filename string) error {
	points, err := pointio.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read points: %w", err)
	}

	fit, err := fitPoints(rt, filename, points)
	if err != nil {
		return err
	}

	rt.logger.Info("refitted", "path", filename, "circle", fit.Circle.String())

	r := report.New(filename, fit, analysis.Analyze(points, fit.Circle))
	return report.Write(out, r, rt.cfg.ReportFormat())
}
