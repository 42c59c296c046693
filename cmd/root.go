package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/philipparndt/circlefit/internal/config"
	"github.com/philipparndt/circlefit/internal/logging"
	"github.com/philipparndt/circlefit/pkg/geometry"
	"github.com/philipparndt/circlefit/version"
)

// runtime is the state shared by all subcommands of one invocation
type runtime struct {
	viper      *viper.Viper
	cfg        *config.Config
	logger     *slog.Logger
	configFile string
	envFile    string
	bindings   []binding
}

// binding ties a flag of cmd to a config key
type binding struct {
	cmd  *cobra.Command
	key  string
	flag string
}

// bind records that flag overrides the config key. Several subcommands may
// bind the same key, so only the executing command's bindings are applied.
func (rt *runtime) bind(cmd *cobra.Command, key, flag string) {
	rt.bindings = append(rt.bindings, binding{cmd: cmd, key: key, flag: flag})
}

// applyBindings binds the flags of the root and the executing command
func (rt *runtime) applyBindings(cmd *cobra.Command) error {
	for _, b := range rt.bindings {
		if b.cmd != cmd && b.cmd != cmd.Root() {
			continue
		}
		f := b.cmd.Flags().Lookup(b.flag)
		if f == nil {
			f = b.cmd.PersistentFlags().Lookup(b.flag)
		}
		if f == nil {
			return fmt.Errorf("unknown flag %s for %s", b.flag, b.key)
		}
		if err := rt.viper.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.flag, err)
		}
	}
	return nil
}

// NewRootCmd builds the circlefit command tree
func NewRootCmd() *cobra.Command {
	rt := &runtime{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "circlefit",
		Short: "Least-squares circle fitting for 2D point sets",
		Long: `circlefit fits the center and radius of a circle to a set of 2D points
using a linearized least-squares method. Points are read from two-column text
files, WKT geometries or compressed variants of both.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.applyBindings(cmd); err != nil {
				return err
			}
			cfg, err := config.Load(rt.viper, config.Options{
				ConfigFile: rt.configFile,
				EnvFile:    rt.envFile,
			})
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rt.configFile, "config", "", "Config file (default: circlefit.{yaml,toml,json} in . or ~/.config/circlefit)")
	flags.StringVar(&rt.envFile, "env-file", "", "Environment file to load (default: .env if present)")
	flags.StringP("format", "f", "text", "Output format: text, json, yaml or toml")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.Bool("strict", false, "Treat a negative radius squared as an error instead of returning the zero circle")
	flags.Float64("cond-limit", geometry.DefaultConditionLimit, "Largest accepted condition number of the normal matrix")

	rt.bind(rootCmd, "output.format", "format")
	rt.bind(rootCmd, "log.level", "log-level")
	rt.bind(rootCmd, "log.format", "log-format")
	rt.bind(rootCmd, "fit.strict", "strict")
	rt.bind(rootCmd, "fit.cond_limit", "cond-limit")

	rootCmd.AddCommand(
		newFitCmd(rt),
		newDemoCmd(rt),
		newGenerateCmd(rt),
		newWatchCmd(rt),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
