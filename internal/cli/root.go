// Package cli wires the wosh commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/pkg/pipeline/drawer"
	"github.com/askiada/go-wosh/pkg/pipeline/logging"
	"github.com/askiada/go-wosh/pkg/pipeline/measure"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

type app struct {
	configPath string
	verbose    bool
	graph      string

	cfg    config.Config
	logger *zap.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("graph") {
		cfg.Graph = a.graph
	}
	a.cfg = cfg

	zapCfg := zap.NewProductionConfig()
	if a.verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zapCfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	return nil
}

// runPipeline runs fn with the pipeline options of the invocation and logs the step timings when a graph is drawn.
func (a *app) runPipeline(fn func(opts ...model.PipelineOption) error) error {
	opts := []model.PipelineOption{logging.PipelineLogger(a.logger)}

	var msr *measure.DefaultMeasure
	if a.cfg.Graph != "" {
		msr = measure.NewDefaultMeasure()
		opts = append(opts,
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(a.cfg.Graph), msr),
		)
	}

	err := fn(opts...)
	if err != nil {
		return err
	}

	if msr != nil {
		for _, name := range measure.SortedNames(msr) {
			metric := msr.GetMetric(name)
			a.logger.Debug("step timing",
				zap.String("step", name),
				zap.Int64("entries", metric.Total()),
				zap.Duration("avg", metric.AVGDuration()),
			)
		}
		a.logger.Info("pipeline graph written", zap.String("path", a.cfg.Graph))
	}

	return nil
}

// override copies the value of every changed flag into its destination.
func override(flags *pflag.FlagSet, dst map[string]any) error {
	var err error
	for name, ptr := range dst {
		if !flags.Changed(name) {
			continue
		}
		switch v := ptr.(type) {
		case *string:
			*v, err = flags.GetString(name)
		case *int:
			*v, err = flags.GetInt(name)
		case *bool:
			*v, err = flags.GetBool(name)
		default:
			err = errors.Errorf("unsupported flag type %T", ptr)
		}
		if err != nil {
			return errors.Wrapf(err, "flag %s", name)
		}
	}

	return nil
}

// NewRootCmd returns the wosh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "wosh",
		Short: "Word list tooling and board solver",
		Long: `wosh prepares the word and board lists of a letter board game and finds the boards
playable with a set of letters.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&a.graph, "graph", defaults.Graph, "write a DOT drawing of the pipeline to this file")

	rootCmd.AddCommand(
		newFilterCmd(a, defaults.Filter),
		newCropCmd(a, defaults.Crop),
		newJoinCmd(a, defaults.Boards),
		newSortCmd(a, defaults.Boards),
		newBoardsCmd(a, defaults.Boards),
		newSolveCmd(a, defaults.Solve),
	)

	return rootCmd
}

// Execute runs the root command until it returns or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}
