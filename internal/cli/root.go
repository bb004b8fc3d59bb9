// Package cli implements the prospect command line: valuations, model
// listings and tier tables over the same service the HTTP API uses.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/prospect/internal/app"
	"github.com/okian/prospect/internal/config"
	"github.com/okian/prospect/pkg/logger"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	svc *service.Service
}

// NewRootCommand builds the command tree writing results to out and logs to
// errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "prospect",
		Short: "Value equity stakes in ranked baseball prospects",
		Long: `prospect projects a top-100 prospect's career earnings from draft rank and
position, then prices minority equity offers at target MOIC multiples.

Examples:
  prospect compute --rank 1 --position 3B
  prospect compute -r 42 -p RHP --model v4 --format json
  prospect models
  prospect tiers --model v3
  prospect batch --file prospects.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd.Context(), errOut)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if o.svc != nil {
				o.svc.Stop()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "YAML config file (default $"+config.FileEnv+")")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(newComputeCommand(o))
	root.AddCommand(newModelsCommand(o))
	root.AddCommand(newTiersCommand(o))
	root.AddCommand(newBatchCommand(o))

	return root
}

// Execute runs the CLI against the process's stdio.
func Execute() error {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *options) init(ctx context.Context, errOut io.Writer) error {
	path := o.cfgFile
	if path == "" {
		path = os.Getenv(config.FileEnv)
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if err := logger.InitWithWriter(errOut, cfg.LogFormat); err != nil {
		return err
	}
	// Results go to stdout; logs go to stderr at log_level, or debug with -v.
	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	o.svc = service.New(
		service.WithLogger(logger.Named("cli")),
		service.WithDefaultModel(cfg.Model),
		service.WithMOICTargets(cfg.MOICTargets),
		service.WithEquityStakes(cfg.EquityStakes),
		service.WithMaxBatchSize(cfg.MaxBatchSize),
		service.WithWorkers(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
	)
	return o.svc.Start(ctx)
}
