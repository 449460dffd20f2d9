package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kochabx/ecies/boundary"
	"github.com/kochabx/ecies/config"
	"github.com/kochabx/ecies/log"
	"github.com/kochabx/ecies/metrics"
)

// options holds the persistent flags and everything built from them before
// a subcommand runs.
type options struct {
	configFile  string
	logLevel    string
	showMetrics bool

	settings config.Settings
	logger   *log.Logger
	adapter  *boundary.Adapter
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:          "ecies",
		Short:        "ecies encrypts data to secp256k1 public keys",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer o.logger.Close()
			if o.showMetrics {
				return metrics.Prom.WithRuntimeCollector().WriteText(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configFile, "config", "c", "", "settings file (yaml, json or toml); ECIES_* environment variables override it")
	flags.StringVar(&o.logLevel, "log-level", "", "log level, overrides the settings file")
	flags.BoolVar(&o.showMetrics, "metrics", false, "print call metrics to stderr on exit")

	root.AddCommand(
		newKeygenCmd(o),
		newPubkeyCmd(o),
		newEncryptCmd(o),
		newDecryptCmd(o),
	)

	return root
}

func (o *options) setup() error {
	s, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		s.Log.Level = o.logLevel
	}

	logger, err := log.NewFromConfig(s.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	adapter, err := boundary.NewFromSettings(s,
		boundary.WithErrorDetail(true),
		boundary.WithLogger(logger),
		boundary.WithMetrics(metrics.NewBoundary(metrics.Prom.Registry())),
	)
	if err != nil {
		logger.Close()
		return err
	}

	o.settings = s
	o.logger = logger
	o.adapter = adapter
	return nil
}
