package main

import (
	"os"

	"github.com/scottcagno/robinhood/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	logLevel string
	jsonLogs bool
}

func (o *globalOptions) logger() (*zap.Logger, error) {
	return logging.New(o.logLevel, o.jsonLogs)
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "rhbench",
		Short:         "Benchmark and inspect the robin hood hash set",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as json")
	root.AddCommand(
		runCommand(opts),
		printCommand(opts),
		distinctCommand(),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
