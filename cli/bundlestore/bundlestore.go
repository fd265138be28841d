package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/bundlestore/internal/cli"
	"github.com/glorpus-work/bundlestore/internal/logger"
)

var (
	configPath string
	verbose    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundlestore",
		Short: "Resolve and cache versioned artifact bundles",
		Long: `bundlestore resolves named artifact bundles against a remote catalog:
- resolve: latest version per label and version constraint
- cache: download payloads and answer queries offline
- inspect: deprecation state and release notes`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := "info"
			if verbose {
				level = "debug"
			}
			logger.InitLogger(level)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose

	// Add subcommands
	cmd.AddCommand(
		cli.NewLatestCmd(),
		cli.NewCachedCmd(),
		cli.NewInfoCmd(),
		cli.NewDownloadCmd(),
		cli.NewStatusCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
