package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/revdict/internal/app"
	"github.com/heartmarshall/revdict/internal/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	outputDir  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	build := &buildFlags{}

	root := &cobra.Command{
		Use:          app.Name,
		Short:        "Build the reverse-dictionary dataset from WordNet",
		Version:      app.BuildVersion(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags, build)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to YAML config (default: $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&flags.outputDir, "output-dir", "", "override output.dir")
	build.register(root)

	root.AddCommand(
		newBuildCmd(flags, build),
		newVerifyCmd(flags),
		newVersionCmd(),
	)
	return root
}

// loadConfig loads the configuration, applies flag overrides and sets up
// the default logger.
func loadConfig(flags *rootFlags) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
