package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/revdict/internal/dataset"
)

func newVerifyCmd(flags *rootFlags) *cobra.Command {
	var skipCheck bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify written split files against the manifest",
		Long: `Verify re-reads the manifest and every split file from the output
directory, compares checksums and instance counts, and re-runs the
dataset invariants against the current exclusion lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}
			m, err := dataset.Verify(cmd.Context(), logger, cfg, skipCheck || cfg.Check.Skip)
			if err != nil {
				logger.Error("verify failed", slog.String("error", err.Error()))
				return err
			}
			for _, f := range m.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\tok\n", f.Split, f.Instances, f.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "skip the reference count and word checks")
	return cmd
}
