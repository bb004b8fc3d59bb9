package cli

import (
	"github.com/spf13/cobra"
)

func newModelsCommand(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List model versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			models := o.svc.Models()
			return render(cmd.OutOrStdout(), format, models, func(w *tableWriter) { modelsTable(w, models) })
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json, yaml)")
	return cmd
}

func newTiersCommand(o *options) *cobra.Command {
	var (
		version string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Show the rank bands of a model version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			tiers, err := o.svc.Tiers(version)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, tiers, func(w *tableWriter) { tiersTable(w, tiers) })
		},
	}
	cmd.Flags().StringVarP(&version, "model", "m", "", "model version (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json, yaml)")
	return cmd
}
