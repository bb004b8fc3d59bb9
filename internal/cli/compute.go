package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/prospect/internal/domain/types"
)

func newComputeCommand(o *options) *cobra.Command {
	var (
		req    types.ValuationRequest
		format string
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Value one prospect",
		Long: `Project career earnings for a prospect and price the offer schedule.

Positions: 3B, SS, OF, RHP, LHP, 1B, 2B, C (case-insensitive).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			res, err := o.svc.Compute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, res, func(w *tableWriter) { valuationTable(w, res) })
		},
	}
	cmd.Flags().IntVarP(&req.Rank, "rank", "r", 0, "prospect rank, 1-100")
	cmd.Flags().StringVarP(&req.Position, "position", "p", "", "position")
	cmd.Flags().StringVarP(&req.Model, "model", "m", "", "model version (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json, yaml)")
	_ = cmd.MarkFlagRequired("rank")
	_ = cmd.MarkFlagRequired("position")
	return cmd
}
