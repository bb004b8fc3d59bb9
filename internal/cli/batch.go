package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/prospect/internal/app"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/types"
	"github.com/okian/prospect/pkg/money"
)

// batchRow is one output record of the batch command.
type batchRow struct {
	Index  int                    `json:"index" yaml:"index"`
	Result *model.ValuationResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

func newBatchCommand(o *options) *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Value a list of prospects from a YAML or JSON file",
		Long: `Read a list of {rank, position, model} items and value each one.

The file is a YAML sequence (JSON is valid YAML). Use "-" for stdin:
  - rank: 1
    position: 3B
  - {rank: 42, position: RHP, model: v4}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			reqs, err := readRequests(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			items, err := o.svc.ComputeBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			rows := make([]batchRow, len(items))
			failed := 0
			for i, it := range items {
				rows[i] = batchRow{Index: i, Result: it.Result}
				if it.Err != nil {
					rows[i].Error = it.Err.Error()
					failed++
				}
			}
			if err := render(cmd.OutOrStdout(), format, rows, func(w *tableWriter) { batchTable(w, rows) }); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d items failed", failed, len(items))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "request file, - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json, yaml)")
	return cmd
}

func readRequests(stdin io.Reader, path string) ([]types.ValuationRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	var reqs []types.ValuationRequest
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse requests: %w", err)
	}
	if len(reqs) == 0 {
		return nil, service.ErrEmptyBatch
	}
	return reqs, nil
}

func batchTable(w *tableWriter, rows []batchRow) {
	w.row("#", "RANK", "POS", "MODEL", "TIER", "PROJECTED", "1%", "ERROR")
	for _, r := range rows {
		if r.Result == nil {
			w.row(fmt.Sprint(r.Index), "", "", "", "", "", "", r.Error)
			continue
		}
		res := r.Result
		w.row(fmt.Sprint(r.Index), fmt.Sprint(res.Rank), string(res.Position), res.Model,
			res.Tier.Label, res.Headline, money.Full(res.Value1Pct), "")
	}
}
