package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/types"
	"github.com/okian/prospect/pkg/money"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", f)
}

// tableWriter aligns tab-separated rows.
type tableWriter struct {
	tw *tabwriter.Writer
}

func (w *tableWriter) row(cols ...string) {
	fmt.Fprintln(w.tw, strings.Join(cols, "\t"))
}

func (w *tableWriter) line(format string, args ...any) {
	fmt.Fprintf(w.tw, format+"\n", args...)
}

func render(out io.Writer, format string, v any, table func(*tableWriter)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		w := &tableWriter{tw: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
		table(w)
		return w.tw.Flush()
	}
}

func valuationTable(w *tableWriter, res model.ValuationResult) {
	w.line("#%d %s (%s, model %s)", res.Rank, res.Position, res.Tier.Label, res.Model)
	w.line("Projected earnings:\t%s", res.EarningsDisplay)
	w.line("Value of 1%%:\t%s", res.Value1Display)
	if res.ConditionalEarnings != nil {
		w.line("If MLB:\t%s", money.Full(*res.ConditionalEarnings))
	}
	if res.MLBProbability != nil {
		w.line("P(MLB):\t%s", money.Pct(*res.MLBProbability))
	}
	if res.StarProbability != nil {
		w.line("P(star):\t%s", money.Pct(*res.StarProbability))
	}
	w.line("")

	header := []string{"MOIC", "1%"}
	if len(res.Offers) > 0 {
		for _, s := range res.Offers[0].Stakes {
			header = append(header, fmt.Sprintf("%g%%", s.Percent))
		}
	}
	header = append(header, "BREAK-EVEN", "P(HIT)", "CONFIDENCE")
	w.row(header...)
	for _, o := range res.Offers {
		cols := []string{fmt.Sprintf("%gx", o.MOIC), money.Full(o.Offer1Pct)}
		for _, s := range o.Stakes {
			cols = append(cols, s.Display)
		}
		cols = append(cols, money.Millions(o.BreakEvenEarnings), money.Pct(o.Probability), string(o.Confidence))
		w.row(cols...)
	}
	w.line("")

	w.row("OUTCOME", "PROBABILITY")
	for _, b := range res.Distribution {
		w.row(b.Bucket, money.Pct(b.Probability))
	}
	w.line("")
	w.line("%s", res.Basis)
	for _, warn := range res.Warnings {
		w.line("warning: %s", warn)
	}
}

func modelsTable(w *tableWriter, models []types.ModelInfo) {
	w.row("VERSION", "PROJECTOR", "PROBABILITY", "TIERS", "DESCRIPTION")
	for _, m := range models {
		version := m.Version
		if m.Default {
			version += " *"
		}
		w.row(version, m.Projector, m.Probability, fmt.Sprint(len(m.Tiers)), m.Description)
	}
}

func tiersTable(w *tableWriter, tiers []types.TierInfo) {
	w.row("KEY", "LABEL", "RANKS")
	for _, t := range tiers {
		w.row(t.Key, t.Label, fmt.Sprintf("%d-%d", t.Min, t.Max))
	}
}
