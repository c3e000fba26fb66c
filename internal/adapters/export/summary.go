package export

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/okian/rollcall/internal/domain/management"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/scoring"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Summary renders the per-thread outcomes and, when s is non-nil, the
// per-manager mention rates.
func Summary(results []GameResult, s *management.SeasonSummary) string {
	var won, lost, unknown int
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		switch r.Outcome {
		case model.Win:
			won++
		case model.Lose:
			lost++
		default:
			unknown++
		}
		rows = append(rows, []string{strconv.FormatInt(r.Thread.ThreadID, 10), r.Thread.Posted, r.Outcome.String(), r.Thread.Title})
	}
	out := renderTable(
		[]string{"Thread", "Date", "Result", "Title"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
	out += "\nWon " + strconv.Itoa(won) + ", lost " + strconv.Itoa(lost) + ", unknown " + strconv.Itoa(unknown) + "\n"

	if s == nil || len(s.Managers) == 0 {
		return out
	}
	mgmt := make([][]string, 0, len(s.Managers))
	for _, m := range s.Managers {
		mgmt = append(mgmt, []string{m.Name, m.Race, round(m.PerWin), round(m.PerLoss), round(m.Ratio)})
	}
	return out + renderTable(
		[]string{"Manager", "Race", "Per Win", "Per Loss", "Ratio"},
		mgmt,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	) + "\n"
}

// ScoreSummary renders total and per-identity precision and recall.
func ScoreSummary(r *scoring.Report) string {
	rows := make([][]string, 0, len(r.Identities)+1)
	row := func(name string, c scoring.Confusion) []string {
		return []string{
			name,
			strconv.Itoa(c.TruePositive),
			strconv.Itoa(c.FalsePositive),
			strconv.Itoa(c.FalseNegative),
			c.Precision().String(),
			c.Recall().String(),
		}
	}
	for i, name := range r.Identities {
		rows = append(rows, row(name, r.PerIdentity[i]))
	}
	rows = append(rows, row("Total", r.Total))
	return renderTable(
		[]string{"Identity", "TP", "FP", "FN", "Precision", "Recall"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	) + "\n"
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
