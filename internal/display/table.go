package display

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/backmassage/mtsmux/internal/check"
	"github.com/backmassage/mtsmux/internal/pipeline"
	"github.com/backmassage/mtsmux/internal/planner"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
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

// PlanTable renders the plan catalog in the order plans are tried.
func PlanTable(plans []planner.Plan) string {
	rows := make([][]string, 0, len(plans))
	for i, p := range plans {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			p.Name,
			p.Action.String(),
			p.Description,
			FormatBytes(p.MinOutputBytes),
		})
	}
	return renderTable(
		[]string{"#", "Plan", "Action", "Description", "Min output"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// PlanArgs renders one plan's engine arguments as a single line.
func PlanArgs(p planner.Plan) string {
	return strings.Join(p.Args, " ")
}

// AttemptTable renders the attempt ledger of one transcode.
func AttemptTable(attempts []pipeline.Attempt) string {
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		detail := a.Reason
		if a.Status == pipeline.AttemptOK {
			detail = ""
		}
		rows = append(rows, []string{
			a.Plan,
			a.Status.String(),
			FormatBytes(int64(a.OutputBytes)),
			FormatDuration(a.Elapsed),
			detail,
		})
	}
	return renderTable(
		[]string{"Plan", "Status", "Output", "Time", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

// CheckTable renders system check results.
func CheckTable(results []check.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		if !r.OK {
			status = "FAIL"
		}
		rows = append(rows, []string{r.Name, status, r.Detail})
	}
	return renderTable([]string{"Component", "Status", "Detail"}, rows, nil)
}
