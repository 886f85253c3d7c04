package output

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mizuki-e/tempo/internal/stats"
)

// Table renders the series as a bordered table with a TOTAL footer.
func Table(result stats.AnalysisResult) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Period", "Commits", "+Lines", "-Lines", "Net", "Files"})

	for _, p := range result.Stats {
		tbl.AppendRow(table.Row{
			p.Label,
			humanize.Comma(int64(p.Commits)),
			humanize.Comma(int64(p.Additions)),
			humanize.Comma(int64(p.Deletions)),
			humanize.Comma(int64(p.NetLines)),
			humanize.Comma(int64(p.FilesChanged)),
		})
	}

	total := result.Total
	tbl.AppendFooter(table.Row{
		"TOTAL",
		humanize.Comma(int64(total.Commits)),
		humanize.Comma(int64(total.Additions)),
		humanize.Comma(int64(total.Deletions)),
		humanize.Comma(int64(total.NetLines)),
		humanize.Comma(int64(total.FilesChanged)),
	})

	return tbl.Render()
}
