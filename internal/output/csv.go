package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/mizuki-e/tempo/internal/stats"
)

// CSV renders the series as comma-separated rows with a header line.
func CSV(result stats.AnalysisResult) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"period", "commits", "additions", "deletions", "net_lines", "files_changed"}); err != nil {
		return "", err
	}

	for _, p := range result.Stats {
		row := []string{
			p.Label,
			strconv.Itoa(p.Commits),
			strconv.Itoa(p.Additions),
			strconv.Itoa(p.Deletions),
			strconv.Itoa(p.NetLines),
			strconv.Itoa(p.FilesChanged),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
