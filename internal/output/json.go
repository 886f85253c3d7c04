package output

import (
	"encoding/json"

	"github.com/mizuki-e/tempo/internal/stats"
)

type jsonPeriod struct {
	Label        string `json:"label"`
	Date         string `json:"date"`
	Commits      int    `json:"commits"`
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
	NetLines     int    `json:"net_lines"`
	FilesChanged int    `json:"files_changed"`
}

type jsonResult struct {
	Repository string       `json:"repository"`
	Period     string       `json:"period"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Stats      []jsonPeriod `json:"stats"`
	Total      jsonTotal    `json:"total"`
}

type jsonTotal struct {
	Commits      int `json:"commits"`
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
	NetLines     int `json:"net_lines"`
	FilesChanged int `json:"files_changed"`
}

// JSON renders the series as an indented JSON document with ISO dates.
func JSON(result stats.AnalysisResult) (string, error) {
	view := jsonResult{
		Repository: result.Repository,
		Period:     string(result.Period),
		From:       result.From.Format("2006-01-02"),
		To:         result.To.Format("2006-01-02"),
		Stats:      make([]jsonPeriod, 0, len(result.Stats)),
		Total: jsonTotal{
			Commits:      result.Total.Commits,
			Additions:    result.Total.Additions,
			Deletions:    result.Total.Deletions,
			NetLines:     result.Total.NetLines,
			FilesChanged: result.Total.FilesChanged,
		},
	}

	for _, p := range result.Stats {
		view.Stats = append(view.Stats, jsonPeriod{
			Label:        p.Label,
			Date:         p.Date.Format("2006-01-02"),
			Commits:      p.Commits,
			Additions:    p.Additions,
			Deletions:    p.Deletions,
			NetLines:     p.NetLines,
			FilesChanged: p.FilesChanged,
		})
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
