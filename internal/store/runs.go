package store

import (
	"database/sql"
	"time"

	"github.com/mizuki-e/tempo/internal/stats"
)

// Run is one recorded aggregation: what was analyzed and the totals.
type Run struct {
	ID           int64
	Repositories string
	Period       string
	Timezone     string
	From         string
	To           string
	Commits      int
	Additions    int
	Deletions    int
	NetLines     int
	FilesChanged int
	CreatedAt    time.Time
}

type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record stores one aggregation run's totals.
func (r *RunRepo) Record(snapshot *stats.Snapshot, zone stats.Zone) error {
	total := snapshot.Result.Total
	_, err := r.db.Exec(`
		INSERT INTO runs (repositories, period, timezone, from_date, to_date,
		                  commits, additions, deletions, net_lines, files_changed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		snapshot.Result.Repository,
		string(snapshot.Result.Period),
		zone.String(),
		snapshot.Result.From.Format("2006-01-02"),
		snapshot.Result.To.Format("2006-01-02"),
		total.Commits,
		total.Additions,
		total.Deletions,
		total.NetLines,
		total.FilesChanged,
	)
	return err
}

// Recent returns the latest runs, newest first.
func (r *RunRepo) Recent(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, repositories, period, timezone, from_date, to_date,
		       commits, additions, deletions, net_lines, files_changed, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.Repositories, &run.Period, &run.Timezone, &run.From, &run.To,
			&run.Commits, &run.Additions, &run.Deletions, &run.NetLines, &run.FilesChanged,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
