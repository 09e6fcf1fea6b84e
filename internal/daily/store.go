// internal/daily/store.go
//
// SQLite-backed results store for the daily run: one result per user per
// date, plus the per-date leaderboard (rounds survived, closing capital).

package daily

import (
	"context"
	"database/sql"
)

// Result is one user's finished daily run.
type Result struct {
	UserID  string  `json:"userId"`
	Date    string  `json:"date"`
	Rounds  int     `json:"rounds"`
	Capital float64 `json:"capital"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the user has a result for the date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished run. Respects UNIQUE(user_id, date);
// an existing row makes the insert a silent no-op.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, rounds, capital)
		 VALUES(?,?,?,?)`, r.UserID, r.Date, r.Rounds, r.Capital,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID  string  `json:"userId"`
	Rounds  int     `json:"rounds"`
	Capital float64 `json:"capital"`
}

// Leaderboard fetches the top results for a date, longest survival first,
// richest first among ties.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, rounds, capital
		 FROM daily_results
		 WHERE date=?
		 ORDER BY rounds DESC, capital DESC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Rounds, &r.Capital); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
