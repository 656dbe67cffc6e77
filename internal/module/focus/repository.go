package focus

import (
	"context"
	"database/sql"
	"fmt"
)

// DateKey is the layout of the per-day keys used for focus logs.
const DateKey = "2006-01-02"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Log records minutes of completed focus on the day named by dateKey.
func (r *Repository) Log(ctx context.Context, userID int64, dateKey string, minutes int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO focus_logs (user_id, log_date, minutes) VALUES ($1, $2::date, $3)`,
		userID, dateKey, minutes,
	)
	if err != nil {
		return fmt.Errorf("log focus minutes: %w", err)
	}
	return nil
}

// MinutesByDay sums the user's focus minutes per day of year, keyed by DateKey.
func (r *Repository) MinutesByDay(ctx context.Context, userID int64, year int) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT to_char(log_date, 'YYYY-MM-DD'), COALESCE(SUM(minutes), 0)
		 FROM focus_logs
		 WHERE user_id = $1 AND EXTRACT(YEAR FROM log_date) = $2
		 GROUP BY log_date`,
		userID, year)
	if err != nil {
		return nil, fmt.Errorf("sum focus minutes by day: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var minutes int
		if err := rows.Scan(&key, &minutes); err != nil {
			return nil, fmt.Errorf("scan focus day: %w", err)
		}
		out[key] = minutes
	}
	return out, rows.Err()
}

func (r *Repository) Total(ctx context.Context, userID int64, year int) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(minutes), 0) FROM focus_logs
		 WHERE user_id = $1 AND EXTRACT(YEAR FROM log_date) = $2`,
		userID, year,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum focus minutes: %w", err)
	}
	return total, nil
}
