package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
)

type Event struct {
	ID                  int
	UserID              int64
	Title               string
	TimeLabel           string
	Instant             time.Time
	IsRecurringInstance bool
	HasAskedFollowUp    bool
	CreatedAt           time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, user_id, title, time_label, instant, is_recurring_instance, has_asked_follow_up, created_at`

func (r *Repository) Create(ctx context.Context, e Event) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO events (user_id, title, time_label, instant, is_recurring_instance)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		e.UserID, e.Title, e.TimeLabel, e.Instant, e.IsRecurringInstance,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return id, nil
}

// CreateBatch inserts all events in one transaction and returns their ids in
// order. Either every occurrence of a recurring request is stored or none is.
func (r *Repository) CreateBatch(ctx context.Context, events []Event) ([]int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin event batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (user_id, title, time_label, instant, is_recurring_instance)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`)
	if err != nil {
		return nil, fmt.Errorf("prepare event batch: %w", err)
	}
	defer stmt.Close()

	ids := make([]int, 0, len(events))
	for _, e := range events {
		var id int
		if err := stmt.QueryRowContext(ctx, e.UserID, e.Title, e.TimeLabel, e.Instant, e.IsRecurringInstance).Scan(&id); err != nil {
			return nil, fmt.Errorf("create event in batch: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit event batch: %w", err)
	}
	return ids, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = $1 ORDER BY instant ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListBetween returns the user's events with from <= instant < to.
func (r *Repository) ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE user_id = $1 AND instant >= $2 AND instant < $3
		 ORDER BY instant ASC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list events between: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Event, error) {
	var e Event
	err := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.UserID, &e.Title, &e.TimeLabel, &e.Instant, &e.IsRecurringInstance, &e.HasAskedFollowUp, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Reschedule moves an event and re-arms its follow-up question.
func (r *Repository) Reschedule(ctx context.Context, id int, instant time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE events SET instant = $2, has_asked_follow_up = FALSE WHERE id = $1`,
		id, instant,
	)
	if err != nil {
		return fmt.Errorf("reschedule event: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *Repository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all events: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ListDueFollowUps returns timed events that started in the 24 hours before
// now and have not been followed up yet.
func (r *Repository) ListDueFollowUps(ctx context.Context, now time.Time) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE has_asked_follow_up = FALSE AND time_label <> $1
		 AND instant <= $2 AND instant > $3
		 ORDER BY instant ASC`,
		calendar.AllDay, now, now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("list due follow-ups: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *Repository) MarkFollowedUp(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE events SET has_asked_follow_up = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark event followed up: %w", err)
	}
	return nil
}

func (r *Repository) ListActiveUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM events`)
	if err != nil {
		return nil, fmt.Errorf("list active user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.TimeLabel, &e.Instant, &e.IsRecurringInstance, &e.HasAskedFollowUp, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
