package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

type Profile struct {
	UserID    int64
	Nickname  string
	Language  i18n.Language
	UpdatedAt time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns nil when the user has no profile yet.
func (r *Repository) Get(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	var lang string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, nickname, language, updated_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Nickname, &lang, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Language = i18n.Language(lang)
	return &p, nil
}

func (r *Repository) SetNickname(ctx context.Context, userID int64, nickname string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, nickname) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET nickname = EXCLUDED.nickname, updated_at = NOW()`,
		userID, nickname,
	)
	if err != nil {
		return fmt.Errorf("set nickname: %w", err)
	}
	return nil
}

func (r *Repository) SetLanguage(ctx context.Context, userID int64, lang i18n.Language) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, language) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET language = EXCLUDED.language, updated_at = NOW()`,
		userID, string(lang),
	)
	if err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	return nil
}
