package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dismorfo/rsui/internal/models"
)

type CreateSessionParams struct {
	ID                uuid.UUID
	UserID            int64
	RefreshToken      string
	UserAgent         string
	ClientIP          string
	UpstreamToken     string
	UpstreamExpiresAt time.Time
	ExpiresAt         time.Time
}

func (q *Queries) CreateSession(ctx context.Context, params CreateSessionParams) error {
	query := `
		INSERT INTO sessions (id, user_id, refresh_token, user_agent, client_ip, upstream_token, upstream_expires_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.db.Exec(ctx, query,
		params.ID,
		params.UserID,
		params.RefreshToken,
		params.UserAgent,
		params.ClientIP,
		params.UpstreamToken,
		params.UpstreamExpiresAt,
		params.ExpiresAt,
	)
	return err
}

func (q *Queries) GetSessionByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := `
		SELECT id, user_id, refresh_token, user_agent, client_ip, upstream_token, upstream_expires_at, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND expires_at > now()
	`
	var sess models.Session

	err := q.db.QueryRow(ctx, query, id).Scan(
		&sess.ID,
		&sess.UserID,
		&sess.RefreshToken,
		&sess.UserAgent,
		&sess.ClientIP,
		&sess.UpstreamToken,
		&sess.UpstreamExpiresAt,
		&sess.ExpiresAt,
		&sess.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &sess, nil
}

func (q *Queries) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	query := `
		SELECT id, user_id, refresh_token, user_agent, client_ip, upstream_token, upstream_expires_at, expires_at, created_at
		FROM sessions
		WHERE refresh_token = $1 AND expires_at > now()
	`
	var sess models.Session

	err := q.db.QueryRow(ctx, query, refreshToken).Scan(
		&sess.ID,
		&sess.UserID,
		&sess.RefreshToken,
		&sess.UserAgent,
		&sess.ClientIP,
		&sess.UpstreamToken,
		&sess.UpstreamExpiresAt,
		&sess.ExpiresAt,
		&sess.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &sess, nil
}

// UpdateSessionCredential zapisuje zrotowany token upstream. Równoległe
// żądania tej samej sesji mogą się tu ścigać; wygrywa ostatni zapis.
func (q *Queries) UpdateSessionCredential(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	query := `UPDATE sessions SET upstream_token = $2, upstream_expires_at = $3 WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id, token, expiresAt)
	return err
}

func (q *Queries) ClearSessionCredential(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sessions SET upstream_token = '', upstream_expires_at = to_timestamp(0) WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

// ExtendSession przedłuża tylko lokalną sesję UI (keep-alive z /ping);
// terminu ważności poświadczenia upstream nie wolno tu dotykać.
func (q *Queries) ExtendSession(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $2 WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id, expiresAt)
	return err
}

func (q *Queries) DeleteSessionByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

func (q *Queries) DeleteExpiredSessions(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at <= now()`
	_, err := q.db.Exec(ctx, query)
	return err
}
