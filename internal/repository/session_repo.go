package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PgSessionRepository guarda los identificadores de sesión emitidos en la tabla sessions.
// Se usa como almacén de revocación cuando no hay Redis configurado.
type PgSessionRepository struct {
	db  DBTX
	now func() time.Time
}

func NewPgSessionRepository(db DBTX) *PgSessionRepository {
	return &PgSessionRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *PgSessionRepository) Store(ctx context.Context, token, userID string, ttl time.Duration) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	const query = `
		INSERT INTO sessions (id, session_token, user_id, expires)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_token) DO UPDATE SET expires = EXCLUDED.expires
	`
	_, err := r.db.Exec(ctx, query, uuid.NewString(), token, userID, r.now().Add(ttl))
	return err
}

func (r *PgSessionRepository) Exists(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	const query = `SELECT EXISTS (SELECT 1 FROM sessions WHERE session_token = $1 AND expires > $2)`
	var ok bool
	err := r.db.QueryRow(ctx, query, token, r.now()).Scan(&ok)
	return ok, err
}

func (r *PgSessionRepository) Revoke(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE session_token = $1`, token)
	return err
}
