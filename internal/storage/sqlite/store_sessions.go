package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutSession upserts a session including its full player state.
func (s *Store) PutSession(ctx context.Context, session domain.GameSession) error {
	state, err := encodeJSON(session.State)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (id, adventure_id, created_at, last_played, state)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    adventure_id = excluded.adventure_id,
    created_at = excluded.created_at,
    last_played = excluded.last_played,
    state = excluded.state
`, session.ID, session.AdventureID, toMillis(session.CreatedAt), toMillis(session.LastPlayed), state)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads a session by id.
func (s *Store) GetSession(ctx context.Context, id string) (domain.GameSession, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, adventure_id, created_at, last_played, state FROM sessions WHERE id = ?
`, id)
	session, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GameSession{}, storage.ErrNotFound
		}
		return domain.GameSession{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// ListSessions returns the most recently played sessions first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]domain.GameSession, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, adventure_id, created_at, last_played, state FROM sessions
ORDER BY last_played DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.GameSession
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes a session record.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanSession(scan func(...any) error) (domain.GameSession, error) {
	var (
		session                domain.GameSession
		createdAt, lastPlayed  int64
		state                  string
	)
	if err := scan(&session.ID, &session.AdventureID, &createdAt, &lastPlayed, &state); err != nil {
		return domain.GameSession{}, err
	}
	session.CreatedAt = fromMillis(createdAt)
	session.LastPlayed = fromMillis(lastPlayed)
	if err := decodeJSON(state, &session.State); err != nil {
		return domain.GameSession{}, err
	}
	return session, nil
}
