package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutStatusEffect upserts a status effect.
func (s *Store) PutStatusEffect(ctx context.Context, effect domain.StatusEffect) error {
	properties, err := encodeJSON(effect.Properties)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO status_effects (id, session_id, name, description, duration, properties, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    session_id = excluded.session_id,
    name = excluded.name,
    description = excluded.description,
    duration = excluded.duration,
    properties = excluded.properties,
    created_at = excluded.created_at
`, effect.ID, effect.SessionID, effect.Name, effect.Description,
		effect.Duration, properties, toMillis(effect.CreatedAt))
	if err != nil {
		return fmt.Errorf("put status effect: %w", err)
	}
	return nil
}

// GetStatusEffect loads a status effect by id.
func (s *Store) GetStatusEffect(ctx context.Context, id string) (domain.StatusEffect, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, description, duration, properties, created_at
FROM status_effects WHERE id = ?
`, id)
	effect, err := scanStatusEffect(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StatusEffect{}, storage.ErrNotFound
		}
		return domain.StatusEffect{}, fmt.Errorf("get status effect: %w", err)
	}
	return effect, nil
}

// ListStatusEffects returns every status effect in a session, expired ones
// included, ordered by creation time.
func (s *Store) ListStatusEffects(ctx context.Context, sessionID string) ([]domain.StatusEffect, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, description, duration, properties, created_at
FROM status_effects WHERE session_id = ? ORDER BY created_at
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list status effects: %w", err)
	}
	defer rows.Close()

	var effects []domain.StatusEffect
	for rows.Next() {
		effect, err := scanStatusEffect(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan status effect: %w", err)
		}
		effects = append(effects, effect)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status effects: %w", err)
	}
	return effects, nil
}

// DeleteStatusEffect removes a status effect record.
func (s *Store) DeleteStatusEffect(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM status_effects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete status effect: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete status effect rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanStatusEffect(scan func(...any) error) (domain.StatusEffect, error) {
	var (
		effect     domain.StatusEffect
		properties string
		createdAt  int64
	)
	if err := scan(
		&effect.ID, &effect.SessionID, &effect.Name, &effect.Description,
		&effect.Duration, &properties, &createdAt,
	); err != nil {
		return domain.StatusEffect{}, err
	}
	effect.CreatedAt = fromMillis(createdAt)
	if err := decodeJSON(properties, &effect.Properties); err != nil {
		return domain.StatusEffect{}, err
	}
	return effect, nil
}
