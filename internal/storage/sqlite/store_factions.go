package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutFaction upserts a faction.
func (s *Store) PutFaction(ctx context.Context, faction domain.Faction) error {
	properties, err := encodeJSON(faction.Properties)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO factions (id, session_id, name, description, reputation, properties, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    session_id = excluded.session_id,
    name = excluded.name,
    description = excluded.description,
    reputation = excluded.reputation,
    properties = excluded.properties,
    created_at = excluded.created_at
`, faction.ID, faction.SessionID, faction.Name, faction.Description,
		faction.Reputation, properties, toMillis(faction.CreatedAt))
	if err != nil {
		return fmt.Errorf("put faction: %w", err)
	}
	return nil
}

// GetFaction loads a faction by id.
func (s *Store) GetFaction(ctx context.Context, id string) (domain.Faction, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, description, reputation, properties, created_at
FROM factions WHERE id = ?
`, id)
	faction, err := scanFaction(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Faction{}, storage.ErrNotFound
		}
		return domain.Faction{}, fmt.Errorf("get faction: %w", err)
	}
	return faction, nil
}

// ListFactions returns every faction in a session ordered by name.
func (s *Store) ListFactions(ctx context.Context, sessionID string) ([]domain.Faction, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, description, reputation, properties, created_at
FROM factions WHERE session_id = ? ORDER BY name
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list factions: %w", err)
	}
	defer rows.Close()

	var factions []domain.Faction
	for rows.Next() {
		faction, err := scanFaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan faction: %w", err)
		}
		factions = append(factions, faction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate factions: %w", err)
	}
	return factions, nil
}

// DeleteFaction removes a faction record.
func (s *Store) DeleteFaction(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM factions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete faction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete faction rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanFaction(scan func(...any) error) (domain.Faction, error) {
	var (
		faction    domain.Faction
		properties string
		createdAt  int64
	)
	if err := scan(
		&faction.ID, &faction.SessionID, &faction.Name, &faction.Description,
		&faction.Reputation, &properties, &createdAt,
	); err != nil {
		return domain.Faction{}, err
	}
	faction.CreatedAt = fromMillis(createdAt)
	if err := decodeJSON(properties, &faction.Properties); err != nil {
		return domain.Faction{}, err
	}
	return faction, nil
}
