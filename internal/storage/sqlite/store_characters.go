package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutCharacter upserts an NPC including its memory list.
func (s *Store) PutCharacter(ctx context.Context, character domain.Character) error {
	stats, err := encodeJSON(character.Stats)
	if err != nil {
		return err
	}
	properties, err := encodeJSON(character.Properties)
	if err != nil {
		return err
	}
	memories, err := encodeJSON(character.Memories)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO characters (id, session_id, name, description, location, stats, properties, memories, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    session_id = excluded.session_id,
    name = excluded.name,
    description = excluded.description,
    location = excluded.location,
    stats = excluded.stats,
    properties = excluded.properties,
    memories = excluded.memories,
    created_at = excluded.created_at
`, character.ID, character.SessionID, character.Name, character.Description,
		character.Location, stats, properties, memories, toMillis(character.CreatedAt))
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter loads an NPC by id.
func (s *Store) GetCharacter(ctx context.Context, id string) (domain.Character, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, description, location, stats, properties, memories, created_at
FROM characters WHERE id = ?
`, id)
	character, err := scanCharacter(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Character{}, storage.ErrNotFound
		}
		return domain.Character{}, fmt.Errorf("get character: %w", err)
	}
	return character, nil
}

// ListCharacters returns every NPC in a session ordered by name.
func (s *Store) ListCharacters(ctx context.Context, sessionID string) ([]domain.Character, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, description, location, stats, properties, memories, created_at
FROM characters WHERE session_id = ? ORDER BY name
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		character, err := scanCharacter(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		characters = append(characters, character)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return characters, nil
}

// DeleteCharacter removes an NPC record.
func (s *Store) DeleteCharacter(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete character rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCharacter(scan func(...any) error) (domain.Character, error) {
	var (
		character                   domain.Character
		stats, properties, memories string
		createdAt                   int64
	)
	if err := scan(
		&character.ID, &character.SessionID, &character.Name, &character.Description,
		&character.Location, &stats, &properties, &memories, &createdAt,
	); err != nil {
		return domain.Character{}, err
	}
	character.CreatedAt = fromMillis(createdAt)
	if err := decodeJSON(stats, &character.Stats); err != nil {
		return domain.Character{}, err
	}
	if err := decodeJSON(properties, &character.Properties); err != nil {
		return domain.Character{}, err
	}
	if err := decodeJSON(memories, &character.Memories); err != nil {
		return domain.Character{}, err
	}
	return character, nil
}
