package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutItem upserts a world item. A nil location persists as SQL NULL, which
// marks the item as held in the player's inventory.
func (s *Store) PutItem(ctx context.Context, item domain.Item) error {
	properties, err := encodeJSON(item.Properties)
	if err != nil {
		return err
	}

	var location sql.NullString
	if item.Location != nil {
		location = sql.NullString{String: *item.Location, Valid: true}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO items (id, session_id, name, description, location, properties, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    session_id = excluded.session_id,
    name = excluded.name,
    description = excluded.description,
    location = excluded.location,
    properties = excluded.properties,
    created_at = excluded.created_at
`, item.ID, item.SessionID, item.Name, item.Description,
		location, properties, toMillis(item.CreatedAt))
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// GetItem loads a world item by id.
func (s *Store) GetItem(ctx context.Context, id string) (domain.Item, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, description, location, properties, created_at
FROM items WHERE id = ?
`, id)
	item, err := scanItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, storage.ErrNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns every world item in a session ordered by name.
func (s *Store) ListItems(ctx context.Context, sessionID string) ([]domain.Item, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, description, location, properties, created_at
FROM items WHERE session_id = ? ORDER BY name
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// DeleteItem removes a world item record.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanItem(scan func(...any) error) (domain.Item, error) {
	var (
		item       domain.Item
		location   sql.NullString
		properties string
		createdAt  int64
	)
	if err := scan(
		&item.ID, &item.SessionID, &item.Name, &item.Description,
		&location, &properties, &createdAt,
	); err != nil {
		return domain.Item{}, err
	}
	item.CreatedAt = fromMillis(createdAt)
	if location.Valid {
		value := location.String
		item.Location = &value
	}
	if err := decodeJSON(properties, &item.Properties); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}
