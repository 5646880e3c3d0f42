package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutLocation upserts a location.
func (s *Store) PutLocation(ctx context.Context, location domain.Location) error {
	connectedTo, err := encodeJSON(location.ConnectedTo)
	if err != nil {
		return err
	}
	properties, err := encodeJSON(location.Properties)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO locations (id, session_id, name, description, connected_to, properties, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    session_id = excluded.session_id,
    name = excluded.name,
    description = excluded.description,
    connected_to = excluded.connected_to,
    properties = excluded.properties,
    created_at = excluded.created_at
`, location.ID, location.SessionID, location.Name, location.Description,
		connectedTo, properties, toMillis(location.CreatedAt))
	if err != nil {
		return fmt.Errorf("put location: %w", err)
	}
	return nil
}

// GetLocation loads a location by id.
func (s *Store) GetLocation(ctx context.Context, id string) (domain.Location, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, description, connected_to, properties, created_at
FROM locations WHERE id = ?
`, id)
	location, err := scanLocation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Location{}, storage.ErrNotFound
		}
		return domain.Location{}, fmt.Errorf("get location: %w", err)
	}
	return location, nil
}

// ListLocations returns every location in a session ordered by name.
func (s *Store) ListLocations(ctx context.Context, sessionID string) ([]domain.Location, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, description, connected_to, properties, created_at
FROM locations WHERE session_id = ? ORDER BY name
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		location, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}

// DeleteLocation removes a location record.
func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete location rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanLocation(scan func(...any) error) (domain.Location, error) {
	var (
		location                domain.Location
		connectedTo, properties string
		createdAt               int64
	)
	if err := scan(
		&location.ID, &location.SessionID, &location.Name, &location.Description,
		&connectedTo, &properties, &createdAt,
	); err != nil {
		return domain.Location{}, err
	}
	location.CreatedAt = fromMillis(createdAt)
	if err := decodeJSON(connectedTo, &location.ConnectedTo); err != nil {
		return domain.Location{}, err
	}
	if err := decodeJSON(properties, &location.Properties); err != nil {
		return domain.Location{}, err
	}
	return location, nil
}
