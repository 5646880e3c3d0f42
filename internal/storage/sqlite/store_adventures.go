package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// PutAdventure upserts an adventure template.
func (s *Store) PutAdventure(ctx context.Context, adventure domain.Adventure) error {
	stats, err := encodeJSON(adventure.Stats)
	if err != nil {
		return err
	}
	wordLists, err := encodeJSON(adventure.WordLists)
	if err != nil {
		return err
	}
	features, err := encodeJSON(adventure.Features)
	if err != nil {
		return err
	}
	timeConfig, err := encodeJSON(adventure.TimeConfig)
	if err != nil {
		return err
	}
	currencyConfig, err := encodeJSON(adventure.CurrencyConfig)
	if err != nil {
		return err
	}
	factions, err := encodeJSON(adventure.Factions)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO adventures (id, title, description, prompt, starting_hp, initial_location, initial_story, stats, word_lists, features, time_config, currency_config, factions)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    prompt = excluded.prompt,
    starting_hp = excluded.starting_hp,
    initial_location = excluded.initial_location,
    initial_story = excluded.initial_story,
    stats = excluded.stats,
    word_lists = excluded.word_lists,
    features = excluded.features,
    time_config = excluded.time_config,
    currency_config = excluded.currency_config,
    factions = excluded.factions
`, adventure.ID, adventure.Title, adventure.Description, adventure.Prompt,
		adventure.StartingHP, adventure.InitialLocation, adventure.InitialStory,
		stats, wordLists, features, timeConfig, currencyConfig, factions)
	if err != nil {
		return fmt.Errorf("put adventure: %w", err)
	}
	return nil
}

// GetAdventure loads an adventure template by id.
func (s *Store) GetAdventure(ctx context.Context, id string) (domain.Adventure, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, title, description, prompt, starting_hp, initial_location, initial_story, stats, word_lists, features, time_config, currency_config, factions
FROM adventures WHERE id = ?
`, id)
	adventure, err := scanAdventure(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Adventure{}, storage.ErrNotFound
		}
		return domain.Adventure{}, fmt.Errorf("get adventure: %w", err)
	}
	return adventure, nil
}

// ListAdventures returns every adventure template ordered by title.
func (s *Store) ListAdventures(ctx context.Context) ([]domain.Adventure, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, description, prompt, starting_hp, initial_location, initial_story, stats, word_lists, features, time_config, currency_config, factions
FROM adventures ORDER BY title
`)
	if err != nil {
		return nil, fmt.Errorf("list adventures: %w", err)
	}
	defer rows.Close()

	var adventures []domain.Adventure
	for rows.Next() {
		adventure, err := scanAdventure(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan adventure: %w", err)
		}
		adventures = append(adventures, adventure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adventures: %w", err)
	}
	return adventures, nil
}

func scanAdventure(scan func(...any) error) (domain.Adventure, error) {
	var (
		adventure                                                       domain.Adventure
		stats, wordLists, features, timeConfig, currencyConfig, factions string
	)
	if err := scan(
		&adventure.ID, &adventure.Title, &adventure.Description, &adventure.Prompt,
		&adventure.StartingHP, &adventure.InitialLocation, &adventure.InitialStory,
		&stats, &wordLists, &features, &timeConfig, &currencyConfig, &factions,
	); err != nil {
		return domain.Adventure{}, err
	}
	if err := decodeJSON(stats, &adventure.Stats); err != nil {
		return domain.Adventure{}, err
	}
	if err := decodeJSON(wordLists, &adventure.WordLists); err != nil {
		return domain.Adventure{}, err
	}
	if err := decodeJSON(features, &adventure.Features); err != nil {
		return domain.Adventure{}, err
	}
	if err := decodeJSON(timeConfig, &adventure.TimeConfig); err != nil {
		return domain.Adventure{}, err
	}
	if err := decodeJSON(currencyConfig, &adventure.CurrencyConfig); err != nil {
		return domain.Adventure{}, err
	}
	if err := decodeJSON(factions, &adventure.Factions); err != nil {
		return domain.Adventure{}, err
	}
	return adventure, nil
}
