package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// AppendAction records one action in the session's append-only history.
func (s *Store) AppendAction(ctx context.Context, record domain.ActionRecord) error {
	var roll sql.NullString
	if record.Roll != nil {
		encoded, err := encodeJSON(record.Roll)
		if err != nil {
			return err
		}
		roll = sql.NullString{String: encoded, Valid: true}
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO action_history (id, session_id, action_text, stat_used, roll, outcome, score_change, timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, record.ID, record.SessionID, record.ActionText, record.StatUsed,
		roll, record.Outcome, record.ScoreChange, toMillis(record.Timestamp))
	if err != nil {
		return fmt.Errorf("append action: %w", err)
	}
	return nil
}

// ListActions returns the most recent actions for a session, newest first.
func (s *Store) ListActions(ctx context.Context, sessionID string, limit int) ([]domain.ActionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, action_text, stat_used, roll, outcome, score_change, timestamp
FROM action_history WHERE session_id = ?
ORDER BY timestamp DESC, id DESC LIMIT ?
`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var records []domain.ActionRecord
	for rows.Next() {
		var (
			record    domain.ActionRecord
			roll      sql.NullString
			timestamp int64
		)
		if err := rows.Scan(
			&record.ID, &record.SessionID, &record.ActionText, &record.StatUsed,
			&roll, &record.Outcome, &record.ScoreChange, &timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		record.Timestamp = fromMillis(timestamp)
		if roll.Valid {
			record.Roll = &domain.Roll{}
			if err := decodeJSON(roll.String, record.Roll); err != nil {
				return nil, err
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return records, nil
}

// PutSummary upserts a session summary.
func (s *Store) PutSummary(ctx context.Context, summary domain.SessionSummary) error {
	keyEvents, err := encodeJSON(summary.KeyEvents)
	if err != nil {
		return err
	}
	characterChanges, err := encodeJSON(summary.CharacterChanges)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO session_summaries (id, session_id, summary, key_events, character_changes, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    session_id = excluded.session_id,
    summary = excluded.summary,
    key_events = excluded.key_events,
    character_changes = excluded.character_changes,
    created_at = excluded.created_at
`, summary.ID, summary.SessionID, summary.Summary,
		keyEvents, characterChanges, toMillis(summary.CreatedAt))
	if err != nil {
		return fmt.Errorf("put summary: %w", err)
	}
	return nil
}

// ListSummaries returns a session's summaries in chronological order.
func (s *Store) ListSummaries(ctx context.Context, sessionID string) ([]domain.SessionSummary, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, summary, key_events, character_changes, created_at
FROM session_summaries WHERE session_id = ?
ORDER BY created_at, id
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.SessionSummary
	for rows.Next() {
		var (
			summary                     domain.SessionSummary
			keyEvents, characterChanges string
			createdAt                   int64
		)
		if err := rows.Scan(
			&summary.ID, &summary.SessionID, &summary.Summary,
			&keyEvents, &characterChanges, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summary.CreatedAt = fromMillis(createdAt)
		if err := decodeJSON(keyEvents, &summary.KeyEvents); err != nil {
			return nil, err
		}
		if err := decodeJSON(characterChanges, &summary.CharacterChanges); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return summaries, nil
}
