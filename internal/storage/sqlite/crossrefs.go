// ABOUTME: Cross-reference persistence operations for SQLite
// ABOUTME: Stores typed event relationships with canonical pair ordering
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/reverie-journal/reverie/internal/models"
)

// CrossRefStore handles cross-reference persistence
type CrossRefStore struct {
	db *DB
}

// NewCrossRefStore creates a new CrossRefStore
func NewCrossRefStore(db *DB) *CrossRefStore {
	return &CrossRefStore{db: db}
}

// ReplaceForEvent atomically replaces all cross-references involving an
// event with the given set. A detection run for an event always rewrites
// its edges; prior entries are never merged.
func (s *CrossRefStore) ReplaceForEvent(eventID string, refs []models.CrossReference) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec("DELETE FROM cross_references WHERE event_id_1 = ? OR event_id_2 = ?", eventID, eventID)
	if err != nil {
		return fmt.Errorf("failed to clear cross-references: %w", err)
	}

	for _, ref := range refs {
		id1, id2 := models.CanonicalPair(ref.EventID1, ref.EventID2)
		details, err := json.Marshal(ref.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal details: %w", err)
		}
		if ref.CreatedAt.IsZero() {
			ref.CreatedAt = time.Now()
		}

		_, err = tx.Exec(`
			INSERT INTO cross_references (reference_id, event_id_1, event_id_2, relationship_type, confidence_score, details, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(event_id_1, event_id_2, relationship_type) DO UPDATE SET
				confidence_score = excluded.confidence_score,
				details = excluded.details,
				created_at = excluded.created_at
		`, ref.ReferenceID, id1, id2, string(ref.RelationshipType), ref.ConfidenceScore, details, ref.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save cross-reference: %w", err)
		}
	}

	return tx.Commit()
}

// GetForEvent returns all cross-references involving an event, highest
// confidence first.
func (s *CrossRefStore) GetForEvent(eventID string) ([]models.CrossReference, error) {
	rows, err := s.db.Query(`
		SELECT reference_id, event_id_1, event_id_2, relationship_type, confidence_score, details, created_at
		FROM cross_references
		WHERE event_id_1 = ? OR event_id_2 = ?
		ORDER BY confidence_score DESC, relationship_type ASC
	`, eventID, eventID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var refs []models.CrossReference
	for rows.Next() {
		var (
			ref     models.CrossReference
			relType string
			details []byte
		)
		if err := rows.Scan(&ref.ReferenceID, &ref.EventID1, &ref.EventID2,
			&relType, &ref.ConfidenceScore, &details, &ref.CreatedAt); err != nil {
			return nil, err
		}
		ref.RelationshipType = models.RelationshipType(relType)
		if err := json.Unmarshal(details, &ref.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal details: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}
