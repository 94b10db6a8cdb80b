// ABOUTME: Embedding storage operations for SQLite
// ABOUTME: One current vector per (event, provider), stored as float64 BLOBs
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/reverie-journal/reverie/internal/models"
	"github.com/reverie-journal/reverie/internal/vector"
)

// EmbeddingStore handles embedding persistence
type EmbeddingStore struct {
	db *DB
}

// NewEmbeddingStore creates a new EmbeddingStore
func NewEmbeddingStore(db *DB) *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// Put saves an embedding record. The write is a single upsert: last write
// wins for the (event, provider) pair and readers never observe a partial
// vector. Vectors failing the dimension or finiteness checks are rejected.
func (s *EmbeddingStore) Put(rec models.EmbeddingRecord) error {
	if len(rec.Vector) != rec.Dimension {
		return &models.DimensionMismatchError{Expected: rec.Dimension, Got: len(rec.Vector)}
	}
	if !vector.IsFinite(rec.Vector) {
		return fmt.Errorf("embedding for event %s contains non-finite values", rec.EventID)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO embeddings (event_id, provider, model, dimension, content_hash, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id, provider) DO UPDATE SET
			model = excluded.model,
			dimension = excluded.dimension,
			content_hash = excluded.content_hash,
			vector = excluded.vector,
			created_at = excluded.created_at
	`, rec.EventID, rec.Provider, rec.Model, rec.Dimension, rec.ContentHash,
		vectorToBlob(rec.Vector), rec.CreatedAt)

	return err
}

// Get retrieves the current embedding for an (event, provider) pair.
// Returns nil when absent.
func (s *EmbeddingStore) Get(eventID, provider string) (*models.EmbeddingRecord, error) {
	var (
		rec  models.EmbeddingRecord
		blob []byte
	)

	err := s.db.QueryRow(`
		SELECT event_id, provider, model, dimension, content_hash, vector, created_at
		FROM embeddings
		WHERE event_id = ? AND provider = ?
	`, eventID, provider).Scan(&rec.EventID, &rec.Provider, &rec.Model,
		&rec.Dimension, &rec.ContentHash, &blob, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Vector = blobToVector(blob)
	return &rec, nil
}

// AllForProvider returns every embedding for a provider as a snapshot taken
// at the start of the scan. Writes that land after the query begins are
// visible only to later scans.
func (s *EmbeddingStore) AllForProvider(provider string) ([]models.EmbeddingRecord, error) {
	rows, err := s.db.Query(`
		SELECT event_id, provider, model, dimension, content_hash, vector, created_at
		FROM embeddings
		WHERE provider = ?
		ORDER BY event_id ASC
	`, provider)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []models.EmbeddingRecord
	for rows.Next() {
		var (
			rec  models.EmbeddingRecord
			blob []byte
		)
		if err := rows.Scan(&rec.EventID, &rec.Provider, &rec.Model,
			&rec.Dimension, &rec.ContentHash, &blob, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Vector = blobToVector(blob)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Delete removes the embedding for an (event, provider) pair
func (s *EmbeddingStore) Delete(eventID, provider string) error {
	_, err := s.db.Exec("DELETE FROM embeddings WHERE event_id = ? AND provider = ?", eventID, provider)
	return err
}

// ClearProvider removes every embedding for a provider. Irreversible; used
// for provider/model migration.
func (s *EmbeddingStore) ClearProvider(provider string) error {
	_, err := s.db.Exec("DELETE FROM embeddings WHERE provider = ?", provider)
	return err
}

// CountForProvider returns the number of stored embeddings for a provider
func (s *EmbeddingStore) CountForProvider(provider string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM embeddings WHERE provider = ?", provider).Scan(&count)
	return count, err
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(v []float64) []byte {
	blob := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(x))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	v := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		v[i] = math.Float64frombits(bits)
	}
	return v
}
