// ABOUTME: Charm KV implementation of the embedding backend
// ABOUTME: Stores embedding records as JSON values for cloud-synced installs
package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/reverie-journal/reverie/internal/charm"
	"github.com/reverie-journal/reverie/internal/models"
	"github.com/reverie-journal/reverie/internal/vector"
)

// CharmVectorStore keeps embeddings in Charm KV, synced across devices.
// Each record is one JSON value; a Set for an existing key replaces the
// whole value, which gives the atomic last-write-wins semantics Put needs.
type CharmVectorStore struct {
	client *charm.Client
}

// NewCharmVectorStore creates a CharmVectorStore over an open client
func NewCharmVectorStore(client *charm.Client) *CharmVectorStore {
	return &CharmVectorStore{client: client}
}

// Put saves an embedding record, replacing any prior value for the pair
func (s *CharmVectorStore) Put(rec models.EmbeddingRecord) error {
	if len(rec.Vector) != rec.Dimension {
		return &models.DimensionMismatchError{Expected: rec.Dimension, Got: len(rec.Vector)}
	}
	if !vector.IsFinite(rec.Vector) {
		return fmt.Errorf("embedding for event %s contains non-finite values", rec.EventID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	return s.client.SetJSON(charm.EmbeddingKey(rec.Provider, rec.EventID), rec)
}

// Get retrieves the current embedding for an (event, provider) pair.
// Returns nil when absent.
func (s *CharmVectorStore) Get(eventID, provider string) (*models.EmbeddingRecord, error) {
	data, err := s.client.Get(charm.EmbeddingKey(provider, eventID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var rec models.EmbeddingRecord
	if err := s.client.GetJSON(charm.EmbeddingKey(provider, eventID), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AllForProvider returns every embedding for a provider. The key listing is
// the snapshot point; values written after it are skipped if missing.
func (s *CharmVectorStore) AllForProvider(provider string) ([]models.EmbeddingRecord, error) {
	keys, err := s.client.ListKeys(charm.EmbeddingProviderPrefix(provider))
	if err != nil {
		return nil, fmt.Errorf("failed to list embedding keys: %w", err)
	}
	sort.Strings(keys)

	records := make([]models.EmbeddingRecord, 0, len(keys))
	for _, key := range keys {
		var rec models.EmbeddingRecord
		if err := s.client.GetJSON(key, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the embedding for an (event, provider) pair
func (s *CharmVectorStore) Delete(eventID, provider string) error {
	return s.client.Delete(charm.EmbeddingKey(provider, eventID))
}

// ClearProvider removes every embedding for a provider
func (s *CharmVectorStore) ClearProvider(provider string) error {
	keys, err := s.client.ListKeys(charm.EmbeddingProviderPrefix(provider))
	if err != nil {
		return fmt.Errorf("failed to list embedding keys: %w", err)
	}
	for _, key := range keys {
		if err := s.client.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// CountForProvider returns the number of stored embeddings for a provider
func (s *CharmVectorStore) CountForProvider(provider string) (int, error) {
	keys, err := s.client.ListKeys(charm.EmbeddingProviderPrefix(provider))
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
