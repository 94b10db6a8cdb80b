// ABOUTME: Backend-agnostic embedding storage contract
// ABOUTME: Satisfied by the SQLite store and the Charm KV cloud store
package storage

import "github.com/reverie-journal/reverie/internal/models"

// VectorBackend persists one current embedding per (event, provider) pair.
//
// Put must be atomic with respect to Get: readers never observe a partially
// written vector. AllForProvider returns a snapshot taken at the start of
// the scan; concurrent writes become visible to later scans only.
type VectorBackend interface {
	Put(rec models.EmbeddingRecord) error
	Get(eventID, provider string) (*models.EmbeddingRecord, error)
	AllForProvider(provider string) ([]models.EmbeddingRecord, error)
	Delete(eventID, provider string) error
	ClearProvider(provider string) error
	CountForProvider(provider string) (int, error)
}
