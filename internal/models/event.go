// ABOUTME: Event and entity models for the journaling timeline
// ABOUTME: Typed tag/person/location sets replace loose JSON metadata blobs
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Tag is a user-assigned label on an event.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Person is a named participant referenced by events.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location is a named place referenced by events.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Era is a user-defined named period bounding a set of events.
type Era struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Event is a single journaled life event.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	EraID       string     `json:"era_id,omitempty"`
	Tags        []Tag      `json:"tags,omitempty"`
	People      []Person   `json:"people,omitempty"`
	Locations   []Location `json:"locations,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EmbeddingText composes the text sent to the embedding provider.
// Title, description, and category all carry semantic signal.
func (e *Event) EmbeddingText() string {
	parts := []string{e.Title}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Category != "" {
		parts = append(parts, "Category: "+e.Category)
	}
	return strings.Join(parts, "\n")
}

// ContentHash returns the SHA-256 of the embedding text. Embeddings record
// the hash they were computed from; a mismatch marks the embedding stale.
func (e *Event) ContentHash() string {
	sum := sha256.Sum256([]byte(e.EmbeddingText()))
	return hex.EncodeToString(sum[:])
}

// TagNames returns the event's tag names.
func (e *Event) TagNames() []string {
	names := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		names[i] = t.Name
	}
	return names
}

// HasTag reports whether the event carries a tag with the given name.
func (e *Event) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// PrimaryPerson returns the first-listed person name, or "".
func (e *Event) PrimaryPerson() string {
	if len(e.People) == 0 {
		return ""
	}
	return e.People[0].Name
}

// PrimaryLocation returns the first-listed location name, or "".
func (e *Event) PrimaryLocation() string {
	if len(e.Locations) == 0 {
		return ""
	}
	return e.Locations[0].Name
}
