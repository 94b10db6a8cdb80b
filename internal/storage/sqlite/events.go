// ABOUTME: Event persistence operations for SQLite
// ABOUTME: Events carry typed tag/person/location sets through join tables
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reverie-journal/reverie/internal/models"
)

// EventStore handles event and era persistence
type EventStore struct {
	db *DB
}

// NewEventStore creates a new EventStore
func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db}
}

// Save inserts or updates an event along with its tag/person/location sets.
// Entity names are deduplicated through the entity tables.
func (s *EventStore) Save(event *models.Event) error {
	if event.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if event.Title == "" {
		return fmt.Errorf("event title is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	_, err = tx.Exec(`
		INSERT INTO events (id, title, description, category, start_date, end_date, era_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			era_id = excluded.era_id,
			updated_at = excluded.updated_at
	`, event.ID, event.Title, event.Description, event.Category,
		event.StartDate, nullTime(event.EndDate), nullString(event.EraID),
		event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	// Rewrite entity joins: delete then re-link keeps ordering columns correct
	for _, table := range []string{"event_tags", "event_people", "event_locations"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE event_id = ?", event.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, tag := range event.Tags {
		tagID, err := upsertEntity(tx, "tags", tag.Name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO event_tags (event_id, tag_id) VALUES (?, ?)", event.ID, tagID); err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}
	for i, person := range event.People {
		personID, err := upsertEntity(tx, "people", person.Name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO event_people (event_id, person_id, position) VALUES (?, ?, ?)", event.ID, personID, i); err != nil {
			return fmt.Errorf("failed to link person: %w", err)
		}
	}
	for i, loc := range event.Locations {
		locID, err := upsertEntity(tx, "locations", loc.Name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO event_locations (event_id, location_id, position) VALUES (?, ?, ?)", event.ID, locID, i); err != nil {
			return fmt.Errorf("failed to link location: %w", err)
		}
	}

	return tx.Commit()
}

// upsertEntity finds or creates a named entity, returning its id
func upsertEntity(tx *sql.Tx, table, name string) (string, error) {
	var id string
	err := tx.QueryRow("SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		id = uuid.New().String()
		if _, err := tx.Exec("INSERT INTO "+table+" (id, name) VALUES (?, ?)", id, name); err != nil {
			return "", fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		return id, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up %s: %w", table, err)
	}
	return id, nil
}

// GetByID retrieves an event with all its entity sets.
// Returns models.ErrNotFound if the event does not exist.
func (s *EventStore) GetByID(id string) (*models.Event, error) {
	var (
		event   models.Event
		endDate sql.NullTime
		eraID   sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT id, title, description, category, start_date, end_date, era_id, created_at, updated_at
		FROM events
		WHERE id = ?
	`, id).Scan(&event.ID, &event.Title, &event.Description, &event.Category,
		&event.StartDate, &endDate, &eraID, &event.CreatedAt, &event.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		event.EndDate = &endDate.Time
	}
	if eraID.Valid {
		event.EraID = eraID.String
	}

	if err := s.loadEntities(&event); err != nil {
		return nil, err
	}

	return &event, nil
}

// GetTags returns the tag set for an event.
func (s *EventStore) GetTags(eventID string) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = ?
		ORDER BY t.name ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// List returns events ordered by start date. Nil bounds mean unbounded;
// the default is the full event history.
func (s *EventStore) List(from, to *time.Time) ([]models.Event, error) {
	query := `
		SELECT id, title, description, category, start_date, end_date, era_id, created_at, updated_at
		FROM events
	`
	var (
		conds []string
		args  []interface{}
	)
	if from != nil {
		conds = append(conds, "start_date >= ?")
		args = append(args, *from)
	}
	if to != nil {
		conds = append(conds, "start_date <= ?")
		args = append(args, *to)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY start_date ASC, id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []models.Event
	for rows.Next() {
		var (
			event   models.Event
			endDate sql.NullTime
			eraID   sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Category,
			&event.StartDate, &endDate, &eraID, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, err
		}
		if endDate.Valid {
			event.EndDate = &endDate.Time
		}
		if eraID.Valid {
			event.EraID = eraID.String
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		if err := s.loadEntities(&events[i]); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// Delete removes an event; joins and embeddings cascade.
func (s *EventStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	return err
}

// SaveEra inserts or updates an era.
func (s *EventStore) SaveEra(era *models.Era) error {
	if era.ID == "" {
		return fmt.Errorf("era id is required")
	}
	_, err := s.db.Exec(`
		INSERT INTO eras (id, name, start_date, end_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`, era.ID, era.Name, era.StartDate, nullTime(era.EndDate))
	return err
}

// ListEras returns all eras ordered by start date.
func (s *EventStore) ListEras() ([]models.Era, error) {
	rows, err := s.db.Query(`
		SELECT id, name, start_date, end_date
		FROM eras
		ORDER BY start_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var eras []models.Era
	for rows.Next() {
		var (
			era     models.Era
			endDate sql.NullTime
		)
		if err := rows.Scan(&era.ID, &era.Name, &era.StartDate, &endDate); err != nil {
			return nil, err
		}
		if endDate.Valid {
			era.EndDate = &endDate.Time
		}
		eras = append(eras, era)
	}
	return eras, rows.Err()
}

// loadEntities fills the tag/person/location sets on an event
func (s *EventStore) loadEntities(event *models.Event) error {
	tags, err := s.GetTags(event.ID)
	if err != nil {
		return err
	}
	event.Tags = tags

	rows, err := s.db.Query(`
		SELECT p.id, p.name FROM people p
		JOIN event_people ep ON ep.person_id = p.id
		WHERE ep.event_id = ?
		ORDER BY ep.position ASC
	`, event.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			_ = rows.Close()
			return err
		}
		event.People = append(event.People, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	rows, err = s.db.Query(`
		SELECT l.id, l.name FROM locations l
		JOIN event_locations el ON el.location_id = l.id
		WHERE el.event_id = ?
		ORDER BY el.position ASC
	`, event.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			_ = rows.Close()
			return err
		}
		event.Locations = append(event.Locations, l)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	return nil
}

// nullString converts an empty string to NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTime converts a nil time pointer to NULL
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
