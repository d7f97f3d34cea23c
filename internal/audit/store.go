package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for the audit trail.
type Store struct {
	db *db.DB
}

// NewStore creates a new audit store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record appends an entry to the audit trail.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, org_id, timestamp, actor_type, actor_id, action, entity_type, entity_id, summary, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OrgID, e.Timestamp.Format(time.DateTime), string(e.ActorType), e.ActorID,
		string(e.Action), e.EntityType, e.EntityID, e.Summary, e.Detail,
	)
	return err
}

// List returns audit entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	var conditions []string
	var args []interface{}

	if filter.OrgID != "" {
		conditions = append(conditions, "org_id = ?")
		args = append(args, filter.OrgID)
	}
	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, string(filter.Action))
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, org_id, timestamp, actor_type, actor_id, action, entity_type, entity_id, summary, detail FROM audit_entries"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var e Entry
		var ts, actorType, action string
		if err := rows.Scan(&e.ID, &e.OrgID, &ts, &actorType, &e.ActorID, &action,
			&e.EntityType, &e.EntityID, &e.Summary, &e.Detail); err != nil {
			return nil, err
		}
		e.ActorType = ActorType(actorType)
		e.Action = Action(action)
		if t, err := time.Parse(time.DateTime, ts); err == nil {
			e.Timestamp = t
		}
		results = append(results, e)
	}
	return results, rows.Err()
}
