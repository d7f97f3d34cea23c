package incidents

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for incident records.
type Store struct {
	db *db.DB
}

// NewStore creates a new incident store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new incident. Empty status defaults to open, empty severity to medium.
func (s *Store) Create(ctx context.Context, inc Incident) (*Incident, error) {
	if inc.ID == "" {
		inc.ID = uuid.NewString()
	}
	if inc.Status == "" {
		inc.Status = StatusOpen
	}
	if inc.Severity == "" {
		inc.Severity = SeverityMedium
	}
	now := time.Now().UTC()
	inc.CreatedAt = now
	inc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO incidents (id, org_id, title, description, severity, status, reported_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inc.ID, inc.OrgID, inc.Title, inc.Description, string(inc.Severity), string(inc.Status),
		inc.ReportedBy, now.Format(time.DateTime), now.Format(time.DateTime),
	)
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

// GetByID retrieves a single incident.
func (s *Store) GetByID(ctx context.Context, id string) (*Incident, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, title, description, severity, status, reported_by, resolved_at, resolution, created_at, updated_at
		FROM incidents WHERE id = ?`, id)
	return scanIncident(row)
}

// List returns incidents matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Incident, error) {
	var conditions []string
	var args []interface{}

	if filter.OrgID != "" {
		conditions = append(conditions, "org_id = ?")
		args = append(args, filter.OrgID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.OpenOnly {
		conditions = append(conditions, "status NOT IN ('resolved','closed')")
	}

	query := "SELECT id, org_id, title, description, severity, status, reported_by, resolved_at, resolution, created_at, updated_at FROM incidents"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *inc)
	}
	return results, rows.Err()
}

// Resolve marks an incident resolved with the given resolution note.
func (s *Store) Resolve(ctx context.Context, id, resolution string) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE incidents SET status = 'resolved', resolution = ?, resolved_at = ?, updated_at = ?
		WHERE id = ?`,
		resolution, now, now, id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("incident not found: %s", id)
	}
	return nil
}

// UpdateStatus moves an incident to the given status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE incidents SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now, id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("incident not found: %s", id)
	}
	return nil
}

// OpenCount returns the number of unresolved incidents for an organization.
func (s *Store) OpenCount(ctx context.Context, orgID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM incidents WHERE org_id = ? AND status NOT IN ('resolved','closed')`,
		orgID).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanIncident(s scanner) (*Incident, error) {
	var inc Incident
	var severity, status string
	var resolvedAt sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&inc.ID, &inc.OrgID, &inc.Title, &inc.Description, &severity, &status,
		&inc.ReportedBy, &resolvedAt, &inc.Resolution, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	inc.Severity = Severity(severity)
	inc.Status = Status(status)
	if resolvedAt.Valid {
		if t, err := time.Parse(time.DateTime, resolvedAt.String); err == nil {
			inc.ResolvedAt = &t
		}
	}
	if t, err := time.Parse(time.DateTime, createdAt); err == nil {
		inc.CreatedAt = t
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		inc.UpdatedAt = t
	}
	return &inc, nil
}
