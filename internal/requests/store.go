package requests

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for data-subject rights requests.
type Store struct {
	db *db.DB
}

// NewStore creates a new rights-request store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new request, stamping the statutory due date from the
// request kind when none was supplied.
func (s *Store) Create(ctx context.Context, req Request) (*Request, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = StatusReceived
	}
	if req.Assignee == "" {
		req.Assignee = "dpo"
	}
	now := time.Now().UTC()
	if req.DueAt.IsZero() {
		req.DueAt = now.AddDate(0, 0, DueDays(req.Kind))
	}
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rights_requests (id, org_id, kind, subject_name, subject_email, details, status, assignee, due_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.OrgID, string(req.Kind), req.SubjectName, req.SubjectEmail, req.Details,
		string(req.Status), req.Assignee, req.DueAt.UTC().Format(time.DateTime),
		now.Format(time.DateTime), now.Format(time.DateTime),
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByID retrieves a single request.
func (s *Store) GetByID(ctx context.Context, id string) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, kind, subject_name, subject_email, details, status, assignee, due_at, resolved_at, resolution, created_at, updated_at
		FROM rights_requests WHERE id = ?`, id)
	return scanRequest(row)
}

// List returns requests matching the filter, soonest deadline first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	var conditions []string
	var args []interface{}

	if filter.OrgID != "" {
		conditions = append(conditions, "org_id = ?")
		args = append(args, filter.OrgID)
	}
	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.OverdueOnly {
		conditions = append(conditions, "status IN ('received','in_progress') AND due_at < ?")
		args = append(args, time.Now().UTC().Format(time.DateTime))
	}

	query := "SELECT id, org_id, kind, subject_name, subject_email, details, status, assignee, due_at, resolved_at, resolution, created_at, updated_at FROM rights_requests"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY due_at ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *req)
	}
	return results, rows.Err()
}

// Resolve completes or rejects a request with a resolution note.
func (s *Store) Resolve(ctx context.Context, id string, status Status, resolution string) error {
	if status != StatusCompleted && status != StatusRejected {
		return fmt.Errorf("resolve status must be completed or rejected, got %s", status)
	}
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE rights_requests SET status = ?, resolution = ?, resolved_at = ?, updated_at = ?
		WHERE id = ?`,
		string(status), resolution, now, now, id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("request not found: %s", id)
	}
	return nil
}

// Assign routes a request to a handler and marks it in progress.
func (s *Store) Assign(ctx context.Context, id, assignee string) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE rights_requests SET assignee = ?, status = 'in_progress', updated_at = ?
		WHERE id = ?`,
		assignee, now, id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("request not found: %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (*Request, error) {
	var req Request
	var kind, status string
	var resolvedAt sql.NullString
	var dueAt, createdAt, updatedAt string

	err := s.Scan(&req.ID, &req.OrgID, &kind, &req.SubjectName, &req.SubjectEmail, &req.Details,
		&status, &req.Assignee, &dueAt, &resolvedAt, &req.Resolution, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	req.Kind = Kind(kind)
	req.Status = Status(status)
	if t, err := time.Parse(time.DateTime, dueAt); err == nil {
		req.DueAt = t
	}
	if resolvedAt.Valid {
		if t, err := time.Parse(time.DateTime, resolvedAt.String); err == nil {
			req.ResolvedAt = &t
		}
	}
	if t, err := time.Parse(time.DateTime, createdAt); err == nil {
		req.CreatedAt = t
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		req.UpdatedAt = t
	}
	return &req, nil
}
