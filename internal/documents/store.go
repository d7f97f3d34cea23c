package documents

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for document records.
type Store struct {
	db *db.DB
}

// NewStore creates a new document store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new document. Empty status defaults to draft.
func (s *Store) Create(ctx context.Context, doc Document) (*Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Status == "" {
		doc.Status = StatusDraft
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, org_id, type, title, status, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.OrgID, string(doc.Type), doc.Title, string(doc.Status), doc.Content,
		now.Format(time.DateTime), now.Format(time.DateTime),
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByID retrieves a single document.
func (s *Store) GetByID(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, type, title, status, content, approved_by, approved_at, created_at, updated_at
		FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// List returns documents matching the given filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	var conditions []string
	var args []interface{}

	if filter.OrgID != "" {
		conditions = append(conditions, "org_id = ?")
		args = append(args, filter.OrgID)
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := "SELECT id, org_id, type, title, status, content, approved_by, approved_at, created_at, updated_at FROM documents"
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

	var results []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *d)
	}
	return results, rows.Err()
}

// Approve marks a document as active and records the approving DPO.
func (s *Store) Approve(ctx context.Context, id, approvedBy string) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = 'active', approved_by = ?, approved_at = ?, updated_at = ?
		WHERE id = ?`,
		approvedBy, now, now, id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// UpdateStatus moves a document to the given workflow status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, updated_at = ? WHERE id = ?`,
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
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// UpdateContent replaces a document's content, moving it back to draft.
func (s *Store) UpdateContent(ctx context.Context, id, content string) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET content = ?, status = 'draft', updated_at = ? WHERE id = ?`,
		content, now, id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(s scanner) (*Document, error) {
	var d Document
	var typ, status string
	var approvedBy, approvedAt sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&d.ID, &d.OrgID, &typ, &d.Title, &status, &d.Content,
		&approvedBy, &approvedAt, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	d.Type = Type(typ)
	d.Status = Status(status)
	d.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		if t, err := time.Parse(time.DateTime, approvedAt.String); err == nil {
			d.ApprovedAt = &t
		}
	}
	if t, err := time.Parse(time.DateTime, createdAt); err == nil {
		d.CreatedAt = t
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		d.UpdatedAt = t
	}
	return &d, nil
}
