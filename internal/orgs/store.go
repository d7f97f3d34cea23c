package orgs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for organizations.
type Store struct {
	db *db.DB
}

// NewStore creates a new organization store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new organization.
func (s *Store) Create(ctx context.Context, org Organization) (*Organization, error) {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	if org.Industry == "" {
		org.Industry = "other"
	}
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, industry, contact_email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		org.ID, org.Name, org.Industry, org.ContactEmail,
		now.Format(time.DateTime), now.Format(time.DateTime),
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByID retrieves a single organization.
func (s *Store) GetByID(ctx context.Context, id string) (*Organization, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, industry, contact_email, created_at, updated_at
		FROM organizations WHERE id = ?`, id)

	var org Organization
	var createdAt, updatedAt string
	err := row.Scan(&org.ID, &org.Name, &org.Industry, &org.ContactEmail, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.DateTime, createdAt); err == nil {
		org.CreatedAt = t
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		org.UpdatedAt = t
	}
	return &org, nil
}

// List returns every organization, newest first.
func (s *Store) List(ctx context.Context) ([]Organization, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, industry, contact_email, created_at, updated_at
		FROM organizations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Organization
	for rows.Next() {
		var org Organization
		var createdAt, updatedAt string
		if err := rows.Scan(&org.ID, &org.Name, &org.Industry, &org.ContactEmail, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.DateTime, createdAt); err == nil {
			org.CreatedAt = t
		}
		if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
			org.UpdatedAt = t
		}
		results = append(results, org)
	}
	return results, rows.Err()
}

// Update modifies an organization's mutable fields.
func (s *Store) Update(ctx context.Context, org Organization) error {
	now := time.Now().UTC().Format(time.DateTime)
	result, err := s.db.ExecContext(ctx, `
		UPDATE organizations SET name = ?, industry = ?, contact_email = ?, updated_at = ?
		WHERE id = ?`,
		org.Name, org.Industry, org.ContactEmail, now, org.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("organization not found: %s", org.ID)
	}
	return nil
}
