package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// BusinessRepository handles hotel account lookups
type BusinessRepository struct {
	db *sqlx.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *sqlx.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// GetByID retrieves a business by ID
func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var business models.Business

	query := `
		SELECT id, name, country, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &business, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	return &business, nil
}

// ListAll retrieves every business, used by the background sweeps
func (r *BusinessRepository) ListAll(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business

	query := `
		SELECT id, name, country, created_at, updated_at
		FROM businesses
		ORDER BY created_at
	`

	if err := r.db.SelectContext(ctx, &businesses, query); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	return businesses, nil
}
