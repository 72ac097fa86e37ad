package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
)

// DogRepository reads shelter dog records. Dogs are managed by the wider shelter
// system; this service only reads them and flips them to adopted on approval.
type DogRepository struct {
	db *sqlx.DB
}

// NewDogRepository constructs the repository.
func NewDogRepository(db *sqlx.DB) *DogRepository {
	return &DogRepository{db: db}
}

// GetByID fetches a dog by identifier.
func (r *DogRepository) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	const query = `SELECT id, name, breed, age, photo, status, created_at, updated_at FROM dogs WHERE id = $1`
	var dog models.Dog
	if err := r.db.GetContext(ctx, &dog, query, id); err != nil {
		return nil, err
	}
	return &dog, nil
}

// CountByStatus groups dogs by shelter status.
func (r *DogRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM dogs GROUP BY status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count dogs by status: %w", err)
	}
	return counts, nil
}
