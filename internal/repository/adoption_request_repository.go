package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
)

const adoptionRequestColumns = `id, adopter_id, dog_id, full_name, email, phone, address, adopter_status, home_type,
       has_other_pets, agreed, request_status, vet_review_status, vet_review_note, vet_reviewed_by, vet_reviewed_at,
       decision_note, decided_by, decided_at, created_at, updated_at`

// AdoptionRequestRepository persists adoption requests. Every write that depends on the
// workflow state is conditional on request_status = 'pending' and reports a lost race
// as sql.ErrNoRows.
type AdoptionRequestRepository struct {
	db *sqlx.DB
}

// NewAdoptionRequestRepository constructs the repository.
func NewAdoptionRequestRepository(db *sqlx.DB) *AdoptionRequestRepository {
	return &AdoptionRequestRepository{db: db}
}

// Create inserts a new pending request.
func (r *AdoptionRequestRepository) Create(ctx context.Context, req *models.AdoptionRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.RequestStatus = models.AdoptionStatusPending
	if req.VetReview == "" {
		req.VetReview = models.VetReviewPending
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = req.CreatedAt

	const query = `INSERT INTO adoption_requests
	(id, adopter_id, dog_id, full_name, email, phone, address, adopter_status, home_type, has_other_pets, agreed,
	 request_status, vet_review_status, created_at, updated_at)
	VALUES (:id, :adopter_id, :dog_id, :full_name, :email, :phone, :address, :adopter_status, :home_type, :has_other_pets, :agreed,
	 :request_status, :vet_review_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create adoption request: %w", err)
	}
	return nil
}

// GetByID fetches a request by identifier.
func (r *AdoptionRequestRepository) GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	query := `SELECT ` + adoptionRequestColumns + ` FROM adoption_requests WHERE id = $1`
	var req models.AdoptionRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// ExistsForAdopterAndDog reports whether the adopter already asked for the dog.
func (r *AdoptionRequestRepository) ExistsForAdopterAndDog(ctx context.Context, adopterID, dogID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM adoption_requests WHERE adopter_id = $1 AND dog_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, adopterID, dogID); err != nil {
		return false, fmt.Errorf("check adoption request: %w", err)
	}
	return exists, nil
}

// List returns requests matching the filter, newest first, with the total match count.
func (r *AdoptionRequestRepository) List(ctx context.Context, filter models.AdoptionRequestFilter) ([]models.AdoptionRequest, int, error) {
	where, args := adoptionRequestWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM adoption_requests`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count adoption requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM adoption_requests%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		adoptionRequestColumns, where, limit, offset)

	var items []models.AdoptionRequest
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list adoption requests: %w", err)
	}
	return items, total, nil
}

// ListAll returns every request matching the filter, oldest first. Limit and Offset are ignored.
func (r *AdoptionRequestRepository) ListAll(ctx context.Context, filter models.AdoptionRequestFilter) ([]models.AdoptionRequest, error) {
	where, args := adoptionRequestWhere(filter)
	query := `SELECT ` + adoptionRequestColumns + ` FROM adoption_requests` + where + ` ORDER BY created_at ASC`
	var items []models.AdoptionRequest
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list all adoption requests: %w", err)
	}
	return items, nil
}

func adoptionRequestWhere(filter models.AdoptionRequestFilter) (string, []interface{}) {
	args := make([]interface{}, 0, 6)
	conditions := make([]string, 0, 4)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("request_status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.VetReview != "" {
		args = append(args, filter.VetReview)
		conditions = append(conditions, fmt.Sprintf("vet_review_status = $%d", len(args)))
	}
	if filter.DogID != "" {
		args = append(args, filter.DogID)
		conditions = append(conditions, fmt.Sprintf("dog_id = $%d", len(args)))
	}
	if filter.AdopterID != "" {
		args = append(args, filter.AdopterID)
		conditions = append(conditions, fmt.Sprintf("adopter_id = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// UpdateAdoptionParams carries the columns to change; nil fields are left untouched.
type UpdateAdoptionParams struct {
	ID            string
	DogID         *string
	FullName      *string
	Email         *string
	Phone         *string
	Address       *string
	AdopterStatus *string
	HomeType      *string
	HasOtherPets  *bool
	UpdatedAt     time.Time
}

func (p UpdateAdoptionParams) assignments() ([]string, map[string]interface{}) {
	args := map[string]interface{}{"id": p.ID, "updated_at": p.UpdatedAt}
	sets := []string{"updated_at = :updated_at"}
	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = :%s", column, column))
		args[column] = value
	}
	if p.DogID != nil {
		add("dog_id", *p.DogID)
	}
	if p.FullName != nil {
		add("full_name", *p.FullName)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.AdopterStatus != nil {
		add("adopter_status", *p.AdopterStatus)
	}
	if p.HomeType != nil {
		add("home_type", *p.HomeType)
	}
	if p.HasOtherPets != nil {
		add("has_other_pets", *p.HasOtherPets)
	}
	return sets, args
}

// UpdateDetails edits profile fields of a pending request.
func (r *AdoptionRequestRepository) UpdateDetails(ctx context.Context, params UpdateAdoptionParams) error {
	if params.UpdatedAt.IsZero() {
		params.UpdatedAt = time.Now().UTC()
	}
	sets, args := params.assignments()
	query := fmt.Sprintf("UPDATE adoption_requests SET %s WHERE id = :id AND request_status = '%s'",
		strings.Join(sets, ", "), models.AdoptionStatusPending)
	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update adoption request: %w", err)
	}
	return expectOneRow(result, "update adoption request")
}

// DecisionParams describes an approve or reject outcome.
type DecisionParams struct {
	ID        string
	Status    models.AdoptionStatus
	DecidedBy string
	DecidedAt time.Time
	Note      *string
}

// Decide moves a pending request to approved or rejected. Approval marks the dog as
// adopted inside the same transaction and rolls back with ErrDogUnavailable when the
// dog was adopted through another request.
func (r *AdoptionRequestRepository) Decide(ctx context.Context, params DecisionParams) (err error) {
	if params.Status != models.AdoptionStatusApproved && params.Status != models.AdoptionStatusRejected {
		return fmt.Errorf("decide adoption request: unsupported status %q", params.Status)
	}
	if params.DecidedAt.IsZero() {
		params.DecidedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin decision tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const decide = `UPDATE adoption_requests
	SET request_status = $2, decided_by = $3, decided_at = $4, decision_note = $5, updated_at = $4
	WHERE id = $1 AND request_status = 'pending'
	RETURNING dog_id`
	var dogID string
	if err = tx.QueryRowxContext(ctx, decide, params.ID, params.Status, params.DecidedBy, params.DecidedAt, params.Note).Scan(&dogID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("decide adoption request: %w", err)
	}

	if params.Status == models.AdoptionStatusApproved {
		const adopt = `UPDATE dogs SET status = $2, updated_at = $3 WHERE id = $1 AND status <> 'adopted'`
		var result sql.Result
		result, err = tx.ExecContext(ctx, adopt, dogID, models.DogStatusAdopted, params.DecidedAt)
		if err != nil {
			return fmt.Errorf("mark dog adopted: %w", err)
		}
		var rows int64
		if rows, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("mark dog adopted rows: %w", err)
		}
		if rows == 0 {
			err = ErrDogUnavailable
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit decision: %w", err)
	}
	return nil
}

// VetReviewParams records a veterinary assessment.
type VetReviewParams struct {
	ID         string
	Status     models.VetReviewStatus
	Note       *string
	ReviewedBy string
	ReviewedAt time.Time
}

// UpdateVetReview stores the vet review of a pending request.
func (r *AdoptionRequestRepository) UpdateVetReview(ctx context.Context, params VetReviewParams) error {
	if params.ReviewedAt.IsZero() {
		params.ReviewedAt = time.Now().UTC()
	}
	const query = `UPDATE adoption_requests
	SET vet_review_status = $2, vet_review_note = $3, vet_reviewed_by = $4, vet_reviewed_at = $5, updated_at = $5
	WHERE id = $1 AND request_status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, params.ID, params.Status, params.Note, params.ReviewedBy, params.ReviewedAt)
	if err != nil {
		return fmt.Errorf("update vet review: %w", err)
	}
	return expectOneRow(result, "update vet review")
}

// Delete removes a pending request.
func (r *AdoptionRequestRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM adoption_requests WHERE id = $1 AND request_status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete adoption request: %w", err)
	}
	return expectOneRow(result, "delete adoption request")
}

// CountByStatus groups all requests by workflow state.
func (r *AdoptionRequestRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT request_status AS status, COUNT(*) AS count FROM adoption_requests GROUP BY request_status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count adoption requests by status: %w", err)
	}
	return counts, nil
}

// CountPendingByVetReview groups the pending queue by vet review state.
func (r *AdoptionRequestRepository) CountPendingByVetReview(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT vet_review_status AS status, COUNT(*) AS count FROM adoption_requests
	WHERE request_status = 'pending' GROUP BY vet_review_status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count pending requests by vet review: %w", err)
	}
	return counts, nil
}

// RecentApprovals lists the latest approved requests.
func (r *AdoptionRequestRepository) RecentApprovals(ctx context.Context, limit int) ([]models.AdoptionRequest, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	query := `SELECT ` + adoptionRequestColumns + ` FROM adoption_requests
	WHERE request_status = 'approved' ORDER BY decided_at DESC NULLS LAST LIMIT $1`
	var items []models.AdoptionRequest
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("list recent approvals: %w", err)
	}
	return items, nil
}

func expectOneRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
