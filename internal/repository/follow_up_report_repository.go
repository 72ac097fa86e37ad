package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
)

const followUpColumns = `id, adoption_request_id, dog_id, adopter_id, week, health_condition, feeding_status, feeding_notes,
       behavior_checklist, behavior_notes, environment_check, optional_notes, photos, vet_report, created_at`

// FollowUpReportRepository persists weekly follow-up reports. Rows are insert-only.
type FollowUpReportRepository struct {
	db *sqlx.DB
}

// NewFollowUpReportRepository constructs the repository.
func NewFollowUpReportRepository(db *sqlx.DB) *FollowUpReportRepository {
	return &FollowUpReportRepository{db: db}
}

// Create inserts a report. A second report for the same request and week returns ErrDuplicate.
func (r *FollowUpReportRepository) Create(ctx context.Context, report *models.FollowUpReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if report.BehaviorChecklist == nil {
		report.BehaviorChecklist = []string{}
	}
	if report.Photos == nil {
		report.Photos = []string{}
	}
	const query = `INSERT INTO follow_up_reports
	(id, adoption_request_id, dog_id, adopter_id, week, health_condition, feeding_status, feeding_notes,
	 behavior_checklist, behavior_notes, environment_check, optional_notes, photos, vet_report, created_at)
	VALUES (:id, :adoption_request_id, :dog_id, :adopter_id, :week, :health_condition, :feeding_status, :feeding_notes,
	 :behavior_checklist, :behavior_notes, :environment_check, :optional_notes, :photos, :vet_report, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create follow-up report: %w", err)
	}
	return nil
}

// GetByID fetches a report by identifier.
func (r *FollowUpReportRepository) GetByID(ctx context.Context, id string) (*models.FollowUpReport, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_up_reports WHERE id = $1`
	var report models.FollowUpReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByAdoptionRequest returns the reports of one adoption ordered by week.
func (r *FollowUpReportRepository) ListByAdoptionRequest(ctx context.Context, adoptionRequestID string) ([]models.FollowUpReport, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_up_reports WHERE adoption_request_id = $1 ORDER BY week ASC`
	var reports []models.FollowUpReport
	if err := r.db.SelectContext(ctx, &reports, query, adoptionRequestID); err != nil {
		return nil, fmt.Errorf("list follow-up reports: %w", err)
	}
	return reports, nil
}

// Progress aggregates follow-up completion over approved adoptions.
func (r *FollowUpReportRepository) Progress(ctx context.Context) (*models.FollowUpProgress, error) {
	query := fmt.Sprintf(`SELECT
	    COALESCE(SUM(f.filed), 0) AS reports_filed,
	    COUNT(*) AS adoptions_tracked,
	    COUNT(*) FILTER (WHERE f.filed >= %d) AS adoptions_completed
	FROM adoption_requests a
	LEFT JOIN (
	    SELECT adoption_request_id, COUNT(*) AS filed FROM follow_up_reports GROUP BY adoption_request_id
	) f ON f.adoption_request_id = a.id
	WHERE a.request_status = 'approved'`, models.FollowUpWeeksRequired)
	var progress models.FollowUpProgress
	if err := r.db.GetContext(ctx, &progress, query); err != nil {
		return nil, fmt.Errorf("aggregate follow-up progress: %w", err)
	}
	return &progress, nil
}
