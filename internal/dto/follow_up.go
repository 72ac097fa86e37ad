package dto

import (
	"time"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
)

// SubmitFollowUpRequest is the multipart form body for a weekly report.
type SubmitFollowUpRequest struct {
	AdoptionRequestID string                 `form:"adoptionRequestId" json:"adoptionRequestId" validate:"required"`
	DogID             string                 `form:"dogId" json:"dogId"`
	Week              int                    `form:"week" json:"week" validate:"omitempty,min=1,max=4"`
	HealthCondition   models.HealthCondition `form:"healthCondition" json:"healthCondition" validate:"required,oneof=healthy needs_attention critical"`
	FeedingStatus     models.FeedingStatus   `form:"feedingStatus" json:"feedingStatus" validate:"required,oneof=regular irregular skipped_meals"`
	FeedingNotes      string                 `form:"feedingNotes" json:"feedingNotes" validate:"max=2000"`
	BehaviorChecklist []string               `form:"behaviorChecklist" json:"behaviorChecklist" validate:"dive,oneof=playful aggressive calm anxious"`
	BehaviorNotes     string                 `form:"behaviorNotes" json:"behaviorNotes" validate:"max=2000"`
	EnvironmentCheck  string                 `form:"environmentCheck" json:"environmentCheck" validate:"max=2000"`
	OptionalNotes     string                 `form:"optionalNotes" json:"optionalNotes" validate:"max=2000"`
}

// AttachmentLink is a signed download link for a stored follow-up attachment.
type AttachmentLink struct {
	Kind      string    `json:"kind"`
	Index     int       `json:"index"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FollowUpReportResponse is a stored report plus signed attachment links.
type FollowUpReportResponse struct {
	models.FollowUpReport
	Attachments []AttachmentLink `json:"attachments"`
}
