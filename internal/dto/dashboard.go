package dto

import (
	"time"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
)

// AdoptionDashboardResponse is the admin adoption overview.
type AdoptionDashboardResponse struct {
	Requests        RequestStatusSection    `json:"requests"`
	VetReview       VetReviewSection        `json:"vetReview"`
	Dogs            DogStatusSection        `json:"dogs"`
	FollowUps       models.FollowUpProgress `json:"followUps"`
	RecentApprovals []RecentAdoption        `json:"recentApprovals"`
	GeneratedAt     time.Time               `json:"generatedAt"`
}

// RequestStatusSection counts adoption requests by lifecycle status.
type RequestStatusSection struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// VetReviewSection counts adoption requests by vet review outcome.
type VetReviewSection struct {
	Pending int `json:"pending"`
	Cleared int `json:"cleared"`
	Flagged int `json:"flagged"`
}

// DogStatusSection counts shelter dogs by status.
type DogStatusSection struct {
	Total     int `json:"total"`
	Adoption  int `json:"adoption"`
	Treatment int `json:"treatment"`
	Adopted   int `json:"adopted"`
}

// RecentAdoption is a single line of the recent approvals feed.
type RecentAdoption struct {
	AdoptionRequestID string     `json:"adoptionRequestId"`
	DogID             string     `json:"dogId"`
	AdopterName       string     `json:"adopterName"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
}
