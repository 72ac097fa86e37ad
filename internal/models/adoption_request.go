package models

import "time"

// AdoptionStatus captures workflow states for adoption requests.
type AdoptionStatus string

const (
	AdoptionStatusPending  AdoptionStatus = "pending"
	AdoptionStatusApproved AdoptionStatus = "approved"
	AdoptionStatusRejected AdoptionStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s AdoptionStatus) IsTerminal() bool {
	return s == AdoptionStatusApproved || s == AdoptionStatusRejected
}

// VetReviewStatus is the advisory veterinary clearance sub-state.
type VetReviewStatus string

const (
	VetReviewPending VetReviewStatus = "pending"
	VetReviewCleared VetReviewStatus = "cleared"
	VetReviewFlagged VetReviewStatus = "flagged"
)

// AdoptionRequest is one adopter's request for one dog.
type AdoptionRequest struct {
	ID            string          `db:"id" json:"id"`
	AdopterID     string          `db:"adopter_id" json:"adopterId"`
	DogID         string          `db:"dog_id" json:"dogId"`
	FullName      string          `db:"full_name" json:"fullName"`
	Email         string          `db:"email" json:"email"`
	Phone         string          `db:"phone" json:"phone"`
	Address       string          `db:"address" json:"address"`
	AdopterStatus string          `db:"adopter_status" json:"adopterStatus"`
	HomeType      string          `db:"home_type" json:"homeType"`
	HasOtherPets  bool            `db:"has_other_pets" json:"hasOtherPets"`
	Agreed        bool            `db:"agreed" json:"agreed"`
	RequestStatus AdoptionStatus  `db:"request_status" json:"requestStatus"`
	VetReview     VetReviewStatus `db:"vet_review_status" json:"vetReviewStatus"`
	VetReviewNote *string         `db:"vet_review_note" json:"vetReviewNote,omitempty"`
	VetReviewedBy *string         `db:"vet_reviewed_by" json:"vetReviewedBy,omitempty"`
	VetReviewedAt *time.Time      `db:"vet_reviewed_at" json:"vetReviewedAt,omitempty"`
	DecisionNote  *string         `db:"decision_note" json:"decisionNote,omitempty"`
	DecidedBy     *string         `db:"decided_by" json:"decidedBy,omitempty"`
	DecidedAt     *time.Time      `db:"decided_at" json:"decidedAt,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// AdoptionRequestFilter constrains listing queries.
type AdoptionRequestFilter struct {
	Status    []AdoptionStatus
	VetReview VetReviewStatus
	DogID     string
	AdopterID string
	Limit     int
	Offset    int
}

// AdoptionCertificate is the data printed on an approved adoption's certificate.
type AdoptionCertificate struct {
	AdoptionRequestID string    `json:"adoptionRequestId"`
	CertificateNo     string    `json:"certificateNo"`
	AdopterName       string    `json:"adopterName"`
	AdopterEmail      string    `json:"adopterEmail"`
	DogID             string    `json:"dogId"`
	DogName           string    `json:"dogName"`
	DogBreed          string    `json:"dogBreed"`
	AdoptedAt         time.Time `json:"adoptedAt"`
	IssuedAt          time.Time `json:"issuedAt"`
}
