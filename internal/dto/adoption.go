package dto

import "github.com/noah-isme/shelter-adoption-api/internal/models"

// CreateAdoptionRequest is the adopter-supplied application for a dog.
type CreateAdoptionRequest struct {
	DogID         string `json:"dogId" validate:"required"`
	FullName      string `json:"fullName" validate:"required,max=120"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=6,max=32"`
	Address       string `json:"address" validate:"required,max=255"`
	AdopterStatus string `json:"adopterStatus" validate:"omitempty,oneof=employed self-employed student retired unemployed"`
	HomeType      string `json:"homeType" validate:"omitempty,oneof=house apartment condo farm other"`
	HasOtherPets  bool   `json:"hasOtherPets"`
	Agreed        bool   `json:"agreed" validate:"eq=true"`
}

// UpdateAdoptionRequest carries a partial edit. Nil fields are left untouched.
type UpdateAdoptionRequest struct {
	FullName      *string `json:"fullName" validate:"omitempty,min=1,max=120"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,min=6,max=32"`
	Address       *string `json:"address" validate:"omitempty,min=1,max=255"`
	AdopterStatus *string `json:"adopterStatus" validate:"omitempty,oneof=employed self-employed student retired unemployed"`
	HomeType      *string `json:"homeType" validate:"omitempty,oneof=house apartment condo farm other"`
	HasOtherPets  *bool   `json:"hasOtherPets"`
	// DogID may only be changed by an admin.
	DogID *string `json:"dogId" validate:"omitempty,min=1"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateAdoptionRequest) IsEmpty() bool {
	return r.FullName == nil && r.Email == nil && r.Phone == nil && r.Address == nil &&
		r.AdopterStatus == nil && r.HomeType == nil && r.HasOtherPets == nil && r.DogID == nil
}

// DecisionRequest captures the admin's optional note for approve/reject.
type DecisionRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

// VetReviewRequest records the advisory veterinary outcome.
type VetReviewRequest struct {
	Status models.VetReviewStatus `json:"status" validate:"required,oneof=pending cleared flagged"`
	Note   string                 `json:"note" validate:"max=1000"`
}

// AdoptionQuery mirrors supported listing filters.
type AdoptionQuery struct {
	Status    []models.AdoptionStatus
	VetReview models.VetReviewStatus
	DogID     string
	Page      int
	PageSize  int
}

// ApproveResponse is returned after a successful approval.
type ApproveResponse struct {
	ID        string                `json:"id"`
	Status    models.AdoptionStatus `json:"status"`
	DogID     string                `json:"dogId"`
	DogStatus models.DogStatus      `json:"dogStatus"`
}

// RejectResponse is returned after a successful rejection.
type RejectResponse struct {
	ID     string                `json:"id"`
	Status models.AdoptionStatus `json:"status"`
}
