package models

import "time"

// DogStatus captures where a shelter dog currently is in its journey.
type DogStatus string

const (
	DogStatusAdoption  DogStatus = "adoption"
	DogStatusTreatment DogStatus = "treatment"
	DogStatusAdopted   DogStatus = "adopted"
)

// Dog is the shelter record referenced by adoption requests.
type Dog struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Breed     string    `db:"breed" json:"breed"`
	Age       string    `db:"age" json:"age"`
	Photo     string    `db:"photo" json:"photo"`
	Status    DogStatus `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// StatusCount is a generic status -> count row used by dashboard aggregates.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}
