package models

import (
	"time"

	"github.com/lib/pq"
)

// FollowUpWeeksRequired is the number of mandatory post-adoption check-ins.
const FollowUpWeeksRequired = 4

// HealthCondition reported by the adopter for the week.
type HealthCondition string

const (
	HealthHealthy        HealthCondition = "healthy"
	HealthNeedsAttention HealthCondition = "needs_attention"
	HealthCritical       HealthCondition = "critical"
)

// FeedingStatus reported by the adopter for the week.
type FeedingStatus string

const (
	FeedingRegular      FeedingStatus = "regular"
	FeedingIrregular    FeedingStatus = "irregular"
	FeedingSkippedMeals FeedingStatus = "skipped_meals"
)

// Behavior checklist tags.
const (
	BehaviorPlayful    = "playful"
	BehaviorAggressive = "aggressive"
	BehaviorCalm       = "calm"
	BehaviorAnxious    = "anxious"
)

// FollowUpReport is one weekly post-adoption check-in. Rows are immutable.
type FollowUpReport struct {
	ID                string          `db:"id" json:"id"`
	AdoptionRequestID string          `db:"adoption_request_id" json:"adoptionRequestId"`
	DogID             string          `db:"dog_id" json:"dogId"`
	AdopterID         string          `db:"adopter_id" json:"adopterId"`
	Week              int             `db:"week" json:"week"`
	HealthCondition   HealthCondition `db:"health_condition" json:"healthCondition"`
	FeedingStatus     FeedingStatus   `db:"feeding_status" json:"feedingStatus"`
	FeedingNotes      string          `db:"feeding_notes" json:"feedingNotes"`
	BehaviorChecklist pq.StringArray  `db:"behavior_checklist" json:"behaviorChecklist"`
	BehaviorNotes     string          `db:"behavior_notes" json:"behaviorNotes"`
	EnvironmentCheck  string          `db:"environment_check" json:"environmentCheck"`
	OptionalNotes     string          `db:"optional_notes" json:"optionalNotes"`
	Photos            pq.StringArray  `db:"photos" json:"photos"`
	VetReport         *string         `db:"vet_report" json:"vetReport,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
}

// FollowUpSummary is the derived progress read-model for one adoption request.
type FollowUpSummary struct {
	AdoptionRequestID string `json:"adoptionRequestId"`
	TotalRequired     int    `json:"totalRequired"`
	Completed         int    `json:"completed"`
	NextDueWeek       *int   `json:"nextDueWeek"`
	SubmittedWeeks    []int  `json:"submittedWeeks"`
	IsComplete        bool   `json:"isComplete"`
}

// FollowUpProgress aggregates follow-up completion across approved adoptions.
type FollowUpProgress struct {
	ReportsFiled       int `db:"reports_filed" json:"reportsFiled"`
	AdoptionsTracked   int `db:"adoptions_tracked" json:"adoptionsTracked"`
	AdoptionsCompleted int `db:"adoptions_completed" json:"adoptionsCompleted"`
}
