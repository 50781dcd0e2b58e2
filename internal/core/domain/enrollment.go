package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProvisionState is the LMS provisioning workflow state machine:
// PENDING -> (ATTEMPTING)* -> PROVISIONED | EXHAUSTED.
// No transition skips ATTEMPTING; no retry happens after PROVISIONED.
type ProvisionState string

const (
	ProvisionStatePending     ProvisionState = "PENDING"
	ProvisionStateAttempting  ProvisionState = "ATTEMPTING"
	ProvisionStateProvisioned ProvisionState = "PROVISIONED"
	ProvisionStateExhausted   ProvisionState = "EXHAUSTED"
)

// LearnerProfile is the slice of the platform account the LMS needs.
type LearnerProfile struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Locale      string
}

// Course is a course entry in the LMS default catalog category.
type Course struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullname"`
}

// CourseEnrollment records the outcome of one enrollment call.
type CourseEnrollment struct {
	CourseID   int64  `json:"course_id"`
	CourseName string `json:"course_name"`
	Error      string `json:"error,omitempty"` // empty = enrolled
}

// EnrollmentReport aggregates per-course outcomes for one account.
// Overall success requires at least one successful enrollment; a single
// broken course never blocks the learner entirely.
type EnrollmentReport struct {
	AccountID int64              `json:"account_id"`
	Results   []CourseEnrollment `json:"results"`
}

// Succeeded counts successful enrollments.
func (r *EnrollmentReport) Succeeded() int {
	n := 0
	for _, e := range r.Results {
		if e.Error == "" {
			n++
		}
	}
	return n
}

// Failed counts failed enrollments.
func (r *EnrollmentReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Success reports whether the enrollment round counts as a success.
// An empty course catalog is a success: there was nothing to enroll in.
func (r *EnrollmentReport) Success() bool {
	return len(r.Results) == 0 || r.Succeeded() > 0
}

// EnrollmentAttempt is the in-memory record of one provisioning attempt.
// Usernames are never reused across attempts: a prior partial failure may
// have already claimed the name on the LMS side.
type EnrollmentAttempt struct {
	ExternalUsername string
	UserID           uuid.UUID
	AttemptNumber    int
	LastError        error
}

// ProvisionResult is the terminal outcome of a provisioning run.
type ProvisionResult struct {
	State            ProvisionState `json:"state"`
	ExternalUsername string         `json:"external_username,omitempty"`
	AccountID        int64          `json:"account_id,omitempty"`
	Attempts         int            `json:"attempts"`
	LastError        string         `json:"last_error,omitempty"`
	CompletedAt      time.Time      `json:"completed_at"`
}

// Provisioned reports terminal success.
func (r *ProvisionResult) Provisioned() bool {
	return r.State == ProvisionStateProvisioned
}
