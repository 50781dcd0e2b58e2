package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the platform account row. Authentication itself lives in the
// external backend; this service only reads the profile and writes the
// external LMS username after successful provisioning.
type User struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	ExternalUsername *string   `json:"external_username,omitempty"`
	Locale           string    `json:"locale"`
	CreatedAt        time.Time `json:"created_at"`
}
