package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus represents the state of an outbound callback delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// DeliveryLog records attempts to push a payment state change to the
// platform callback (the page/email layer's ingestion endpoint).
type DeliveryLog struct {
	ID            uuid.UUID      `json:"id"`
	TransactionID uuid.UUID      `json:"transaction_id"`
	CallbackURL   string         `json:"callback_url"`
	Payload       string         `json:"payload"` // JSON string
	HTTPStatus    *int           `json:"http_status"`
	Attempt       int            `json:"attempt"`
	Status        DeliveryStatus `json:"status"`
	LastError     *string        `json:"last_error"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
