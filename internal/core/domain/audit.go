package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies an auditable event.
type AuditAction string

const (
	AuditActionCheckout          AuditAction = "CHECKOUT_SUBMITTED"
	AuditActionWebhookApplied    AuditAction = "WEBHOOK_APPLIED"
	AuditActionWebhookRejected   AuditAction = "WEBHOOK_REJECTED"
	AuditActionProvisionQueued   AuditAction = "PROVISION_QUEUED"
	AuditActionProvisionFinished AuditAction = "PROVISION_FINISHED"
	AuditActionOpsLogin          AuditAction = "OPS_LOGIN"
)

// AuditLog is one operational audit entry.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Details      string      `json:"details"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
