package ports

import (
	"context"
	"time"

	"edupay-service/internal/core/domain"

	"github.com/google/uuid"
)

// SignatureService computes and verifies the shared-secret digest that
// authenticates outgoing payment requests and incoming webhooks.
type SignatureService interface {
	// Sign builds key~merchantId~referenceCode~amount~currency and digests it.
	Sign(key, merchantID, referenceCode string, amount float64, currency string) string
	// SignState appends ~stateCode to the signed string (sale-state webhooks).
	SignState(key, merchantID, referenceCode string, amount float64, currency, stateCode string) string
	// Verify recomputes the digest for a decoded notification and compares
	// it to the supplied signature. Malformed fields fail closed.
	Verify(n *domain.ProcessorNotification, key string) bool
}

// ProcessorGateway submits authorization requests to the payment processor.
// It never returns a Go error across this boundary: transport and
// configuration failures surface as ERROR-state results.
type ProcessorGateway interface {
	Authorize(ctx context.Context, order CheckoutOrder) *PaymentResult
}

// CheckoutOrder is a validated, ready-to-submit authorization request.
type CheckoutOrder struct {
	ReferenceCode string // sanitized before use
	Description   string
	Amount        float64 // tax-inclusive
	Currency      string
	Buyer         Buyer
	Card          *CardDetails // nil = redirect flow
	ClientIP      string
	UserAgent     string
}

// Buyer identifies the paying learner.
type Buyer struct {
	FullName       string
	Email          string
	Phone          string
	DocumentNumber string
	Address        Address
}

// Address is a postal address block shared by buyer and billing.
type Address struct {
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
	Phone      string
}

// CardDetails holds card data for the direct-card flow. Never persisted.
type CardDetails struct {
	Number         string
	SecurityCode   string
	Expiration     string // YYYY/MM
	HolderName     string
	InstallmentNum int
}

// PaymentResult is the normalized outcome of one authorization attempt.
type PaymentResult struct {
	State                  domain.PaymentState
	ProcessorTransactionID string
	ResponseCode           string
	ResponseMessage        string
	OrderID                string
	Diagnostic             string // transport/config failure detail, not user-facing
}

// --- Service Ports (Business Logic) ---

// CheckoutService owns checkout submission: persist PENDING, authorize,
// apply the synchronous result.
type CheckoutService interface {
	Submit(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

// CheckoutRequest holds validated checkout input.
type CheckoutRequest struct {
	UserID        uuid.UUID
	ReferenceCode string // optional; generated when empty
	Amount        float64
	Currency      string
	Description   string
	Buyer         Buyer
	Card          *CardDetails
	ClientIP      string
	UserAgent     string
}

// CheckoutResult pairs the stored transaction with the processor outcome.
type CheckoutResult struct {
	Transaction *domain.PaymentTransaction
	Result      *PaymentResult
}

// ReconcilerService maps processor webhooks and state codes onto stored
// transactions, and answers synchronous status polls.
type ReconcilerService interface {
	ApplyWebhook(ctx context.Context, fields map[string]string, clientIP string) (*ReconcileResult, error)
	PollStatus(ctx context.Context, referenceCode, transactionID string) (*StatusResult, error)
}

// ReconcileResult describes what a webhook application did.
type ReconcileResult struct {
	ReferenceCode string
	State         domain.PaymentState
	Changed       bool // false = idempotent re-application
	Duplicate     bool // suppressed by the dedupe store
}

// StatusResult is the status-poll answer: stored state plus a minimal
// user summary.
type StatusResult struct {
	Transaction *domain.PaymentTransaction
	User        *UserSummary
}

// UserSummary is the slice of the user row exposed on status polls.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// ProvisionService creates LMS learner accounts and enrolls them in the
// default catalog, with bounded retry. Queue-backed: Enqueue returns
// immediately and a background worker runs the retry loop.
type ProvisionService interface {
	Enqueue(profile domain.LearnerProfile) error
	ProvisionWithRetry(ctx context.Context, profile domain.LearnerProfile, maxAttempts int, backoff time.Duration) *domain.ProvisionResult
	CreateAccount(ctx context.Context, profile domain.LearnerProfile) (*AccountResult, error)
	ListCategoryCourses(ctx context.Context, categoryID int64) ([]domain.Course, error)
	EnrollInCourses(ctx context.Context, accountID int64, courses []domain.Course) *domain.EnrollmentReport
}

// AccountResult is a freshly created LMS account.
type AccountResult struct {
	AccountID int64
	Username  string
}

// LMSClient is the remote procedure surface of the learning management
// system's web-service API.
type LMSClient interface {
	CreateUser(ctx context.Context, acct NewLMSAccount) (int64, error)
	CategoryCourses(ctx context.Context, categoryID int64) ([]domain.Course, error)
	EnrolUser(ctx context.Context, roleID, accountID, courseID int64) error
}

// NewLMSAccount holds the field-per-parameter payload of the LMS
// account-creation call.
type NewLMSAccount struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Locale    string
}

// NotifierService pushes payment state changes to the platform callback
// (the page/email layer's ingestion point).
type NotifierService interface {
	NotifyStateChange(ctx context.Context, tx *domain.PaymentTransaction) error
}

// AuditService records operational audit entries (fire-and-forget).
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// ReportingService answers ops-dashboard queries.
type ReportingService interface {
	GetStats(ctx context.Context, period string) (*TransactionStats, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.PaymentTransaction, int64, error)
}

// OpsAuthService authenticates the operator dashboard.
type OpsAuthService interface {
	Login(ctx context.Context, password string) (string, time.Time, error) // token, expiry, error
}

// TokenService issues and validates operator session tokens.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed token claims.
type TokenClaims struct {
	Subject string
}

// HashService verifies the configured operator password hash.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// DedupeStore suppresses duplicate webhook side effects.
type DedupeStore interface {
	// MarkIfFirst atomically records a payload digest. Returns true when the
	// digest was not seen before within the TTL window.
	MarkIfFirst(ctx context.Context, digest string, ttl time.Duration) (bool, error)
}
