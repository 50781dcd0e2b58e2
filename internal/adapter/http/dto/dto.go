package dto

// AddressBlock is the postal address part of a checkout buyer.
type AddressBlock struct {
	Street     string `json:"street" binding:"omitempty,max=255"`
	City       string `json:"city" binding:"omitempty,max=100"`
	State      string `json:"state" binding:"omitempty,max=100"`
	Country    string `json:"country" binding:"omitempty,len=2"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=20"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
}

// BuyerBlock identifies the paying learner on a checkout request.
type BuyerBlock struct {
	FullName       string       `json:"full_name" binding:"required,min=1,max=150"`
	Email          string       `json:"email" binding:"required,email,max=255"`
	Phone          string       `json:"phone" binding:"omitempty,max=30"`
	DocumentNumber string       `json:"document_number" binding:"omitempty,max=30"`
	Address        AddressBlock `json:"address"`
}

// CardBlock holds card data for the direct-card flow. It is forwarded to
// the processor and never persisted.
type CardBlock struct {
	Number         string `json:"number" binding:"required,min=12,max=19,numeric"`
	SecurityCode   string `json:"security_code" binding:"required,min=3,max=4,numeric"`
	Expiration     string `json:"expiration" binding:"required,card_expiry"`
	HolderName     string `json:"holder_name" binding:"required,max=150"`
	InstallmentNum int    `json:"installments" binding:"omitempty,min=1,max=48"`
}

// CheckoutRequest is the request body for checkout submission.
type CheckoutRequest struct {
	UserID        string     `json:"user_id" binding:"required,uuid"`
	ReferenceCode string     `json:"reference_code" binding:"omitempty,payment_ref,max=100"`
	Amount        float64    `json:"amount" binding:"required"`
	Currency      string     `json:"currency" binding:"required,len=3"`
	Description   string     `json:"description" binding:"omitempty,max=255"`
	Buyer         BuyerBlock `json:"buyer" binding:"required"`
	Card          *CardBlock `json:"card,omitempty"`
}

// CheckoutResponse is the response body for checkout submission.
type CheckoutResponse struct {
	TransactionID          string  `json:"transaction_id"`
	ReferenceCode          string  `json:"reference_code"`
	State                  string  `json:"state"`
	Amount                 float64 `json:"amount"`
	Currency               string  `json:"currency"`
	ProcessorTransactionID *string `json:"processor_transaction_id,omitempty"`
	ResponseCode           *string `json:"response_code,omitempty"`
	ResponseMessage        *string `json:"response_message,omitempty"`
	CreatedAt              string  `json:"created_at"`
}

// WebhookAck is the body returned to the processor after a webhook is
// applied. The processor only inspects the HTTP status code.
type WebhookAck struct {
	ReferenceCode string `json:"reference_code"`
	State         string `json:"state"`
	Applied       bool   `json:"applied"`
}

// StatusResponse is the response body for a status poll.
type StatusResponse struct {
	Transaction CheckoutResponse `json:"transaction"`
	User        *UserSummary     `json:"user,omitempty"`
}

// UserSummary is the minimal account view attached to a status poll.
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ProvisionRequest asks for LMS provisioning of one platform account.
type ProvisionRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ProvisionQueuedResponse acknowledges a queued provisioning job.
type ProvisionQueuedResponse struct {
	UserID string `json:"user_id"`
	Queued bool   `json:"queued"`
}

// OpsLoginRequest is the request body for operator login.
type OpsLoginRequest struct {
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// OpsLoginResponse is the response body for a successful operator login.
type OpsLoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// StatsResponse is the response for aggregated transaction statistics.
type StatsResponse struct {
	TotalTransactions int64   `json:"total_transactions"`
	Pending           int64   `json:"pending"`
	Approved          int64   `json:"approved"`
	Rejected          int64   `json:"rejected"`
	Errored           int64   `json:"errored"`
	ApprovedRevenue   float64 `json:"approved_revenue"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []CheckoutResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}
