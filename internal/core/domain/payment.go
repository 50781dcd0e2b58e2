package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentState is the platform-internal payment lifecycle state.
// Raw processor codes are never stored; they are mapped on ingestion.
type PaymentState string

const (
	PaymentStatePending  PaymentState = "PENDING"
	PaymentStateApproved PaymentState = "APPROVED"
	PaymentStateRejected PaymentState = "REJECTED"
	PaymentStateError    PaymentState = "ERROR"
)

// Processor transaction state codes as delivered in webhooks.
const (
	ProcessorStateApproved = "4"
	ProcessorStateExpired  = "5"
	ProcessorStateDeclined = "6"
	ProcessorStatePending  = "7"
)

// MapProcessorState translates a processor state code into the internal
// enum. Unknown codes map to PENDING as the conservative default.
func MapProcessorState(code string) PaymentState {
	switch code {
	case ProcessorStateApproved:
		return PaymentStateApproved
	case ProcessorStateExpired, ProcessorStateDeclined:
		return PaymentStateRejected
	case ProcessorStatePending:
		return PaymentStatePending
	default:
		return PaymentStatePending
	}
}

// PaymentTransaction correlates a checkout attempt with the processor.
// Created PENDING at checkout submission and moved to a terminal state by
// the reconciler; rows are never deleted.
type PaymentTransaction struct {
	ID                     uuid.UUID    `json:"id"`
	ReferenceCode          string       `json:"reference_code"` // sanitized, alphanumeric only
	UserID                 uuid.UUID    `json:"user_id"`
	Amount                 float64      `json:"amount"` // major units; rendering rule depends on currency
	Currency               string       `json:"currency"`
	State                  PaymentState `json:"state"`
	Description            string       `json:"description"`
	ProcessorTransactionID *string      `json:"processor_transaction_id,omitempty"`
	ResponseCode           *string      `json:"response_code,omitempty"`
	ResponseMessage        *string      `json:"response_message,omitempty"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// IsTerminal returns true once the transaction reached a final state.
func (t *PaymentTransaction) IsTerminal() bool {
	return t.State == PaymentStateApproved || t.State == PaymentStateRejected
}

// zeroDecimalCurrencies rounds to whole units; everything else renders with
// exactly two decimals. The set mirrors the processor's documentation.
var zeroDecimalCurrencies = map[string]bool{
	"COP": true,
	"CLP": true,
	"JPY": true,
	"KRW": true,
	"PYG": true,
	"VND": true,
}

// IsZeroDecimal reports whether the currency renders without decimals.
func IsZeroDecimal(currency string) bool {
	return zeroDecimalCurrencies[strings.ToUpper(currency)]
}

// FormatAmount renders an amount for the given currency. The rendering must
// be byte-identical between the signature string and the transmitted
// payload or the counter-party rejects the signature.
func FormatAmount(amount float64, currency string) string {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return fmt.Sprintf("%.0f", amount)
	}
	return fmt.Sprintf("%.2f", amount)
}

// SanitizeReference strips every non-alphanumeric character. Both the
// processor and the signature computation require the sanitized form.
func SanitizeReference(ref string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(ref) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
