package domain

import "errors"

// NotificationKind discriminates the two webhook shapes the processor
// sends. Field presence alone decides the shape; a payload matching
// neither is rejected before any signature work happens.
type NotificationKind string

const (
	// NotificationSaleState carries a state code and signs it.
	NotificationSaleState NotificationKind = "SALE_STATE"
	// NotificationTxConfirmation omits the state code from the signature.
	NotificationTxConfirmation NotificationKind = "TX_CONFIRMATION"
)

// ErrUnrecognizedNotification is returned when a webhook payload contains
// neither required field set. Verification fails closed on it.
var ErrUnrecognizedNotification = errors.New("notification matches no recognized field set")

// ProcessorNotification is the decoded, typed form of a webhook payload.
type ProcessorNotification struct {
	Kind          NotificationKind
	MerchantID    string
	ReferenceCode string
	RawAmount     string // textual amount exactly as supplied
	Currency      string
	StateCode     string // sale-state shape only
	TransactionID string // transaction-confirmation shape only
	Signature     string
}

// Field names used by the processor, per shape.
const (
	fieldSign = "sign"

	// Sale-state shape
	fieldReferenceSale = "reference_sale"
	fieldValue         = "value"
	fieldStatePol      = "state_pol"

	// Transaction-confirmation shape
	fieldTransactionID = "transaction_id"
	fieldReferenceCode = "reference_code"
	fieldAmount        = "amount"

	// Shared
	fieldCurrency   = "currency"
	fieldMerchantID = "merchant_id"
)

// DecodeProcessorNotification attempts the sale-state shape, then the
// transaction-confirmation shape, each as a strict all-fields-present
// check. It never guesses: partial payloads yield
// ErrUnrecognizedNotification.
func DecodeProcessorNotification(fields map[string]string) (*ProcessorNotification, error) {
	if has(fields, fieldReferenceSale, fieldValue, fieldCurrency, fieldMerchantID, fieldStatePol, fieldSign) {
		return &ProcessorNotification{
			Kind:          NotificationSaleState,
			MerchantID:    fields[fieldMerchantID],
			ReferenceCode: fields[fieldReferenceSale],
			RawAmount:     fields[fieldValue],
			Currency:      fields[fieldCurrency],
			StateCode:     fields[fieldStatePol],
			Signature:     fields[fieldSign],
		}, nil
	}

	if has(fields, fieldTransactionID, fieldReferenceCode, fieldAmount, fieldCurrency, fieldMerchantID, fieldSign) {
		return &ProcessorNotification{
			Kind:          NotificationTxConfirmation,
			MerchantID:    fields[fieldMerchantID],
			ReferenceCode: fields[fieldReferenceCode],
			RawAmount:     fields[fieldAmount],
			Currency:      fields[fieldCurrency],
			TransactionID: fields[fieldTransactionID],
			Signature:     fields[fieldSign],
		}, nil
	}

	return nil, ErrUnrecognizedNotification
}

func has(fields map[string]string, names ...string) bool {
	for _, n := range names {
		if fields[n] == "" {
			return false
		}
	}
	return true
}
