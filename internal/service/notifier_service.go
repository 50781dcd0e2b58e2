package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notifierRetryIntervals spaces the delivery retries for the platform
// callback.
var notifierRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	5 * time.Minute,
}

// EventPaymentStateChanged is the event type carried on every callback.
const EventPaymentStateChanged = "PAYMENT_STATE_CHANGED"

// CallbackPayload is the JSON structure pushed to the platform callback
// URL. The page and email layer consumes it to render receipts and send
// confirmation mail.
type CallbackPayload struct {
	EventType string              `json:"event_type"`
	Data      CallbackPayloadData `json:"data"`
}

// CallbackPayloadData holds the transaction details in the callback.
type CallbackPayloadData struct {
	TransactionID   string  `json:"transaction_id"`
	ReferenceCode   string  `json:"reference_code"`
	UserID          string  `json:"user_id"`
	State           string  `json:"state"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	ResponseMessage string  `json:"response_message,omitempty"`
	Timestamp       int64   `json:"timestamp"`
}

// HTTPClient is the outbound HTTP surface, narrowed for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NotifierServiceImpl implements ports.NotifierService.
type NotifierServiceImpl struct {
	deliveryRepo ports.DeliveryRepository
	httpClient   HTTPClient
	callbackURL  string
	secret       string
	log          zerolog.Logger
}

// NewNotifierService creates a new NotifierServiceImpl. An empty
// callbackURL disables delivery entirely.
func NewNotifierService(
	deliveryRepo ports.DeliveryRepository,
	httpClient HTTPClient,
	callbackURL string,
	secret string,
	log zerolog.Logger,
) *NotifierServiceImpl {
	return &NotifierServiceImpl{
		deliveryRepo: deliveryRepo,
		httpClient:   httpClient,
		callbackURL:  callbackURL,
		secret:       secret,
		log:          log,
	}
}

// NotifyStateChange pushes the transaction's new state to the platform
// callback asynchronously with retries. The delivery log row is created
// synchronously so the attempt is visible even if the process dies.
func (s *NotifierServiceImpl) NotifyStateChange(ctx context.Context, tx *domain.PaymentTransaction) error {
	if s.callbackURL == "" {
		s.log.Debug().Str("tx_id", tx.ID.String()).Msg("notifier: no callback URL configured, skipping")
		return nil
	}

	data := CallbackPayloadData{
		TransactionID: tx.ID.String(),
		ReferenceCode: tx.ReferenceCode,
		UserID:        tx.UserID.String(),
		State:         string(tx.State),
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Timestamp:     time.Now().Unix(),
	}
	if tx.ResponseMessage != nil {
		data.ResponseMessage = *tx.ResponseMessage
	}
	payload := CallbackPayload{EventType: EventPaymentStateChanged, Data: data}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	logRow := &domain.DeliveryLog{
		ID:            uuid.New(),
		TransactionID: tx.ID,
		CallbackURL:   s.callbackURL,
		Payload:       string(payloadBytes),
		Status:        domain.DeliveryStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if s.deliveryRepo != nil {
		if err := s.deliveryRepo.Create(ctx, logRow); err != nil {
			s.log.Error().Err(err).Str("tx_id", tx.ID.String()).Msg("notifier: failed to record delivery")
		}
	}

	go s.deliverWithRetries(payloadBytes, logRow)
	return nil
}

// deliverWithRetries attempts delivery until a 2xx or the interval list
// runs out, updating the delivery log row after each attempt.
func (s *NotifierServiceImpl) deliverWithRetries(payload []byte, logRow *domain.DeliveryLog) {
	ctx := context.Background()
	for attempt := 0; attempt <= len(notifierRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifierRetryIntervals[attempt-1])
		}
		logRow.Attempt = attempt + 1

		status, err := s.deliverOnce(payload)
		if err != nil {
			msg := err.Error()
			logRow.LastError = &msg
			s.updateRow(ctx, logRow, domain.DeliveryStatusPending, nil)
			s.log.Warn().Err(err).
				Str("tx_id", logRow.TransactionID.String()).
				Int("attempt", logRow.Attempt).
				Msg("notifier: delivery failed")
			continue
		}

		if status >= 200 && status < 300 {
			s.updateRow(ctx, logRow, domain.DeliveryStatusDelivered, &status)
			s.log.Info().
				Str("tx_id", logRow.TransactionID.String()).
				Int("attempt", logRow.Attempt).
				Int("status", status).
				Msg("notifier: delivered")
			return
		}

		s.updateRow(ctx, logRow, domain.DeliveryStatusPending, &status)
		s.log.Warn().
			Str("tx_id", logRow.TransactionID.String()).
			Int("attempt", logRow.Attempt).
			Int("status", status).
			Msg("notifier: non-2xx response, retrying")
	}

	s.updateRow(ctx, logRow, domain.DeliveryStatusFailed, logRow.HTTPStatus)
	s.log.Error().Str("tx_id", logRow.TransactionID.String()).Msg("notifier: all delivery attempts exhausted")
}

func (s *NotifierServiceImpl) deliverOnce(payload []byte) (int, error) {
	req, err := http.NewRequest(http.MethodPost, s.callbackURL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set("X-Callback-Signature", signPayload(s.secret, payload))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (s *NotifierServiceImpl) updateRow(ctx context.Context, logRow *domain.DeliveryLog, status domain.DeliveryStatus, httpStatus *int) {
	if s.deliveryRepo == nil {
		return
	}
	logRow.Status = status
	logRow.HTTPStatus = httpStatus
	logRow.UpdatedAt = time.Now().UTC()
	if err := s.deliveryRepo.Update(ctx, logRow); err != nil {
		s.log.Error().Err(err).Str("delivery_id", logRow.ID.String()).Msg("notifier: failed to update delivery log")
	}
}

// signPayload HMAC-signs the callback body so the platform can verify
// origin.
func signPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
