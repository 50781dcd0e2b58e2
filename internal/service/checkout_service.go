package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	txRepo   ports.TransactionRepository
	gateway  ports.ProcessorGateway
	notifier ports.NotifierService
	auditSvc ports.AuditService
	log      zerolog.Logger
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	txRepo ports.TransactionRepository,
	gateway ports.ProcessorGateway,
	notifier ports.NotifierService,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		txRepo:   txRepo,
		gateway:  gateway,
		notifier: notifier,
		auditSvc: auditSvc,
		log:      log,
	}
}

// Submit persists a PENDING transaction, submits the authorization request
// and applies the synchronous outcome. The transaction row is created
// before the processor call so a timeout never loses the attempt.
func (s *CheckoutServiceImpl) Submit(ctx context.Context, req ports.CheckoutRequest) (*ports.CheckoutResult, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, apperror.ErrInvalidAmount()
	}

	ref := domain.SanitizeReference(req.ReferenceCode)
	if ref == "" {
		ref = generateReference()
	}

	// Reference codes are unique: a retried checkout needs a fresh code.
	existing, err := s.txRepo.GetByReference(ctx, ref)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check reference: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateReference()
	}

	now := time.Now().UTC()
	txn := &domain.PaymentTransaction{
		ID:            uuid.New(),
		ReferenceCode: ref,
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		State:         domain.PaymentStatePending,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.txRepo.Create(ctx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	order := ports.CheckoutOrder{
		ReferenceCode: ref,
		Description:   req.Description,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Buyer:         req.Buyer,
		Card:          req.Card,
		ClientIP:      req.ClientIP,
		UserAgent:     req.UserAgent,
	}
	result := s.gateway.Authorize(ctx, order)

	// Apply the synchronous outcome. PENDING stays PENDING (the webhook
	// settles it later); terminal and ERROR outcomes are recorded now.
	if result.State != domain.PaymentStatePending {
		update := ports.TransactionStateUpdate{
			State:           result.State,
			ResponseCode:    optString(result.ResponseCode),
			ResponseMessage: optString(result.ResponseMessage),
		}
		if result.ProcessorTransactionID != "" {
			update.ProcessorTransactionID = &result.ProcessorTransactionID
		}
		changed, err := s.txRepo.UpdateState(ctx, txn.ID, update)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("apply sync result: %w", err))
		}
		txn.State = result.State
		txn.ResponseCode = update.ResponseCode
		txn.ResponseMessage = update.ResponseMessage
		txn.ProcessorTransactionID = update.ProcessorTransactionID

		if changed && txn.IsTerminal() && s.notifier != nil {
			if err := s.notifier.NotifyStateChange(ctx, txn); err != nil {
				s.log.Warn().Err(err).Str("reference", ref).Msg("state change notification failed")
			}
		}
	} else if result.ProcessorTransactionID != "" {
		// Keep the processor correlation id even while still PENDING so the
		// transaction-confirmation webhook can find the row.
		update := ports.TransactionStateUpdate{
			State:                  domain.PaymentStatePending,
			ProcessorTransactionID: &result.ProcessorTransactionID,
			ResponseCode:           optString(result.ResponseCode),
			ResponseMessage:        optString(result.ResponseMessage),
		}
		if _, err := s.txRepo.UpdateState(ctx, txn.ID, update); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("record processor tx id: %w", err))
		}
		txn.ProcessorTransactionID = &result.ProcessorTransactionID
		txn.ResponseCode = update.ResponseCode
		txn.ResponseMessage = update.ResponseMessage
	}

	if s.auditSvc != nil {
		details, _ := json.Marshal(map[string]any{
			"amount":   req.Amount,
			"currency": req.Currency,
			"state":    txn.State,
		})
		s.auditSvc.Log(ctx, &domain.AuditLog{
			Action:       domain.AuditActionCheckout,
			ResourceType: "transaction",
			ResourceID:   txn.ID.String(),
			Details:      string(details),
			IPAddress:    req.ClientIP,
		})
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("reference", ref).
		Str("state", string(txn.State)).
		Float64("amount", req.Amount).
		Str("currency", req.Currency).
		Msg("checkout submitted")

	return &ports.CheckoutResult{Transaction: txn, Result: result}, nil
}

// generateReference builds a collision-resistant reference code. Only
// alphanumeric characters survive downstream sanitization, so the UUID
// hyphens are stripped here.
func generateReference() string {
	return "EDU" + domain.SanitizeReference(uuid.NewString())
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
