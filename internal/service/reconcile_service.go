package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const dedupeTTL = 48 * time.Hour

// ReconcileServiceImpl implements ports.ReconcilerService.
type ReconcileServiceImpl struct {
	txRepo     ports.TransactionRepository
	userRepo   ports.UserRepository
	sigSvc     ports.SignatureService
	dedupe     ports.DedupeStore
	notifier   ports.NotifierService
	provision  ports.ProvisionService
	auditSvc   ports.AuditService
	signingKey string
	merchantID string
	log        zerolog.Logger
}

// NewReconcileService creates a new ReconcileServiceImpl.
func NewReconcileService(
	txRepo ports.TransactionRepository,
	userRepo ports.UserRepository,
	sigSvc ports.SignatureService,
	dedupe ports.DedupeStore,
	notifier ports.NotifierService,
	provision ports.ProvisionService,
	auditSvc ports.AuditService,
	signingKey string,
	merchantID string,
	log zerolog.Logger,
) *ReconcileServiceImpl {
	return &ReconcileServiceImpl{
		txRepo:     txRepo,
		userRepo:   userRepo,
		sigSvc:     sigSvc,
		dedupe:     dedupe,
		notifier:   notifier,
		provision:  provision,
		auditSvc:   auditSvc,
		signingKey: signingKey,
		merchantID: merchantID,
		log:        log,
	}
}

// ApplyWebhook decodes, authenticates and applies one processor webhook.
// Order matters: shape check, signature, dedupe, then the state update.
// Side effects (notification, provisioning) fire only when the stored
// state actually changed, so redelivered webhooks are harmless.
func (s *ReconcileServiceImpl) ApplyWebhook(ctx context.Context, fields map[string]string, clientIP string) (*ports.ReconcileResult, error) {
	n, err := domain.DecodeProcessorNotification(fields)
	if err != nil {
		s.audit(ctx, domain.AuditActionWebhookRejected, "", "unrecognized payload shape", clientIP)
		return nil, apperror.ErrMalformedNotification()
	}

	if !s.sigSvc.Verify(n, s.signingKey) {
		s.log.Warn().
			Str("reference", n.ReferenceCode).
			Str("kind", string(n.Kind)).
			Str("client_ip", clientIP).
			Msg("webhook signature verification failed")
		s.audit(ctx, domain.AuditActionWebhookRejected, n.ReferenceCode, "signature mismatch", clientIP)
		return nil, apperror.ErrInvalidSignature()
	}

	// Dedupe store failure is not fatal: the state update itself is
	// idempotent, the store only saves work on exact redeliveries.
	first, err := s.dedupe.MarkIfFirst(ctx, payloadDigest(fields), dedupeTTL)
	if err != nil {
		s.log.Warn().Err(err).Msg("dedupe store unavailable, relying on idempotent update")
		first = true
	}

	state := s.resolveState(n)
	txn, err := s.lookupTransaction(ctx, n)
	if err != nil {
		return nil, err
	}

	update := ports.TransactionStateUpdate{State: state}
	if n.TransactionID != "" {
		update.ProcessorTransactionID = &n.TransactionID
	}
	switch state {
	case domain.PaymentStateApproved:
		update.ResponseMessage = optString("Transaction approved")
	case domain.PaymentStateRejected:
		update.ResponseMessage = optString("Transaction declined or expired")
	}

	changed, err := s.txRepo.UpdateState(ctx, txn.ID, update)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("apply webhook state: %w", err))
	}

	txn.State = state
	if update.ProcessorTransactionID != nil {
		txn.ProcessorTransactionID = update.ProcessorTransactionID
	}
	if update.ResponseMessage != nil {
		txn.ResponseMessage = update.ResponseMessage
	}

	if changed {
		s.runSideEffects(ctx, txn)
	}
	s.audit(ctx, domain.AuditActionWebhookApplied, n.ReferenceCode, string(state), clientIP)

	s.log.Info().
		Str("reference", n.ReferenceCode).
		Str("kind", string(n.Kind)).
		Str("state", string(state)).
		Bool("changed", changed).
		Bool("duplicate", !first).
		Msg("webhook applied")

	return &ports.ReconcileResult{
		ReferenceCode: n.ReferenceCode,
		State:         state,
		Changed:       changed,
		Duplicate:     !first,
	}, nil
}

// PollStatus answers a synchronous status query by reference code or,
// when that fails, by processor transaction id.
func (s *ReconcileServiceImpl) PollStatus(ctx context.Context, referenceCode, transactionID string) (*ports.StatusResult, error) {
	var txn *domain.PaymentTransaction
	var err error

	if referenceCode != "" {
		txn, err = s.txRepo.GetByReference(ctx, domain.SanitizeReference(referenceCode))
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("status by reference: %w", err))
		}
	}
	if txn == nil && transactionID != "" {
		txn, err = s.txRepo.GetByProcessorTxID(ctx, transactionID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("status by processor tx id: %w", err))
		}
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}

	res := &ports.StatusResult{Transaction: txn}
	user, err := s.userRepo.GetByID(ctx, txn.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", txn.UserID.String()).Msg("status poll user lookup failed")
	} else if user != nil {
		res.User = &ports.UserSummary{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
	}
	return res, nil
}

// resolveState maps the notification onto an internal state. The
// transaction-confirmation shape carries no state code and counts as an
// approval confirmation.
func (s *ReconcileServiceImpl) resolveState(n *domain.ProcessorNotification) domain.PaymentState {
	if n.Kind == domain.NotificationTxConfirmation {
		return domain.PaymentStateApproved
	}
	return domain.MapProcessorState(n.StateCode)
}

// lookupTransaction resolves the stored row, preferring the reference code
// and falling back to the processor transaction id.
func (s *ReconcileServiceImpl) lookupTransaction(ctx context.Context, n *domain.ProcessorNotification) (*domain.PaymentTransaction, error) {
	txn, err := s.txRepo.GetByReference(ctx, domain.SanitizeReference(n.ReferenceCode))
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lookup by reference: %w", err))
	}
	if txn == nil && n.TransactionID != "" {
		txn, err = s.txRepo.GetByProcessorTxID(ctx, n.TransactionID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("lookup by processor tx id: %w", err))
		}
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

// runSideEffects fires the post-transition work for a state change. Both
// effects are best-effort; the webhook outcome is already committed.
func (s *ReconcileServiceImpl) runSideEffects(ctx context.Context, txn *domain.PaymentTransaction) {
	if s.notifier != nil {
		if err := s.notifier.NotifyStateChange(ctx, txn); err != nil {
			s.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("state change notification failed")
		}
	}

	if txn.State != domain.PaymentStateApproved || s.provision == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, txn.UserID)
	if err != nil || user == nil {
		s.log.Error().Err(err).Str("user_id", txn.UserID.String()).Msg("cannot enqueue provisioning, user lookup failed")
		return
	}
	profile := domain.LearnerProfile{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Locale:      user.Locale,
	}
	if err := s.provision.Enqueue(profile); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("provisioning enqueue failed")
		return
	}
	s.audit(ctx, domain.AuditActionProvisionQueued, user.ID.String(), "", "")
}

func (s *ReconcileServiceImpl) audit(ctx context.Context, action domain.AuditAction, resourceID, detail, clientIP string) {
	if s.auditSvc == nil {
		return
	}
	details := ""
	if detail != "" {
		b, _ := json.Marshal(map[string]string{"detail": detail})
		details = string(b)
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       action,
		ResourceType: "webhook",
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    clientIP,
	})
}

// payloadDigest fingerprints a webhook body for deduplication. Fields are
// digested in sorted key order so form-field ordering never matters.
func payloadDigest(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
		b.WriteByte('&')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
