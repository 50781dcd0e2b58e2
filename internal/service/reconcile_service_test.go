package service

import (
	"context"
	"errors"
	"testing"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/internal/core/ports/mocks"
	"edupay-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSigningKey = "4Vj8eK4rloUd272L48hsrarnUA"
	testMerchantID = "508029"
)

type reconcileMocks struct {
	txRepo    *mocks.MockTransactionRepository
	userRepo  *mocks.MockUserRepository
	sigSvc    *mocks.MockSignatureService
	dedupe    *mocks.MockDedupeStore
	notifier  *mocks.MockNotifierService
	provision *mocks.MockProvisionService
	auditSvc  *mocks.MockAuditService
}

func newReconcileService(ctrl *gomock.Controller) (*ReconcileServiceImpl, *reconcileMocks) {
	m := &reconcileMocks{
		txRepo:    mocks.NewMockTransactionRepository(ctrl),
		userRepo:  mocks.NewMockUserRepository(ctrl),
		sigSvc:    mocks.NewMockSignatureService(ctrl),
		dedupe:    mocks.NewMockDedupeStore(ctrl),
		notifier:  mocks.NewMockNotifierService(ctrl),
		provision: mocks.NewMockProvisionService(ctrl),
		auditSvc:  mocks.NewMockAuditService(ctrl),
	}
	svc := NewReconcileService(
		m.txRepo, m.userRepo, m.sigSvc, m.dedupe, m.notifier, m.provision, m.auditSvc,
		testSigningKey, testMerchantID, newTestLogger(),
	)
	return svc, m
}

func saleStateFields(ref, value, currency, statePol, sign string) map[string]string {
	return map[string]string{
		"reference_sale": ref,
		"value":          value,
		"currency":       currency,
		"merchant_id":    testMerchantID,
		"state_pol":      statePol,
		"sign":           sign,
	}
}

func pendingTransaction(ref string) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID:            uuid.New(),
		ReferenceCode: ref,
		UserID:        uuid.New(),
		Amount:        169000,
		Currency:      "COP",
		State:         domain.PaymentStatePending,
	}
}

func TestReconcileService_ApplyWebhook_ApprovedTriggersSideEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	fields := saleStateFields("EDUX123", "169000", "COP", "4", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, update ports.TransactionStateUpdate) (bool, error) {
			assert.Equal(t, domain.PaymentStateApproved, update.State)
			require.NotNil(t, update.ResponseMessage)
			assert.NotEmpty(t, *update.ResponseMessage)
			return true, nil
		})
	m.notifier.EXPECT().NotifyStateChange(gomock.Any(), gomock.Any()).Return(nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), txn.UserID).Return(&domain.User{
		ID:          txn.UserID,
		Email:       "maria@example.com",
		DisplayName: "Maria Gomez",
	}, nil)
	m.provision.EXPECT().Enqueue(gomock.Any()).
		DoAndReturn(func(profile domain.LearnerProfile) error {
			assert.Equal(t, txn.UserID, profile.UserID)
			assert.Equal(t, "maria@example.com", profile.Email)
			return nil
		})
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any()).Times(2) // queued + applied

	res, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "EDUX123", res.ReferenceCode)
	assert.Equal(t, domain.PaymentStateApproved, res.State)
	assert.True(t, res.Changed)
	assert.False(t, res.Duplicate)
}

func TestReconcileService_ApplyWebhook_InvalidSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	fields := saleStateFields("EDUX123", "169000", "COP", "4", "wrong")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(false)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())

	_, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SIG_001", appErr.Code)
}

func TestReconcileService_ApplyWebhook_UnrecognizedShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())

	_, err := svc.ApplyWebhook(context.Background(), map[string]string{"foo": "bar"}, "10.0.0.1")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SIG_002", appErr.Code)
}

func TestReconcileService_ApplyWebhook_IdempotentRedelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	txn.State = domain.PaymentStateApproved
	fields := saleStateFields("EDUX123", "169000", "COP", "4", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).Return(false, nil)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())
	// No notifier, no provisioning: the state did not change.

	res, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.True(t, res.Duplicate)
}

func TestReconcileService_ApplyWebhook_RejectedSkipsProvisioning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	fields := saleStateFields("EDUX123", "169000", "COP", "6", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).Return(true, nil)
	m.notifier.EXPECT().NotifyStateChange(gomock.Any(), gomock.Any()).Return(nil)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())
	// provision.Enqueue must not be called for a rejection.

	res, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateRejected, res.State)
}

func TestReconcileService_ApplyWebhook_TxConfirmationFallbackLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX999")
	fields := map[string]string{
		"transaction_id": "proc-tx-42",
		"reference_code": "EDUX999",
		"amount":         "19.90",
		"currency":       "USD",
		"merchant_id":    testMerchantID,
		"sign":           "deadbeef",
	}

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	// Reference lookup misses; the processor tx id resolves the row.
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX999").Return(nil, nil)
	m.txRepo.EXPECT().GetByProcessorTxID(gomock.Any(), "proc-tx-42").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, update ports.TransactionStateUpdate) (bool, error) {
			assert.Equal(t, domain.PaymentStateApproved, update.State)
			require.NotNil(t, update.ProcessorTransactionID)
			assert.Equal(t, "proc-tx-42", *update.ProcessorTransactionID)
			return true, nil
		})
	m.notifier.EXPECT().NotifyStateChange(gomock.Any(), gomock.Any()).Return(nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), txn.UserID).Return(&domain.User{ID: txn.UserID, Email: "a@b.c"}, nil)
	m.provision.EXPECT().Enqueue(gomock.Any()).Return(nil)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any()).Times(2)

	res, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateApproved, res.State)
}

func TestReconcileService_ApplyWebhook_UnknownTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	fields := saleStateFields("NOPE", "100.00", "USD", "4", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "NOPE").Return(nil, nil)

	_, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_002", appErr.Code)
}

func TestReconcileService_ApplyWebhook_StorageFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	fields := saleStateFields("EDUX123", "169000", "COP", "4", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).Return(false, errors.New("db down"))

	_, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestReconcileService_ApplyWebhook_DedupeOutageDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	fields := saleStateFields("EDUX123", "169000", "COP", "7", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).Return(false, nil)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())

	res, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePending, res.State)
	assert.False(t, res.Duplicate)
}

func TestReconcileService_PollStatus_ByReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	txn.State = domain.PaymentStateApproved

	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), txn.UserID).Return(&domain.User{
		ID:          txn.UserID,
		Email:       "maria@example.com",
		DisplayName: "Maria Gomez",
	}, nil)

	res, err := svc.PollStatus(context.Background(), "EDUX123", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateApproved, res.Transaction.State)
	require.NotNil(t, res.User)
	assert.Equal(t, "maria@example.com", res.User.Email)
}

func TestReconcileService_PollStatus_FallbackToProcessorTxID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")

	m.txRepo.EXPECT().GetByProcessorTxID(gomock.Any(), "proc-1").Return(txn, nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), txn.UserID).Return(nil, errors.New("user gone"))

	res, err := svc.PollStatus(context.Background(), "", "proc-1")
	require.NoError(t, err)
	assert.Nil(t, res.User) // user lookup failure degrades, never fails the poll
}

func TestReconcileService_PollStatus_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "MISSING").Return(nil, nil)

	_, err := svc.PollStatus(context.Background(), "MISSING", "")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_002", appErr.Code)
}

func TestPayloadDigest_OrderIndependent(t *testing.T) {
	a := payloadDigest(map[string]string{"x": "1", "y": "2"})
	b := payloadDigest(map[string]string{"y": "2", "x": "1"})
	c := payloadDigest(map[string]string{"x": "1", "y": "3"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

// Sanity check: the provisioning queue audit entry carries the right action.
func TestReconcileService_AuditActions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newReconcileService(ctrl)
	txn := pendingTransaction("EDUX123")
	fields := saleStateFields("EDUX123", "169000", "COP", "4", "deadbeef")

	m.sigSvc.EXPECT().Verify(gomock.Any(), testSigningKey).Return(true)
	m.dedupe.EXPECT().MarkIfFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	m.txRepo.EXPECT().GetByReference(gomock.Any(), "EDUX123").Return(txn, nil)
	m.txRepo.EXPECT().UpdateState(gomock.Any(), txn.ID, gomock.Any()).Return(true, nil)
	m.notifier.EXPECT().NotifyStateChange(gomock.Any(), gomock.Any()).Return(nil)
	m.userRepo.EXPECT().GetByID(gomock.Any(), txn.UserID).Return(&domain.User{ID: txn.UserID, Email: "a@b.c"}, nil)
	m.provision.EXPECT().Enqueue(gomock.Any()).Return(nil)

	var actions []domain.AuditAction
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, entry *domain.AuditLog) {
			actions = append(actions, entry.Action)
		}).Times(2)

	_, err := svc.ApplyWebhook(context.Background(), fields, "10.0.0.1")
	require.NoError(t, err)
	assert.Contains(t, actions, domain.AuditActionProvisionQueued)
	assert.Contains(t, actions, domain.AuditActionWebhookApplied)
}
