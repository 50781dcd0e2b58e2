package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go.uber.org/mock/gomock"
)

func TestAuditService_Log_PersistsAsync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditRepository(ctrl)
	persisted := make(chan *domain.AuditLog, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.AuditLog) error {
			persisted <- entry
			return nil
		})

	svc := NewAuditService(repo, newTestLogger())
	svc.Log(context.Background(), &domain.AuditLog{
		Action:       domain.AuditActionWebhookApplied,
		ResourceType: "webhook",
		ResourceID:   "EDUX123",
	})

	select {
	case entry := <-persisted:
		assert.Equal(t, domain.AuditActionWebhookApplied, entry.Action)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry was not persisted")
	}
}

func TestAuditService_Log_NilRepoOnlyLogs(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())
	// Must not panic.
	svc.Log(context.Background(), &domain.AuditLog{Action: domain.AuditActionOpsLogin})
}

func TestAuditService_Log_RepoFailureDoesNotPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditRepository(ctrl)
	done := make(chan struct{}, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.AuditLog) error {
			done <- struct{}{}
			return errors.New("db down")
		})

	svc := NewAuditService(repo, newTestLogger())
	svc.Log(context.Background(), &domain.AuditLog{Action: domain.AuditActionCheckout})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit persistence was not attempted")
	}
}
