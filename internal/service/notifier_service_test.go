package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func approvedTransaction() *domain.PaymentTransaction {
	msg := "Transaction approved"
	return &domain.PaymentTransaction{
		ID:              uuid.New(),
		ReferenceCode:   "EDUX123",
		UserID:          uuid.New(),
		Amount:          169000,
		Currency:        "COP",
		State:           domain.PaymentStateApproved,
		ResponseMessage: &msg,
	}
}

func TestNotifierService_NotifyStateChange_DeliversSignedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliveryRepo := mocks.NewMockDeliveryRepository(ctrl)
	deliveryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	deliveryRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var mu sync.Mutex
	var gotBody []byte
	var gotSig string
	delivered := make(chan struct{}, 1)
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			mu.Lock()
			gotBody = body
			gotSig = req.Header.Get("X-Callback-Signature")
			mu.Unlock()
			delivered <- struct{}{}
			return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(""))}, nil
		},
	}

	svc := NewNotifierService(deliveryRepo, httpClient, "https://platform.example.com/callback", "cb-secret", newTestLogger())
	tx := approvedTransaction()

	err := svc.NotifyStateChange(context.Background(), tx)
	require.NoError(t, err)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("callback delivery timed out")
	}

	mu.Lock()
	defer mu.Unlock()
	var payload CallbackPayload
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, EventPaymentStateChanged, payload.EventType)
	assert.Equal(t, "EDUX123", payload.Data.ReferenceCode)
	assert.Equal(t, "APPROVED", payload.Data.State)
	assert.Equal(t, "Transaction approved", payload.Data.ResponseMessage)

	mac := hmac.New(sha256.New, []byte("cb-secret"))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSig)
}

func TestNotifierService_NotifyStateChange_NoCallbackURL(t *testing.T) {
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}

	svc := NewNotifierService(nil, httpClient, "", "secret", newTestLogger())
	err := svc.NotifyStateChange(context.Background(), approvedTransaction())
	assert.NoError(t, err)
}

func TestNotifierService_NotifyStateChange_RecordsDeliveryRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliveryRepo := mocks.NewMockDeliveryRepository(ctrl)
	created := make(chan *domain.DeliveryLog, 1)
	deliveryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *domain.DeliveryLog) error {
			created <- row
			return nil
		})

	updated := make(chan domain.DeliveryStatus, 4)
	deliveryRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *domain.DeliveryLog) error {
			updated <- row.Status
			return nil
		}).AnyTimes()

	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: 204, Body: io.NopCloser(strings.NewReader(""))}, nil
		},
	}

	svc := NewNotifierService(deliveryRepo, httpClient, "https://platform.example.com/callback", "", newTestLogger())
	tx := approvedTransaction()
	require.NoError(t, svc.NotifyStateChange(context.Background(), tx))

	row := <-created
	assert.Equal(t, tx.ID, row.TransactionID)
	assert.Equal(t, domain.DeliveryStatusPending, row.Status)
	assert.NotEmpty(t, row.Payload)

	select {
	case status := <-updated:
		assert.Equal(t, domain.DeliveryStatusDelivered, status)
	case <-time.After(2 * time.Second):
		t.Fatal("delivery log update timed out")
	}
}
