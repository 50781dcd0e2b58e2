package processor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edupay-service/config"
	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.ProcessorConfig {
	return config.ProcessorConfig{
		BaseURL:    baseURL,
		APIKey:     "secretKey",
		APILogin:   "login123",
		MerchantID: "500238",
		AccountID:  "500538",
		Sandbox:    true,
		TaxRate:    0.19,
		Timeout:    5 * time.Second,
	}
}

func testOrder() ports.CheckoutOrder {
	return ports.CheckoutOrder{
		ReferenceCode: "EDUX123",
		Description:   "Premium plan",
		Amount:        169000,
		Currency:      "COP",
		Buyer: ports.Buyer{
			FullName:       "Ana Torres",
			Email:          "ana@example.com",
			Phone:          "3001234567",
			DocumentNumber: "1020304050",
			Address: ports.Address{
				Street:  "Calle 1 # 2-3",
				City:    "Bogota",
				State:   "Cundinamarca",
				Country: "CO",
			},
		},
		ClientIP:  "10.0.0.1",
		UserAgent: "test-agent",
	}
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(testConfig(baseURL), service.NewDigestSignatureService(), nil, zerolog.Nop())
}

func TestClient_Authorize_Approved(t *testing.T) {
	sigSvc := service.NewDigestSignatureService()
	var captured authorizationRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "SUCCESS",
			"transactionResponse": {
				"orderId": 84321,
				"transactionId": "tx-abc-001",
				"state": "APPROVED",
				"responseCode": "APPROVED",
				"responseMessage": "Aprobada"
			}
		}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	result := client.Authorize(context.Background(), testOrder())

	require.NotNil(t, result)
	assert.Equal(t, domain.PaymentStateApproved, result.State)
	assert.Equal(t, "tx-abc-001", result.ProcessorTransactionID)
	assert.Equal(t, "Aprobada", result.ResponseMessage)
	assert.Equal(t, "84321", result.OrderID)

	// The transmitted amount and the signed amount must be byte-identical.
	assert.Equal(t, commandSubmitTransaction, captured.Command)
	assert.Equal(t, transactionTypeCapture, captured.Transaction.Type)
	assert.Equal(t, "169000", captured.Transaction.Order.AdditionalValues["TX_VALUE"].Value)
	wantSig := sigSvc.Sign("secretKey", "500238", "EDUX123", 169000, "COP")
	assert.Equal(t, wantSig, captured.Transaction.Order.Signature)
	assert.NotEmpty(t, captured.Transaction.DeviceSessionID)
	assert.True(t, captured.Test, "sandbox flag must propagate")
}

func TestClient_Authorize_PendingIsContinueState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"SUCCESS","transactionResponse":{"state":"PENDING","transactionId":"tx-p1","responseCode":"PENDING_TRANSACTION_REVIEW"}}`))
	}))
	defer srv.Close()

	result := newClient(t, srv.URL).Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStatePending, result.State)
}

func TestClient_Authorize_DeclinedState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"SUCCESS","transactionResponse":{"state":"DECLINED","responseCode":"ANTIFRAUD_REJECTED","responseMessage":"Rechazada"}}`))
	}))
	defer srv.Close()

	result := newClient(t, srv.URL).Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStateRejected, result.State)
	assert.Equal(t, "Rechazada", result.ResponseMessage)
}

func TestClient_Authorize_TopLevelErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"ERROR","error":"Invalid merchant credentials"}`))
	}))
	defer srv.Close()

	result := newClient(t, srv.URL).Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStateRejected, result.State)
	assert.Equal(t, "Invalid merchant credentials", result.ResponseMessage)
}

func TestClient_Authorize_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	result := newClient(t, srv.URL).Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStateError, result.State)
	assert.Equal(t, "TRANSPORT_ERROR", result.ResponseCode)
	assert.NotEmpty(t, result.Diagnostic)
}

func TestClient_Authorize_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	result := newClient(t, srv.URL).Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStateError, result.State)
}

func TestClient_Authorize_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	result := newClient(t, srv.URL).Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStateError, result.State)
}

func TestClient_Authorize_MissingCredentialsFailsFast(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	client := NewClient(cfg, service.NewDigestSignatureService(), nil, zerolog.Nop())

	result := client.Authorize(context.Background(), testOrder())
	assert.Equal(t, domain.PaymentStateError, result.State)
	assert.Equal(t, "CONFIGURATION_ERROR", result.ResponseCode)
	assert.Zero(t, calls, "no network call may be attempted without credentials")
}

func TestClient_Authorize_ValidatesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid order must not reach the network")
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	order := testOrder()
	order.Buyer.Email = ""
	result := client.Authorize(context.Background(), order)
	assert.Equal(t, "VALIDATION_ERROR", result.ResponseCode)

	order = testOrder()
	order.Amount = 0
	result = client.Authorize(context.Background(), order)
	assert.Equal(t, "VALIDATION_ERROR", result.ResponseCode)
}

func TestClient_Authorize_DirectCardFlow(t *testing.T) {
	var captured authorizationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"code":"SUCCESS","transactionResponse":{"state":"APPROVED","transactionId":"tx-1"}}`))
	}))
	defer srv.Close()

	order := testOrder()
	order.Card = &ports.CardDetails{
		Number:       "5123456789012346",
		SecurityCode: "123",
		Expiration:   "2030/01",
		HolderName:   "ANA TORRES",
	}

	newClient(t, srv.URL).Authorize(context.Background(), order)

	require.NotNil(t, captured.Transaction.CreditCard)
	assert.Equal(t, schemeMastercard, captured.Transaction.PaymentMethod)
	assert.Equal(t, "5123456789012346", captured.Transaction.CreditCard.Number)
}

func TestPaymentMethodForCard(t *testing.T) {
	cases := map[string]string{
		"4111111111111111": schemeVisa,
		"5123456789012346": schemeMastercard,
		"371449635398431":  schemeAmex,
		"6011000990139424": schemeDiners,
		"9999000000000000": schemeVisa, // unknown prefix falls back
		"":                 schemeVisa,
	}
	for pan, want := range cases {
		assert.Equal(t, want, paymentMethodForCard(pan), "pan %q", pan)
	}
}

func TestTaxSplit(t *testing.T) {
	base, tax := taxSplit(169000, 0.19, "COP")
	assert.Equal(t, 142017.0, base) // round(169000 / 1.19)
	assert.Equal(t, 26983.0, tax)
	assert.Equal(t, 169000.0, base+tax, "split must reconstruct the amount")

	base, tax = taxSplit(19.90, 0.19, "USD")
	assert.InDelta(t, 16.72, base, 0.001)
	assert.InDelta(t, 3.18, tax, 0.001)
}

func TestDeviceSessionID_UniquePerAttempt(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := deviceSessionID()
		assert.Len(t, id, 32)
		assert.False(t, seen[id], "fingerprint must be unique per attempt")
		seen[id] = true
	}
}
