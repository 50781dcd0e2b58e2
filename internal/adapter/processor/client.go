package processor

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"edupay-service/config"
	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	commandSubmitTransaction = "SUBMIT_TRANSACTION"
	transactionTypeCapture   = "AUTHORIZATION_AND_CAPTURE"
	responseCodeSuccess      = "SUCCESS"

	stateApproved = "APPROVED"
	statePending  = "PENDING"
)

// Card scheme tags derived from the PAN's first digit. This is a
// heuristic, not a validated BIN lookup; unknown prefixes default to VISA.
const (
	schemeVisa       = "VISA"
	schemeMastercard = "MASTERCARD"
	schemeAmex       = "AMEX"
	schemeDiners     = "DINERS"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.ProcessorGateway against the payment
// processor's JSON API. It is a pure request/response translator: it never
// persists anything and never returns a Go error across its boundary.
type Client struct {
	cfg        config.ProcessorConfig
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a processor gateway client.
func NewClient(cfg config.ProcessorConfig, sigSvc ports.SignatureService, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:        cfg,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		log:        log,
	}
}

// --- wire types ---

type authorizationRequest struct {
	Language    string           `json:"language"`
	Command     string           `json:"command"`
	Test        bool             `json:"test"`
	Merchant    merchantBlock    `json:"merchant"`
	Transaction transactionBlock `json:"transaction"`
}

type merchantBlock struct {
	APIKey   string `json:"apiKey"`
	APILogin string `json:"apiLogin"`
}

type transactionBlock struct {
	Order           orderBlock       `json:"order"`
	Payer           payerBlock       `json:"payer"`
	CreditCard      *creditCardBlock `json:"creditCard,omitempty"`
	Type            string           `json:"type"`
	PaymentMethod   string           `json:"paymentMethod"`
	DeviceSessionID string           `json:"deviceSessionId"`
	IPAddress       string           `json:"ipAddress"`
	UserAgent       string           `json:"userAgent"`
}

type orderBlock struct {
	AccountID        string                     `json:"accountId"`
	ReferenceCode    string                     `json:"referenceCode"`
	Description      string                     `json:"description"`
	Language         string                     `json:"language"`
	Signature        string                     `json:"signature"`
	AdditionalValues map[string]additionalValue `json:"additionalValues"`
	Buyer            buyerBlock                 `json:"buyer"`
	ShippingAddress  addressBlock               `json:"shippingAddress"`
}

// additionalValue renders the amount as text so the transmitted bytes are
// identical to the signed bytes.
type additionalValue struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type buyerBlock struct {
	FullName     string       `json:"fullName"`
	EmailAddress string       `json:"emailAddress"`
	ContactPhone string       `json:"contactPhone"`
	DNINumber    string       `json:"dniNumber"`
	Address      addressBlock `json:"shippingAddress"`
}

type payerBlock struct {
	FullName       string       `json:"fullName"`
	EmailAddress   string       `json:"emailAddress"`
	ContactPhone   string       `json:"contactPhone"`
	DNINumber      string       `json:"dniNumber"`
	BillingAddress addressBlock `json:"billingAddress"`
}

type addressBlock struct {
	Street1    string `json:"street1"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

type creditCardBlock struct {
	Number       string `json:"number"`
	SecurityCode string `json:"securityCode"`
	Expiration   string `json:"expirationDate"`
	Name         string `json:"name"`
}

type authorizationResponse struct {
	Code                string               `json:"code"`
	Error               string               `json:"error"`
	TransactionResponse *transactionResponse `json:"transactionResponse"`
}

type transactionResponse struct {
	OrderID         json.Number `json:"orderId"`
	TransactionID   string      `json:"transactionId"`
	State           string      `json:"state"`
	ResponseCode    string      `json:"responseCode"`
	ResponseMessage string      `json:"responseMessage"`
	NetworkError    string      `json:"paymentNetworkResponseErrorMessage"`
}

// Authorize submits an AUTHORIZATION_AND_CAPTURE request and normalizes
// the processor's answer. All failure modes become typed results: missing
// credentials fail fast without a network call, transport failures return
// ERROR with the cause in Diagnostic, and any response outside
// APPROVED/PENDING is a rejection.
func (c *Client) Authorize(ctx context.Context, order ports.CheckoutOrder) *ports.PaymentResult {
	if name := c.missingCredential(); name != "" {
		c.log.Error().Str("credential", name).Msg("processor call skipped, credential missing")
		return &ports.PaymentResult{
			State:           domain.PaymentStateError,
			ResponseCode:    "CONFIGURATION_ERROR",
			ResponseMessage: "Payment service is not configured",
			Diagnostic:      fmt.Sprintf("missing processor credential %s", name),
		}
	}

	if err := validateOrder(order); err != nil {
		return &ports.PaymentResult{
			State:           domain.PaymentStateError,
			ResponseCode:    "VALIDATION_ERROR",
			ResponseMessage: "Order is missing required fields",
			Diagnostic:      err.Error(),
		}
	}

	body, err := json.Marshal(c.buildRequest(order))
	if err != nil {
		return transportError(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return transportError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("reference", order.ReferenceCode).Msg("processor call failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transportError(fmt.Errorf("processor returned HTTP %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Errorf("read response: %w", err))
	}

	var parsed authorizationResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return transportError(fmt.Errorf("decode response: %w", err))
	}

	return c.interpret(&parsed)
}

// interpret maps the processor response onto the internal result model.
// APPROVED and PENDING are the only continue states.
func (c *Client) interpret(resp *authorizationResponse) *ports.PaymentResult {
	if resp.Code != responseCodeSuccess {
		msg := resp.Error
		if msg == "" {
			msg = "The processor rejected the request"
		}
		return &ports.PaymentResult{
			State:           domain.PaymentStateRejected,
			ResponseCode:    resp.Code,
			ResponseMessage: msg,
		}
	}

	tr := resp.TransactionResponse
	if tr == nil {
		return transportError(fmt.Errorf("success code without transactionResponse"))
	}

	result := &ports.PaymentResult{
		ProcessorTransactionID: tr.TransactionID,
		ResponseCode:           tr.ResponseCode,
		ResponseMessage:        tr.ResponseMessage,
		OrderID:                tr.OrderID.String(),
	}
	if result.ResponseMessage == "" {
		result.ResponseMessage = tr.NetworkError
	}

	switch tr.State {
	case stateApproved:
		result.State = domain.PaymentStateApproved
	case statePending:
		result.State = domain.PaymentStatePending
	default:
		result.State = domain.PaymentStateRejected
		if result.ResponseMessage == "" {
			result.ResponseMessage = fmt.Sprintf("Transaction %s", tr.State)
		}
	}
	return result
}

func (c *Client) buildRequest(order ports.CheckoutOrder) *authorizationRequest {
	ref := domain.SanitizeReference(order.ReferenceCode)
	signature := c.sigSvc.Sign(c.cfg.APIKey, c.cfg.MerchantID, ref, order.Amount, order.Currency)

	base, tax := taxSplit(order.Amount, c.cfg.TaxRate, order.Currency)

	tx := transactionBlock{
		Order: orderBlock{
			AccountID:     c.cfg.AccountID,
			ReferenceCode: ref,
			Description:   order.Description,
			Language:      "es",
			Signature:     signature,
			AdditionalValues: map[string]additionalValue{
				"TX_VALUE":           {Value: domain.FormatAmount(order.Amount, order.Currency), Currency: order.Currency},
				"TX_TAX":             {Value: domain.FormatAmount(tax, order.Currency), Currency: order.Currency},
				"TX_TAX_RETURN_BASE": {Value: domain.FormatAmount(base, order.Currency), Currency: order.Currency},
			},
			Buyer: buyerBlock{
				FullName:     order.Buyer.FullName,
				EmailAddress: order.Buyer.Email,
				ContactPhone: order.Buyer.Phone,
				DNINumber:    order.Buyer.DocumentNumber,
				Address:      toAddressBlock(order.Buyer.Address),
			},
			ShippingAddress: toAddressBlock(order.Buyer.Address),
		},
		Payer: payerBlock{
			FullName:       order.Buyer.FullName,
			EmailAddress:   order.Buyer.Email,
			ContactPhone:   order.Buyer.Phone,
			DNINumber:      order.Buyer.DocumentNumber,
			BillingAddress: toAddressBlock(order.Buyer.Address),
		},
		Type:            transactionTypeCapture,
		PaymentMethod:   schemeVisa,
		DeviceSessionID: deviceSessionID(),
		IPAddress:       order.ClientIP,
		UserAgent:       order.UserAgent,
	}

	if order.Card != nil {
		tx.PaymentMethod = paymentMethodForCard(order.Card.Number)
		tx.CreditCard = &creditCardBlock{
			Number:       order.Card.Number,
			SecurityCode: order.Card.SecurityCode,
			Expiration:   order.Card.Expiration,
			Name:         order.Card.HolderName,
		}
	}

	return &authorizationRequest{
		Language: "es",
		Command:  commandSubmitTransaction,
		Test:     c.cfg.Sandbox,
		Merchant: merchantBlock{
			APIKey:   c.cfg.APIKey,
			APILogin: c.cfg.APILogin,
		},
		Transaction: tx,
	}
}

func (c *Client) missingCredential() string {
	switch {
	case c.cfg.APIKey == "":
		return "api_key"
	case c.cfg.APILogin == "":
		return "api_login"
	case c.cfg.MerchantID == "":
		return "merchant_id"
	case c.cfg.AccountID == "":
		return "account_id"
	}
	return ""
}

func validateOrder(order ports.CheckoutOrder) error {
	switch {
	case domain.SanitizeReference(order.ReferenceCode) == "":
		return fmt.Errorf("reference code is empty after sanitization")
	case order.Amount <= 0:
		return fmt.Errorf("amount must be positive")
	case len(order.Currency) != 3:
		return fmt.Errorf("currency must be a 3-letter ISO code")
	case order.Buyer.FullName == "":
		return fmt.Errorf("buyer full name is required")
	case order.Buyer.Email == "":
		return fmt.Errorf("buyer email is required")
	case order.Card != nil && order.Card.Number == "":
		return fmt.Errorf("card number is required for the direct-card flow")
	}
	return nil
}

// taxSplit derives the pre-tax base from a tax-inclusive amount. The split
// feeds the processor's reporting fields only; it never changes the
// authorized amount.
func taxSplit(amount, rate float64, currency string) (base, tax float64) {
	base = roundForCurrency(amount/(1+rate), currency)
	tax = roundForCurrency(amount-base, currency)
	return base, tax
}

func roundForCurrency(v float64, currency string) float64 {
	if domain.IsZeroDecimal(currency) {
		return math.Round(v)
	}
	return math.Round(v*100) / 100
}

// deviceSessionID builds the per-attempt fraud-scoring fingerprint:
// a digest of the current timestamp plus random bytes. Unique, not secret.
func deviceSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	seed := strconv.FormatInt(time.Now().UnixNano(), 10) + hex.EncodeToString(buf)
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// paymentMethodForCard derives the scheme tag from the PAN's first digit.
func paymentMethodForCard(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return schemeVisa
	}
	switch number[0] {
	case '4':
		return schemeVisa
	case '5':
		return schemeMastercard
	case '3':
		return schemeAmex
	case '6':
		return schemeDiners
	default:
		return schemeVisa
	}
}

func toAddressBlock(a ports.Address) addressBlock {
	return addressBlock{
		Street1:    a.Street,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	}
}

func transportError(err error) *ports.PaymentResult {
	return &ports.PaymentResult{
		State:           domain.PaymentStateError,
		ResponseCode:    "TRANSPORT_ERROR",
		ResponseMessage: "Could not reach the payment processor",
		Diagnostic:      err.Error(),
	}
}
