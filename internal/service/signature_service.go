package service

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"edupay-service/internal/core/domain"
)

// The processor joins signature fields with a tilde. The field order and
// the amount rendering must match the counter-party byte for byte.
const signatureDelimiter = "~"

// DigestSignatureService implements ports.SignatureService using the
// processor's MD5-over-delimited-string scheme.
type DigestSignatureService struct{}

// NewDigestSignatureService creates a new signature service.
func NewDigestSignatureService() *DigestSignatureService {
	return &DigestSignatureService{}
}

// Sign computes the digest over key~merchantId~referenceCode~amount~currency.
// The reference code is sanitized and the amount rendered per the
// currency's rounding rule before signing.
func (s *DigestSignatureService) Sign(key, merchantID, referenceCode string, amount float64, currency string) string {
	return digest(buildSignedString(key, merchantID, referenceCode, amount, currency, ""))
}

// SignState appends the processor state code to the signed string. Used by
// sale-state webhook payloads.
func (s *DigestSignatureService) SignState(key, merchantID, referenceCode string, amount float64, currency, stateCode string) string {
	return digest(buildSignedString(key, merchantID, referenceCode, amount, currency, stateCode))
}

// Verify recomputes the digest for a decoded notification and compares it
// to the supplied signature. A malformed amount fails verification; it
// never escapes as an error, so the webhook handler can answer generically
// to any malformed payload.
func (s *DigestSignatureService) Verify(n *domain.ProcessorNotification, key string) bool {
	if n == nil || n.Signature == "" {
		return false
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(n.RawAmount), 64)
	if err != nil {
		return false
	}

	var expected string
	switch n.Kind {
	case domain.NotificationSaleState:
		expected = s.SignState(key, n.MerchantID, n.ReferenceCode, amount, n.Currency, n.StateCode)
	case domain.NotificationTxConfirmation:
		expected = s.Sign(key, n.MerchantID, n.ReferenceCode, amount, n.Currency)
	default:
		return false
	}

	// Comparison on attacker-observable data; constant-time as a hardening
	// default. Hex case is normalized first, some processor environments
	// send uppercase digests.
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(n.Signature)))
}

func buildSignedString(key, merchantID, referenceCode string, amount float64, currency, stateCode string) string {
	parts := []string{
		key,
		merchantID,
		domain.SanitizeReference(referenceCode),
		domain.FormatAmount(amount, currency),
		currency,
	}
	if stateCode != "" {
		parts = append(parts, stateCode)
	}
	return strings.Join(parts, signatureDelimiter)
}

func digest(payload string) string {
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
