package service

import (
	"context"
	"fmt"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"
)

const opsSubject = "ops"

// OpsAuthServiceImpl implements ports.OpsAuthService. A single operator
// credential is configured out of band as an Argon2id hash; there is no
// self-service account surface.
type OpsAuthServiceImpl struct {
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	auditSvc     ports.AuditService
	passwordHash string
}

// NewOpsAuthService creates a new OpsAuthServiceImpl.
func NewOpsAuthService(
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	auditSvc ports.AuditService,
	passwordHash string,
) *OpsAuthServiceImpl {
	return &OpsAuthServiceImpl{
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		auditSvc:     auditSvc,
		passwordHash: passwordHash,
	}
}

// Login validates the operator password and returns a JWT token.
func (s *OpsAuthServiceImpl) Login(ctx context.Context, password string) (string, time.Time, error) {
	if s.passwordHash == "" {
		// No hash configured means the dashboard is disabled, not open.
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, s.passwordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(opsSubject)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, &domain.AuditLog{
			Action:       domain.AuditActionOpsLogin,
			ResourceType: "ops",
			ResourceID:   opsSubject,
		})
	}

	return token, expiry, nil
}
