package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	usernameSuffixDigits = 4
	passwordBytes        = 18
	placeholderLastName  = "Student"
)

// ProvisionServiceImpl implements ports.ProvisionService. Enqueue hands a
// profile to a background worker; the synchronous methods are exposed for
// the worker itself and for operator-triggered retries.
type ProvisionServiceImpl struct {
	lms         ports.LMSClient
	userRepo    ports.UserRepository
	auditSvc    ports.AuditService
	categoryID  int64
	enrolRoleID int64
	maxAttempts int
	backoff     time.Duration
	queue       chan domain.LearnerProfile
	wg          sync.WaitGroup
	log         zerolog.Logger
}

// NewProvisionService creates a new ProvisionServiceImpl.
func NewProvisionService(
	lms ports.LMSClient,
	userRepo ports.UserRepository,
	auditSvc ports.AuditService,
	categoryID int64,
	enrolRoleID int64,
	maxAttempts int,
	backoff time.Duration,
	queueSize int,
	log zerolog.Logger,
) *ProvisionServiceImpl {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &ProvisionServiceImpl{
		lms:         lms,
		userRepo:    userRepo,
		auditSvc:    auditSvc,
		categoryID:  categoryID,
		enrolRoleID: enrolRoleID,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		queue:       make(chan domain.LearnerProfile, queueSize),
		log:         log,
	}
}

// Start launches the background worker. It drains the queue until ctx is
// cancelled, then finishes the in-flight profile and returns.
func (s *ProvisionServiceImpl) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case profile := <-s.queue:
				result := s.ProvisionWithRetry(ctx, profile, s.maxAttempts, s.backoff)
				s.recordOutcome(ctx, profile, result)
			}
		}
	}()
}

// Wait blocks until the worker has stopped. Call after cancelling the
// context passed to Start.
func (s *ProvisionServiceImpl) Wait() {
	s.wg.Wait()
}

// Enqueue schedules a profile for background provisioning. It never
// blocks: a full queue is an explicit error the caller can surface.
func (s *ProvisionServiceImpl) Enqueue(profile domain.LearnerProfile) error {
	select {
	case s.queue <- profile:
		s.log.Info().Str("user_id", profile.UserID.String()).Msg("provisioning queued")
		return nil
	default:
		return apperror.ErrProvisioningQueueFull()
	}
}

// ProvisionWithRetry runs the full provisioning flow with bounded retry.
// Every attempt generates a fresh username: a prior partial failure may
// have claimed the previous one on the LMS side. Exhaustion is a soft
// failure, the payment itself is unaffected.
func (s *ProvisionServiceImpl) ProvisionWithRetry(ctx context.Context, profile domain.LearnerProfile, maxAttempts int, backoff time.Duration) *domain.ProvisionResult {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				return s.exhausted(profile, attempt-1, lastErr)
			case <-time.After(backoff):
			}
		}

		acct, err := s.CreateAccount(ctx, profile)
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).
				Str("user_id", profile.UserID.String()).
				Int("attempt", attempt).
				Msg("account creation failed")
			continue
		}

		courses, err := s.ListCategoryCourses(ctx, s.categoryID)
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).
				Str("user_id", profile.UserID.String()).
				Int("attempt", attempt).
				Msg("course catalog listing failed")
			continue
		}

		report := s.EnrollInCourses(ctx, acct.AccountID, courses)
		if !report.Success() {
			lastErr = fmt.Errorf("all %d enrollments failed", report.Failed())
			s.log.Warn().
				Str("user_id", profile.UserID.String()).
				Int("attempt", attempt).
				Int("failed", report.Failed()).
				Msg("enrollment round failed entirely")
			continue
		}

		s.persistUsername(ctx, profile.UserID, acct.Username)

		s.log.Info().
			Str("user_id", profile.UserID.String()).
			Str("username", acct.Username).
			Int64("account_id", acct.AccountID).
			Int("enrolled", report.Succeeded()).
			Int("attempt", attempt).
			Msg("learner provisioned")

		return &domain.ProvisionResult{
			State:            domain.ProvisionStateProvisioned,
			ExternalUsername: acct.Username,
			AccountID:        acct.AccountID,
			Attempts:         attempt,
			CompletedAt:      time.Now().UTC(),
		}
	}

	return s.exhausted(profile, maxAttempts, lastErr)
}

// CreateAccount creates a fresh LMS account for the profile.
func (s *ProvisionServiceImpl) CreateAccount(ctx context.Context, profile domain.LearnerProfile) (*ports.AccountResult, error) {
	first, last := splitDisplayName(profile.DisplayName)
	username, err := generateUsername(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("generate username: %w", err)
	}
	password, err := generatePassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}

	locale := profile.Locale
	if locale == "" {
		locale = "en"
	}

	accountID, err := s.lms.CreateUser(ctx, ports.NewLMSAccount{
		Username:  username,
		Password:  password,
		FirstName: first,
		LastName:  last,
		Email:     profile.Email,
		Locale:    locale,
	})
	if err != nil {
		return nil, err
	}
	return &ports.AccountResult{AccountID: accountID, Username: username}, nil
}

// ListCategoryCourses returns the default enrollment catalog.
func (s *ProvisionServiceImpl) ListCategoryCourses(ctx context.Context, categoryID int64) ([]domain.Course, error) {
	return s.lms.CategoryCourses(ctx, categoryID)
}

// EnrollInCourses enrolls an account in every catalog course, collecting
// per-course outcomes. One broken course never aborts the round.
func (s *ProvisionServiceImpl) EnrollInCourses(ctx context.Context, accountID int64, courses []domain.Course) *domain.EnrollmentReport {
	report := &domain.EnrollmentReport{AccountID: accountID}
	for _, c := range courses {
		entry := domain.CourseEnrollment{CourseID: c.ID, CourseName: c.FullName}
		if err := s.lms.EnrolUser(ctx, s.enrolRoleID, accountID, c.ID); err != nil {
			entry.Error = err.Error()
			s.log.Warn().Err(err).
				Int64("account_id", accountID).
				Int64("course_id", c.ID).
				Msg("enrollment failed")
		}
		report.Results = append(report.Results, entry)
	}
	return report
}

// persistUsername writes the external username back to the platform row.
// A write failure is logged but never fails provisioning: the LMS account
// exists and the learner can use it either way.
func (s *ProvisionServiceImpl) persistUsername(ctx context.Context, userID uuid.UUID, username string) {
	if err := s.userRepo.UpdateExternalUsername(ctx, userID, username); err != nil {
		s.log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("username", username).
			Msg("external username persistence failed")
	}
}

func (s *ProvisionServiceImpl) exhausted(profile domain.LearnerProfile, attempts int, lastErr error) *domain.ProvisionResult {
	s.log.Error().Err(lastErr).
		Str("user_id", profile.UserID.String()).
		Int("attempts", attempts).
		Msg("provisioning exhausted")
	res := &domain.ProvisionResult{
		State:       domain.ProvisionStateExhausted,
		Attempts:    attempts,
		CompletedAt: time.Now().UTC(),
	}
	if lastErr != nil {
		res.LastError = lastErr.Error()
	}
	return res
}

func (s *ProvisionServiceImpl) recordOutcome(ctx context.Context, profile domain.LearnerProfile, result *domain.ProvisionResult) {
	if s.auditSvc == nil {
		return
	}
	details, _ := json.Marshal(result)
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionProvisionFinished,
		ResourceType: "user",
		ResourceID:   profile.UserID.String(),
		Details:      string(details),
	})
}

// splitDisplayName maps a free-form display name onto the first/last
// fields the LMS requires. Both fields are mandatory there, so a
// single-word name gets a placeholder last name.
func splitDisplayName(displayName string) (first, last string) {
	parts := strings.Fields(displayName)
	switch len(parts) {
	case 0:
		return placeholderLastName, placeholderLastName
	case 1:
		return parts[0], placeholderLastName
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// generateUsername derives a login from the email local part plus a
// random numeric suffix. The suffix keeps repeat attempts from colliding
// with a half-created account.
func generateUsername(email string) (string, error) {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = "learner"
	}

	suffix := make([]byte, 0, usernameSuffixDigits)
	for i := 0; i < usernameSuffixDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		suffix = append(suffix, byte('0'+n.Int64()))
	}
	return base + string(suffix), nil
}

// generatePassword builds a random initial password satisfying the usual
// LMS complexity policy. The learner resets it on first login.
func generatePassword() (string, error) {
	const alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var b strings.Builder
	for i := 0; i < passwordBytes; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	// Guarantee one of each required class.
	return b.String() + "aZ9!", nil
}
