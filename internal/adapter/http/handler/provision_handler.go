package handler

import (
	"edupay-service/internal/adapter/http/dto"
	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"
	"edupay-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProvisionHandler queues LMS account provisioning jobs.
type ProvisionHandler struct {
	provisionSvc ports.ProvisionService
	userRepo     ports.UserRepository
}

// NewProvisionHandler creates a new ProvisionHandler.
func NewProvisionHandler(provisionSvc ports.ProvisionService, userRepo ports.UserRepository) *ProvisionHandler {
	return &ProvisionHandler{provisionSvc: provisionSvc, userRepo: userRepo}
}

// Enqueue handles POST /api/v1/provisioning and the operator retry at
// POST /api/v1/ops/provisioning/retry. Both answer 202: the worker owns
// the retry loop and the caller never blocks on the LMS.
func (h *ProvisionHandler) Enqueue(c *gin.Context) {
	var req dto.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a valid UUID"))
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, apperror.ErrNotFound("user"))
		return
	}

	if err := h.provisionSvc.Enqueue(domain.LearnerProfile{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Locale:      user.Locale,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, dto.ProvisionQueuedResponse{UserID: user.ID.String(), Queued: true})
}
