package handler

import (
	"errors"
	"net/http"

	"edupay-service/internal/adapter/http/dto"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"
	"edupay-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler receives the processor's form-encoded confirmation posts.
type WebhookHandler struct {
	reconcilerSvc ports.ReconcilerService
	log           zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconcilerSvc ports.ReconcilerService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{reconcilerSvc: reconcilerSvc, log: log}
}

// Confirmation handles POST /api/v1/payments/confirmation.
//
// Status codes are the retry contract with the processor: 400 tells it the
// post is unauthentic and retrying is pointless, 5xx asks it to redeliver,
// and 200 acknowledges everything else (including unknown references, which
// a redelivery cannot fix).
func (h *WebhookHandler) Confirmation(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.Error(c, apperror.ErrMalformedNotification())
		return
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	result, err := h.reconcilerSvc.ApplyWebhook(c.Request.Context(), fields, c.ClientIP())
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusNotFound {
			// Unknown transaction: acknowledge so the processor stops
			// redelivering a post we can never apply.
			h.log.Warn().Str("client_ip", c.ClientIP()).Msg("confirmation for unknown transaction acknowledged")
			response.OK(c, dto.WebhookAck{Applied: false})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WebhookAck{
		ReferenceCode: result.ReferenceCode,
		State:         string(result.State),
		Applied:       result.Changed,
	})
}
