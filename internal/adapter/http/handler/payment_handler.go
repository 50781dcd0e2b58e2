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

// PaymentHandler handles checkout submission and status polling.
type PaymentHandler struct {
	checkoutSvc   ports.CheckoutService
	reconcilerSvc ports.ReconcilerService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(checkoutSvc ports.CheckoutService, reconcilerSvc ports.ReconcilerService) *PaymentHandler {
	return &PaymentHandler{checkoutSvc: checkoutSvc, reconcilerSvc: reconcilerSvc}
}

// Checkout handles POST /api/v1/payments/checkout.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a valid UUID"))
		return
	}

	result, err := h.checkoutSvc.Submit(c.Request.Context(), ports.CheckoutRequest{
		UserID:        userID,
		ReferenceCode: req.ReferenceCode,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		Buyer: ports.Buyer{
			FullName:       req.Buyer.FullName,
			Email:          req.Buyer.Email,
			Phone:          req.Buyer.Phone,
			DocumentNumber: req.Buyer.DocumentNumber,
			Address: ports.Address{
				Street:     req.Buyer.Address.Street,
				City:       req.Buyer.Address.City,
				State:      req.Buyer.Address.State,
				Country:    req.Buyer.Address.Country,
				PostalCode: req.Buyer.Address.PostalCode,
				Phone:      req.Buyer.Address.Phone,
			},
		},
		Card:      toCardDetails(req.Card),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(result.Transaction))
}

// Status handles GET /api/v1/payments/status.
func (h *PaymentHandler) Status(c *gin.Context) {
	refCode := c.Query("reference_code")
	txID := c.Query("transaction_id")
	if refCode == "" && txID == "" {
		response.Error(c, apperror.Validation("reference_code or transaction_id is required"))
		return
	}

	result, err := h.reconcilerSvc.PollStatus(c.Request.Context(), refCode, txID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.StatusResponse{Transaction: toTransactionResponse(result.Transaction)}
	if result.User != nil {
		resp.User = &dto.UserSummary{
			ID:          result.User.ID.String(),
			Email:       result.User.Email,
			DisplayName: result.User.DisplayName,
		}
	}
	response.OK(c, resp)
}

func toCardDetails(card *dto.CardBlock) *ports.CardDetails {
	if card == nil {
		return nil
	}
	return &ports.CardDetails{
		Number:         card.Number,
		SecurityCode:   card.SecurityCode,
		Expiration:     card.Expiration,
		HolderName:     card.HolderName,
		InstallmentNum: card.InstallmentNum,
	}
}

// toTransactionResponse converts domain.PaymentTransaction to DTO.
func toTransactionResponse(tx *domain.PaymentTransaction) dto.CheckoutResponse {
	return dto.CheckoutResponse{
		TransactionID:          tx.ID.String(),
		ReferenceCode:          tx.ReferenceCode,
		State:                  string(tx.State),
		Amount:                 tx.Amount,
		Currency:               tx.Currency,
		ProcessorTransactionID: tx.ProcessorTransactionID,
		ResponseCode:           tx.ResponseCode,
		ResponseMessage:        tx.ResponseMessage,
		CreatedAt:              tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
