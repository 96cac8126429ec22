package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"musafir/internal/domain"
	"musafir/internal/middleware"
	"musafir/internal/service"
)

// RefundHandler handles refund requests and their admin resolution.
type RefundHandler struct {
	refundService *service.RefundService
}

// NewRefundHandler creates a new RefundHandler.
func NewRefundHandler(refundService *service.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService}
}

type createRefundRequest struct {
	RegistrationID string `json:"registration_id" binding:"required"`
	BankDetails    string `json:"bank_details" binding:"required"`
	Reason         string `json:"reason"`
	Feedback       string `json:"feedback"`
	Rating         int    `json:"rating"`
}

// Create handles POST /v1/payment/refund.
func (h *RefundHandler) Create(c *gin.Context) {
	user := middleware.UserFromContext(c)

	var req createRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	refund, err := h.refundService.CreateRefund(c.Request.Context(), service.CreateRefundRequest{
		UserID:         user.ID,
		RegistrationID: req.RegistrationID,
		BankDetails:    req.BankDetails,
		Reason:         req.Reason,
		Feedback:       req.Feedback,
		Rating:         req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRefundResponse(refund))
}

// GetByID handles GET /v1/payment/refund/:id.
func (h *RefundHandler) GetByID(c *gin.Context) {
	refund, err := h.refundService.GetRefund(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRefundResponse(refund))
}

// Approve handles PATCH /v1/payment/approve-refund/:id.
func (h *RefundHandler) Approve(c *gin.Context) {
	refund, err := h.refundService.ApproveRefund(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRefundResponse(refund))
}

// Reject handles PATCH /v1/payment/reject-refund/:id.
func (h *RefundHandler) Reject(c *gin.Context) {
	refund, err := h.refundService.RejectRefund(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRefundResponse(refund))
}

type refundResponse struct {
	ID             string              `json:"id"`
	RegistrationID string              `json:"registration_id"`
	BankDetails    string              `json:"bank_details"`
	Reason         string              `json:"reason,omitempty"`
	Feedback       string              `json:"feedback,omitempty"`
	Rating         int                 `json:"rating"`
	Status         domain.RefundStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
}

func toRefundResponse(r *domain.Refund) refundResponse {
	return refundResponse{
		ID:             r.ID,
		RegistrationID: r.RegistrationID,
		BankDetails:    r.BankDetails,
		Reason:         r.Reason,
		Feedback:       r.Feedback,
		Rating:         r.Rating,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
}
