package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"musafir/internal/domain"
	"musafir/internal/middleware"
	"musafir/internal/pricing"
	"musafir/internal/service"
)

// PaymentHandler handles payment submissions and their admin review.
type PaymentHandler struct {
	paymentService *service.PaymentService
	uploadsDir     string
	maxUploadSize  int64
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, uploadsDir string, maxUploadSize int64) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		uploadsDir:     uploadsDir,
		maxUploadSize:  maxUploadSize,
	}
}

// Create handles POST /v1/payment/create-payment. The request is
// multipart: the transfer amount and type as form fields, the bank
// transfer screenshot as a file.
func (h *PaymentHandler) Create(c *gin.Context) {
	user := middleware.UserFromContext(c)

	registrationID := c.PostForm("registration_id")
	bankAccountID := c.PostForm("bank_account_id")
	paymentType := domain.PaymentType(strings.ToUpper(c.PostForm("payment_type")))
	amount := pricing.ParseAmount(c.PostForm("amount"))

	file, err := c.FormFile("screenshot")
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "screenshot is required"})
		return
	}
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		respondJSON(c, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "screenshot too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "screenshot must be an image"})
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadsDir, filename)); err != nil {
		respondJSON(c, http.StatusInternalServerError, ErrorResponse{Error: "failed to store screenshot"})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), service.CreatePaymentRequest{
		UserID:         user.ID,
		RegistrationID: registrationID,
		BankAccountID:  bankAccountID,
		Amount:         amount,
		PaymentType:    paymentType,
		Screenshot:     filename,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// GetByID handles GET /v1/payment/:id.
func (h *PaymentHandler) GetByID(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// Approve handles PATCH /v1/payment/approve-payment/:id.
func (h *PaymentHandler) Approve(c *gin.Context) {
	payment, err := h.paymentService.ApprovePayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// Reject handles PATCH /v1/payment/reject-payment/:id.
func (h *PaymentHandler) Reject(c *gin.Context) {
	payment, err := h.paymentService.RejectPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

type paymentResponse struct {
	ID             string               `json:"id"`
	RegistrationID string               `json:"registration_id"`
	BankAccountID  string               `json:"bank_account_id"`
	Amount         int64                `json:"amount"`
	PaymentType    domain.PaymentType   `json:"payment_type"`
	Screenshot     string               `json:"screenshot"`
	Status         domain.PaymentStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID,
		RegistrationID: p.RegistrationID,
		BankAccountID:  p.BankAccountID,
		Amount:         p.Amount,
		PaymentType:    p.PaymentType,
		Screenshot:     p.Screenshot,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}
