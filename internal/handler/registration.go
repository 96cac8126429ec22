package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"musafir/internal/domain"
	"musafir/internal/middleware"
	"musafir/internal/service"
)

// RegistrationHandler handles registration drafts, submission, the
// traveller's passport views, and the jury decisions.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// SaveDraft handles PUT /v1/registration/draft.
func (h *RegistrationHandler) SaveDraft(c *gin.Context) {
	user := middleware.UserFromContext(c)

	var draft domain.RegistrationDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.registrationService.SaveDraft(c.Request.Context(), user.ID, &draft); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDraft handles GET /v1/registration/draft?flagshipId=.
func (h *RegistrationHandler) GetDraft(c *gin.Context) {
	user := middleware.UserFromContext(c)

	draft, err := h.registrationService.GetDraft(c.Request.Context(), user.ID, c.Query("flagshipId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"draft": draft})
}

// Submit handles POST /v1/registration.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	user := middleware.UserFromContext(c)

	var draft domain.RegistrationDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.registrationService.Submit(c.Request.Context(), user.ID, &draft)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, toRegistrationResponse(reg))
}

// GetByID handles GET /v1/registration/:id.
func (h *RegistrationHandler) GetByID(c *gin.Context) {
	user := middleware.UserFromContext(c)

	reg, err := h.registrationService.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRegistrationResponse(reg))
}

// PastPassport handles GET /v1/registration/pastPassport.
func (h *RegistrationHandler) PastPassport(c *gin.Context) {
	user := middleware.UserFromContext(c)

	regs, err := h.registrationService.PastPassport(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"registrations": toRegistrationResponses(regs)})
}

// UpcomingPassport handles GET /v1/registration/upcomingPassport.
func (h *RegistrationHandler) UpcomingPassport(c *gin.Context) {
	user := middleware.UserFromContext(c)

	regs, err := h.registrationService.UpcomingPassport(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"registrations": toRegistrationResponses(regs)})
}

type reEvaluationRequest struct {
	RegistrationID string `json:"registration_id" binding:"required"`
}

// RequestReEvaluation handles POST /v1/registration/reEvaluateRequestToJury.
func (h *RegistrationHandler) RequestReEvaluation(c *gin.Context) {
	user := middleware.UserFromContext(c)

	var req reEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.registrationService.RequestReEvaluation(c.Request.Context(), user.ID, req.RegistrationID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRegistrationResponse(reg))
}

// Approve handles PATCH /v1/registration/approve/:id.
func (h *RegistrationHandler) Approve(c *gin.Context) {
	reg, err := h.registrationService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRegistrationResponse(reg))
}

// Reject handles PATCH /v1/registration/reject/:id.
func (h *RegistrationHandler) Reject(c *gin.Context) {
	reg, err := h.registrationService.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRegistrationResponse(reg))
}

// ListByFlagship handles GET /v1/registration/flagship/:flagshipId.
func (h *RegistrationHandler) ListByFlagship(c *gin.Context) {
	regs, err := h.registrationService.ListByFlagship(c.Request.Context(), c.Param("flagshipId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"registrations": toRegistrationResponses(regs)})
}

type registrationResponse struct {
	ID                    string                    `json:"id"`
	UserID                string                    `json:"user_id"`
	FlagshipID            string                    `json:"flagship_id"`
	City                  string                    `json:"city"`
	Gender                domain.Gender             `json:"gender"`
	Tier                  string                    `json:"tier,omitempty"`
	RoomSharing           string                    `json:"room_sharing,omitempty"`
	SleepPreference       domain.SleepPreference    `json:"sleep_preference,omitempty"`
	MattressTier          string                    `json:"mattress_tier,omitempty"`
	TripType              domain.TripType           `json:"trip_type"`
	Companions            []string                  `json:"companions,omitempty"`
	Expectations          string                    `json:"expectations,omitempty"`
	Price                 int64                     `json:"price"`
	DueAmount             int64                     `json:"due_amount"`
	Status                domain.RegistrationStatus `json:"status"`
	ReEvaluationRequested bool                      `json:"re_evaluation_requested"`
	CreatedAt             time.Time                 `json:"created_at"`
}

func toRegistrationResponse(reg *domain.Registration) registrationResponse {
	return registrationResponse{
		ID:                    reg.ID,
		UserID:                reg.UserID,
		FlagshipID:            reg.FlagshipID,
		City:                  reg.City,
		Gender:                reg.Gender,
		Tier:                  reg.Tier,
		RoomSharing:           reg.RoomSharing,
		SleepPreference:       reg.SleepPreference,
		MattressTier:          reg.MattressTier,
		TripType:              reg.TripType,
		Companions:            reg.Companions,
		Expectations:          reg.Expectations,
		Price:                 reg.Price,
		DueAmount:             reg.DueAmount,
		Status:                reg.Status,
		ReEvaluationRequested: reg.ReEvaluationRequested,
		CreatedAt:             reg.CreatedAt,
	}
}

func toRegistrationResponses(regs []*domain.Registration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, toRegistrationResponse(reg))
	}
	return out
}
