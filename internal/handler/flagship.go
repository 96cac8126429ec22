package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"musafir/internal/domain"
	"musafir/internal/middleware"
	"musafir/internal/pricing"
	"musafir/internal/repository"
	"musafir/internal/service"
	"musafir/internal/wizard"
)

// FlagshipHandler handles flagship wizard and catalogue requests.
type FlagshipHandler struct {
	flagshipService *service.FlagshipService
	statsService    *service.StatsService
}

// NewFlagshipHandler creates a new FlagshipHandler.
func NewFlagshipHandler(flagshipService *service.FlagshipService, statsService *service.StatsService) *FlagshipHandler {
	return &FlagshipHandler{flagshipService: flagshipService, statsService: statsService}
}

// amount is a rupee value that the web client may send as a JSON
// number or a formatted string ("12,000"). Unparseable input reads
// as zero, matching the calculator's behaviour.
type amount int64

func (a *amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = amount(pricing.ParseAmount(s))
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	*a = amount(n)
	return nil
}

type createFlagshipRequest struct {
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Category    string    `json:"category"`
	Visibility  string    `json:"visibility"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Create handles POST /v1/flagship, the Basics step.
func (h *FlagshipHandler) Create(c *gin.Context) {
	var req createFlagshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	visibility := domain.Visibility(req.Visibility)
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	admin := middleware.UserFromContext(c)
	adminID := ""
	if admin != nil {
		adminID = admin.ID
	}

	f, err := h.flagshipService.CreateDraft(c.Request.Context(), service.CreateFlagshipRequest{
		AdminID:     adminID,
		Name:        req.Name,
		Destination: req.Destination,
		Category:    req.Category,
		Visibility:  visibility,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toFlagshipResponse(f))
}

type locationInput struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Price   amount `json:"price"`
}

type optionInput struct {
	Name  string `json:"name"`
	Price amount `json:"price"`
}

type discountInput struct {
	Enabled bool   `json:"enabled"`
	Amount  amount `json:"amount"`
	Count   int    `json:"count"`
}

type discountsInput struct {
	EarlyBird discountInput `json:"early_bird"`
	Group     discountInput `json:"group"`
	Student   discountInput `json:"student"`
	Referral  discountInput `json:"referral"`
}

type datesInput struct {
	RegistrationDeadline   time.Time `json:"registration_deadline"`
	AdvancePaymentDeadline time.Time `json:"advance_payment_deadline"`
	EarlyBirdDeadline      time.Time `json:"early_bird_deadline"`
}

type updateStepRequest struct {
	Step string `json:"step" binding:"required"`

	Name        *string    `json:"name"`
	Destination *string    `json:"destination"`
	Category    *string    `json:"category"`
	Visibility  *string    `json:"visibility"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`

	Description *string `json:"description"`

	BasePrice     *amount         `json:"base_price"`
	Locations     []locationInput `json:"locations"`
	Tiers         []optionInput   `json:"tiers"`
	MattressTiers []optionInput   `json:"mattress_tiers"`
	RoomSharing   []optionInput   `json:"room_sharing"`

	Seats         *domain.SeatAllocation `json:"seats"`
	FemalePercent *float64               `json:"female_percent"`
	BedPercent    *float64               `json:"bed_percent"`

	Dates     *datesInput     `json:"dates"`
	Discounts *discountsInput `json:"discounts"`

	BankAccountID *string `json:"bank_account_id"`
	Publish       *bool   `json:"publish"`
}

// UpdateStep handles PUT /v1/flagship/:id, one wizard step submission.
func (h *FlagshipHandler) UpdateStep(c *gin.Context) {
	var req updateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	step, err := wizard.ParseStep(req.Step)
	if err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	update := service.StepUpdate{
		Step:          step,
		Name:          req.Name,
		Destination:   req.Destination,
		Category:      req.Category,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Description:   req.Description,
		Seats:         req.Seats,
		FemalePercent: req.FemalePercent,
		BedPercent:    req.BedPercent,
		BankAccountID: req.BankAccountID,
		Publish:       req.Publish,
	}
	if req.Visibility != nil {
		v := domain.Visibility(*req.Visibility)
		update.Visibility = &v
	}
	if req.BasePrice != nil {
		p := int64(*req.BasePrice)
		update.BasePrice = &p
	}
	for _, l := range req.Locations {
		update.Locations = append(update.Locations, domain.Location{
			Name:    l.Name,
			Enabled: l.Enabled,
			Price:   int64(l.Price),
		})
	}
	for _, t := range req.Tiers {
		update.Tiers = append(update.Tiers, domain.Tier{Name: t.Name, Price: int64(t.Price)})
	}
	for _, m := range req.MattressTiers {
		update.MattressTiers = append(update.MattressTiers, domain.MattressTier{Name: m.Name, Price: int64(m.Price)})
	}
	for _, r := range req.RoomSharing {
		update.RoomSharing = append(update.RoomSharing, domain.RoomSharingOption{Name: r.Name, Price: int64(r.Price)})
	}
	if req.Dates != nil {
		update.Dates = &domain.ImportantDates{
			RegistrationDeadline:   req.Dates.RegistrationDeadline,
			AdvancePaymentDeadline: req.Dates.AdvancePaymentDeadline,
			EarlyBirdDeadline:      req.Dates.EarlyBirdDeadline,
		}
	}
	if req.Discounts != nil {
		update.Discounts = &domain.DiscountConfig{
			EarlyBird: toDiscount(req.Discounts.EarlyBird),
			Group:     toDiscount(req.Discounts.Group),
			Student:   toDiscount(req.Discounts.Student),
			Referral:  toDiscount(req.Discounts.Referral),
		}
	}

	admin := middleware.UserFromContext(c)
	adminID := ""
	if admin != nil {
		adminID = admin.ID
	}

	f, err := h.flagshipService.UpsertStep(c.Request.Context(), adminID, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFlagshipResponse(f))
}

func toDiscount(d discountInput) domain.Discount {
	return domain.Discount{Enabled: d.Enabled, Amount: int64(d.Amount), Count: d.Count}
}

// GetByID handles GET /v1/flagship/getByID/:id.
func (h *FlagshipHandler) GetByID(c *gin.Context) {
	f, err := h.flagshipService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toFlagshipResponse(f))
}

// List handles GET /v1/flagship.
func (h *FlagshipHandler) List(c *gin.Context) {
	filter := repository.FlagshipFilter{
		Status:     domain.FlagshipStatus(c.Query("status")),
		Category:   c.Query("category"),
		Visibility: domain.Visibility(c.Query("visibility")),
	}

	flagships, err := h.flagshipService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]flagshipResponse, 0, len(flagships))
	for _, f := range flagships {
		out = append(out, toFlagshipResponse(f))
	}
	respondJSON(c, http.StatusOK, gin.H{"flagships": out})
}

// Stats handles GET /v1/flagship/:id/stats.
func (h *FlagshipHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.GetFlagshipStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, stats)
}

// ActiveDraft handles GET /v1/flagship/draft, resuming a wizard session.
func (h *FlagshipHandler) ActiveDraft(c *gin.Context) {
	admin := middleware.UserFromContext(c)
	if admin == nil {
		respondJSON(c, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	f, err := h.flagshipService.ActiveDraft(c.Request.Context(), admin.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if f == nil {
		respondJSON(c, http.StatusOK, gin.H{"flagship": nil})
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"flagship": toFlagshipResponse(f)})
}

// AbandonDraft handles DELETE /v1/flagship/draft.
func (h *FlagshipHandler) AbandonDraft(c *gin.Context) {
	admin := middleware.UserFromContext(c)
	if admin == nil {
		respondJSON(c, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	if err := h.flagshipService.Abandon(c.Request.Context(), admin.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type flagshipResponse struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Destination   string                     `json:"destination"`
	Category      string                     `json:"category"`
	Visibility    domain.Visibility          `json:"visibility"`
	Status        domain.FlagshipStatus      `json:"status"`
	Description   string                     `json:"description,omitempty"`
	StartDate     time.Time                  `json:"start_date"`
	EndDate       time.Time                  `json:"end_date"`
	BasePrice     int64                      `json:"base_price"`
	Locations     []domain.Location          `json:"locations,omitempty"`
	Tiers         []domain.Tier              `json:"tiers,omitempty"`
	MattressTiers []domain.MattressTier      `json:"mattress_tiers,omitempty"`
	RoomSharing   []domain.RoomSharingOption `json:"room_sharing,omitempty"`
	Seats         domain.SeatAllocation      `json:"seats"`
	Dates         domain.ImportantDates      `json:"dates"`
	Discounts     domain.DiscountConfig      `json:"discounts"`
	BankAccountID string                     `json:"bank_account_id,omitempty"`
	Published     bool                       `json:"published"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

func toFlagshipResponse(f *domain.Flagship) flagshipResponse {
	return flagshipResponse{
		ID:            f.ID,
		Name:          f.Name,
		Destination:   f.Destination,
		Category:      f.Category,
		Visibility:    f.Visibility,
		Status:        f.Status,
		Description:   f.Description,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		BasePrice:     f.BasePrice,
		Locations:     f.Locations,
		Tiers:         f.Tiers,
		MattressTiers: f.MattressTiers,
		RoomSharing:   f.RoomSharing,
		Seats:         f.Seats,
		Dates:         f.Dates,
		Discounts:     f.Discounts,
		BankAccountID: f.BankAccountID,
		Published:     f.Published,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
