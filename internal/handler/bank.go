package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// BankHandler lists the settlement accounts travellers transfer to.
type BankHandler struct {
	bankRepo repository.BankAccountRepository
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankRepo repository.BankAccountRepository) *BankHandler {
	return &BankHandler{bankRepo: bankRepo}
}

type bankAccountResponse struct {
	ID            string `json:"id"`
	BankName      string `json:"bank_name"`
	AccountTitle  string `json:"account_title"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban,omitempty"`
}

// List handles GET /v1/bank.
func (h *BankHandler) List(c *gin.Context) {
	accounts, err := h.bankRepo.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]bankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toBankAccountResponse(a))
	}
	respondJSON(c, http.StatusOK, gin.H{"accounts": out})
}

func toBankAccountResponse(a *domain.BankAccount) bankAccountResponse {
	return bankAccountResponse{
		ID:            a.ID,
		BankName:      a.BankName,
		AccountTitle:  a.AccountTitle,
		AccountNumber: a.AccountNumber,
		IBAN:          a.IBAN,
	}
}
