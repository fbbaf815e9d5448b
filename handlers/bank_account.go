package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/services"
)

// BankAccountHandler, eğitmen ödeme hesabı endpoint'leri.
// Hesap numarası yanıtlarda sadece maskeli görünür.
type BankAccountHandler struct {
	bankAccountService services.BankAccountService
}

func NewBankAccountHandler(bankAccountService services.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{bankAccountService: bankAccountService}
}

// List godoc
// GET /api/instructor/bank-accounts
func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	accounts, err := h.bankAccountService.List(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, accounts)
}

// Create godoc
// POST /api/instructor/bank-accounts
func (h *BankAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req models.CreateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.bankAccountService.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, account)
}
