package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"account-ledger/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountService is the set of ledger operations the HTTP layer invokes.
type AccountService interface {
	CreateAccount(taxID, name string) (*model.Account, error)
	Exists(taxID string) bool
	GetAccount(taxID string) (*model.Account, error)
	RenameAccount(taxID, name string) (*model.Account, error)
	DeleteAccount(taxID string) error
	Deposit(taxID string, amount decimal.Decimal, description string) (model.Entry, error)
	Withdraw(taxID string, amount decimal.Decimal) (model.Entry, error)
	GetStatement(taxID string) ([]model.Entry, error)
	GetStatementByDate(taxID string, date time.Time) ([]model.Entry, error)
	GetBalance(taxID string) (decimal.Decimal, error)
	Location() *time.Location
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	svc    AccountService
	logger *zap.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, logger: logger}
}

// CreateAccountHandler opens a new account.
// It expects a JSON body with "cpf" (or "tax_id") and "name".
//
// Method: POST
// Path: /account
// Success: 201 Created
// Error: 400 Bad Request (invalid JSON or missing tax id)
// Error: 409 Conflict (tax id already in use)
func (h *AccountHandler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	taxID := strings.TrimSpace(req.Key())
	if taxID == "" {
		writeError(w, http.StatusBadRequest, "Tax id is required")
		return
	}

	acc, err := h.svc.CreateAccount(taxID, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// UpdateAccountHandler renames the caller's account.
//
// Method: PUT
// Path: /account
// Success: 200 OK
// Error: 400 Bad Request (invalid JSON)
// Error: 404 Not Found
func (h *AccountHandler) UpdateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	acc, err := h.svc.RenameAccount(TaxIDFromContext(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// GetAccountHandler returns the caller's account with its statement.
//
// Method: GET
// Path: /account
// Success: 200 OK
// Error: 404 Not Found
func (h *AccountHandler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.GetAccount(TaxIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// DeleteAccountHandler removes the caller's account and its statement.
//
// Method: DELETE
// Path: /account
// Success: 204 No Content
// Error: 404 Not Found
func (h *AccountHandler) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(TaxIDFromContext(r.Context())); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
