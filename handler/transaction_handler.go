package handler

import (
	"encoding/json"
	"net/http"

	"account-ledger/model"

	"go.uber.org/zap"
)

// TransactionHandler holds dependencies for deposit and withdrawal handlers.
type TransactionHandler struct {
	svc    AccountService
	logger *zap.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc AccountService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, logger: logger}
}

// DepositHandler records a credit on the caller's account.
//
// Method: POST
// Path: /deposit
// Success: 201 Created
// Error: 400 Bad Request (invalid JSON or non-positive amount)
// Error: 404 Not Found
func (h *TransactionHandler) DepositHandler(w http.ResponseWriter, r *http.Request) {
	var req model.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if _, err := h.svc.Deposit(TaxIDFromContext(r.Context()), req.Amount, req.Description); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// WithdrawHandler records a debit on the caller's account if the balance covers it.
//
// Method: POST
// Path: /withdraw
// Success: 201 Created
// Error: 400 Bad Request (invalid JSON or non-positive amount)
// Error: 404 Not Found
// Error: 422 Unprocessable Entity (insufficient funds)
func (h *TransactionHandler) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req model.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if _, err := h.svc.Withdraw(TaxIDFromContext(r.Context()), req.Amount); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
