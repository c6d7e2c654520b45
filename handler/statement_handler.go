package handler

import (
	"net/http"

	"account-ledger/ledger"
	"account-ledger/model"

	"go.uber.org/zap"
)

// StatementHandler serves the read-only views derived from a statement.
type StatementHandler struct {
	svc    AccountService
	logger *zap.Logger
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(svc AccountService, logger *zap.Logger) *StatementHandler {
	return &StatementHandler{svc: svc, logger: logger}
}

// GetStatementHandler returns every entry in creation order.
//
// Method: GET
// Path: /statement
func (h *StatementHandler) GetStatementHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.GetStatement(TaxIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetStatementByDateHandler returns the entries created on ?date=YYYY-MM-DD.
//
// Method: GET
// Path: /statement/date
// Error: 400 Bad Request (missing or malformed date)
func (h *StatementHandler) GetStatementByDateHandler(w http.ResponseWriter, r *http.Request) {
	date, err := ledger.ParseDate(r.URL.Query().Get("date"), h.svc.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	}

	entries, err := h.svc.GetStatementByDate(TaxIDFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetBalanceHandler returns credits minus debits.
//
// Method: GET
// Path: /balance
func (h *StatementHandler) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.GetBalance(TaxIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BalanceResponse{Balance: balance})
}
