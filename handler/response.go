package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"account-ledger/model"
	"account-ledger/service"

	"go.uber.org/zap"
)

// Error messages returned to clients.
const (
	msgTaxIDRequired     = "Tax id header is required"
	msgAccountNotFound   = "Customer not found"
	msgDuplicateAccount  = "User already exists"
	msgInsufficientFunds = "Insufficient funds!"
	msgInvalidAmount     = "Amount must be positive"
	msgInvalidBody       = "Invalid request body"
	msgInvalidDate       = "Invalid date, expected YYYY-MM-DD"
	msgInternal          = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// writeServiceError maps a service failure to its status code and message.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, msgAccountNotFound)
	case errors.Is(err, service.ErrDuplicateAccount):
		writeError(w, http.StatusConflict, msgDuplicateAccount)
	case errors.Is(err, service.ErrInsufficientFunds):
		writeError(w, http.StatusUnprocessableEntity, msgInsufficientFunds)
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, msgInvalidAmount)
	default:
		logger.Error("unexpected service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
