package handler

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const taxIDKey contextKey = "tax_id"

// TaxIDFromContext returns the tax id stored by RequireAccount.
func TaxIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(taxIDKey).(string)
	return id
}

// RequireAccount resolves the caller's account from the given header before
// the wrapped handler runs. A missing header is a 400 and an unknown tax id a
// 404; in both cases the wrapped handler is never called.
func RequireAccount(svc AccountService, header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			taxID := strings.TrimSpace(r.Header.Get(header))
			if taxID == "" {
				writeError(w, http.StatusBadRequest, msgTaxIDRequired)
				return
			}
			if !svc.Exists(taxID) {
				writeError(w, http.StatusNotFound, msgAccountNotFound)
				return
			}
			ctx := context.WithValue(r.Context(), taxIDKey, taxID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
