package handler

import (
	"net/http"

	"account-ledger/logging"
	"account-ledger/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	TaxIDHeader    string
	AllowedOrigins []string
	MetricsEnabled bool
}

// NewRouter wires every endpoint. All routes except account creation, health
// and metrics sit behind RequireAccount.
func NewRouter(svc AccountService, logger *zap.Logger, opts RouterOptions) http.Handler {
	if opts.TaxIDHeader == "" {
		opts.TaxIDHeader = "cpf"
	}

	accounts := NewAccountHandler(svc, logger)
	transactions := NewTransactionHandler(svc, logger)
	statements := NewStatementHandler(svc, logger)
	gate := RequireAccount(svc, opts.TaxIDHeader)
	guarded := func(fn http.HandlerFunc) http.Handler { return gate(fn) }

	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	if opts.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/account", accounts.CreateAccountHandler).Methods(http.MethodPost)
	r.Handle("/account", guarded(accounts.UpdateAccountHandler)).Methods(http.MethodPut)
	r.Handle("/account", guarded(accounts.GetAccountHandler)).Methods(http.MethodGet)
	r.Handle("/account", guarded(accounts.DeleteAccountHandler)).Methods(http.MethodDelete)

	r.Handle("/statement", guarded(statements.GetStatementHandler)).Methods(http.MethodGet)
	r.Handle("/statement/date", guarded(statements.GetStatementByDateHandler)).Methods(http.MethodGet)
	r.Handle("/balance", guarded(statements.GetBalanceHandler)).Methods(http.MethodGet)

	r.Handle("/deposit", guarded(transactions.DepositHandler)).Methods(http.MethodPost)
	r.Handle("/withdraw", guarded(transactions.WithdrawHandler)).Methods(http.MethodPost)

	// Built innermost first. Logging and metrics wrap the whole router so
	// unmatched requests are seen too; the recoverer sits inside both so the
	// 500 it writes is logged and counted.
	var h http.Handler = r
	h = middleware.Recoverer(h)
	h = metrics.Middleware(r)(h)
	h = logging.Middleware(logger)(h)
	h = middleware.RequestID(h)
	return cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", opts.TaxIDHeader, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})(h)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
