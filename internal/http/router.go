package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/jpcarvalho/clubledger/internal/http/bankimport"
	"github.com/jpcarvalho/clubledger/internal/http/category"
	"github.com/jpcarvalho/clubledger/internal/http/fee"
	"github.com/jpcarvalho/clubledger/internal/http/invoice"
	"github.com/jpcarvalho/clubledger/internal/http/middleware"
	"github.com/jpcarvalho/clubledger/internal/http/report"
	"github.com/jpcarvalho/clubledger/internal/http/transaction"
)

// One global bucket: 10 req/s sustained with short bursts, plenty for a
// single-club admin API.
const (
	rateInterval = 100 * time.Millisecond
	rateBurst    = 30
)

func New(
	jwtSecret string,
	transactionsV1 *transaction.Handler,
	feesV1 *fee.Handler,
	invoicesV1 *invoice.Handler,
	reportsV1 *report.Handler,
	importV1 *bankimport.Handler,
	categoriesV1 *category.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(middleware.RateLimit(rate.NewLimiter(rate.Every(rateInterval), rateBurst)))
	router.Use(middleware.Auth(jwtSecret))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			transactionsV1.Routes(r)
		})

		r.Route("/fees", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			feesV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/categories", categoriesV1.Routes)
	})

	return router
}
