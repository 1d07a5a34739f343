package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/trend", h.trend)
}

type trendPointResponse struct {
	Label   string `json:"label"`
	Revenue string `json:"revenue"`
	Expense string `json:"expense"`
}

type summaryResponse struct {
	Balance        string               `json:"balance"`
	MonthlyRevenue string               `json:"monthly_revenue"`
	MonthlyExpense string               `json:"monthly_expense"`
	OverdueFees    int                  `json:"overdue_fees"`
	TotalRevenue   string               `json:"total_revenue"`
	TotalExpense   string               `json:"total_expense"`
	Trend          []trendPointResponse `json:"trend"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summarize(r.Context(), time.Now())
	if err != nil {
		slog.Error("failed to build financial summary", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := summaryResponse{
		Balance:        money.Format(summary.Balance),
		MonthlyRevenue: money.Format(summary.MonthlyRevenue),
		MonthlyExpense: money.Format(summary.MonthlyExpense),
		OverdueFees:    summary.OverdueFees,
		TotalRevenue:   money.Format(summary.TotalRevenue),
		TotalExpense:   money.Format(summary.TotalExpense),
		Trend:          toTrendResponse(summary.Trend),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	months := 6

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 60 {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}

		months = n
	}

	points, err := h.svc.Trend(r.Context(), months, time.Now())
	if err != nil {
		slog.Error("failed to compute trend", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toTrendResponse(points))
}

func toTrendResponse(points []report.TrendPoint) []trendPointResponse {
	resp := make([]trendPointResponse, len(points))
	for i, p := range points {
		resp[i] = trendPointResponse{
			Label:   p.Label,
			Revenue: money.Format(p.Revenue),
			Expense: money.Format(p.Expense),
		}
	}

	return resp
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
