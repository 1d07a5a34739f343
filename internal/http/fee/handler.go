package fee

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/http/validate"
	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

type Handler struct {
	svc *fee.Service
}

func NewHandler(svc *fee.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/generate", h.generate)
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/pay", h.pay)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type generateRequest struct {
	Month  int    `json:"month" validate:"min=1,max=12"`
	Year   int    `json:"year" validate:"min=2000,max=2100"`
	Amount string `json:"amount" validate:"required"`
}

type generateResponse struct {
	Created int `json:"created"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount < 0 {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	created, err := h.svc.Generate(r.Context(), req.Month, req.Year, amount)
	if err != nil {
		if errors.Is(err, fee.ErrInvalidPeriod) || errors.Is(err, fee.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.Info("generated membership fees", "month", req.Month, "year", req.Year, "created", created)

	writeJSON(w, http.StatusOK, generateResponse{Created: created})
}

type payRequest struct {
	PaymentDate   string `json:"payment_date" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=dinheiro transferencia mbway multibanco cartao"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	paymentDate, err := time.Parse(time.DateOnly, req.PaymentDate)
	if err != nil {
		http.Error(w, "invalid payment_date", http.StatusBadRequest)
		return
	}

	f, err := h.svc.MarkPaid(r.Context(), id, paymentDate, transaction.PaymentMethod(req.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, fee.ErrNotFound):
			http.Error(w, "fee not found", http.StatusNotFound)
		case errors.Is(err, fee.ErrAlreadyPaid):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, fee.ErrInvalidMethod):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusOK, toResponse(f, time.Now()))
}

type createRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Month  int    `json:"month" validate:"min=1,max=12"`
	Year   int    `json:"year" validate:"min=2000,max=2100"`
	Amount string `json:"amount" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount < 0 {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Create(r.Context(), userID, req.Month, req.Year, amount)
	if err != nil {
		if errors.Is(err, fee.ErrDuplicate) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(f, time.Now()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fees, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(fees, time.Now()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, fee.ErrNotFound) {
			http.Error(w, "fee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(f, time.Now()))
}

type updateRequest struct {
	Amount string `json:"amount" validate:"required"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount < 0 {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Update(r.Context(), id, amount)
	if err != nil {
		switch {
		case errors.Is(err, fee.ErrNotFound):
			http.Error(w, "fee not found", http.StatusNotFound)
		case errors.Is(err, fee.ErrAlreadyPaid):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusOK, toResponse(f, time.Now()))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, fee.ErrNotFound):
			http.Error(w, "fee not found", http.StatusNotFound)
		case errors.Is(err, fee.ErrAlreadyPaid):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (fee.ListFilter, error) {
	var filter fee.ListFilter

	q := r.URL.Query()

	if s := q.Get("user_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errors.New("invalid user_id")
		}

		filter.UserID = &id
	}

	if s := q.Get("month"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil || month < 1 || month > 12 {
			return filter, errors.New("invalid month")
		}

		filter.Month = &month
	}

	if s := q.Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return filter, errors.New("invalid year")
		}

		filter.Year = &year
	}

	if s := q.Get("status"); s != "" {
		status := fee.Status(s)
		if status != fee.StatusPendente && status != fee.StatusPaga {
			return filter, errors.New("invalid status")
		}

		filter.Status = &status
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
