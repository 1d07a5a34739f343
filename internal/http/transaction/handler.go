package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/http/middleware"
	"github.com/jpcarvalho/clubledger/internal/http/validate"
	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/sanitize"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/export", h.exportCSV)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	Description   string     `json:"description" validate:"required"`
	Amount        string     `json:"amount" validate:"required"`
	Type          string     `json:"type" validate:"required,oneof=receita despesa"`
	Status        string     `json:"status" validate:"required,oneof=pendente paga"`
	Date          string     `json:"date" validate:"required"`
	PaymentMethod string     `json:"payment_method" validate:"omitempty,oneof=dinheiro transferencia mbway multibanco cartao"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ReceiptRef    string     `json:"receipt_ref,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
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

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	params := transaction.CreateParams{
		UserID:        req.UserID,
		Description:   sanitize.Text(req.Description),
		Amount:        amount,
		Type:          transaction.Type(req.Type),
		Status:        transaction.Status(req.Status),
		Date:          date,
		PaymentMethod: transaction.PaymentMethod(req.PaymentMethod),
		CategoryID:    req.CategoryID,
		ReceiptRef:    req.ReceiptRef,
	}

	if actor, ok := middleware.ActorID(r.Context()); ok {
		params.CreatedBy = &actor
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := paginationFromQuery(r, &filter); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="movimentos.csv"`)

	if err := h.svc.WriteCSV(r.Context(), filter, w); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Description   *string    `json:"description,omitempty"`
	Amount        *string    `json:"amount,omitempty"`
	Type          *string    `json:"type,omitempty" validate:"omitempty,oneof=receita despesa"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=pendente paga"`
	Date          *string    `json:"date,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty" validate:"omitempty,oneof=dinheiro transferencia mbway multibanco cartao"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Description != nil {
		tx.Description = sanitize.Text(*req.Description)
	}

	if req.Amount != nil {
		amount, err := money.Parse(*req.Amount)
		if err != nil || amount < 0 {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}

		tx.Amount = amount
	}

	if req.Type != nil {
		tx.Type = transaction.Type(*req.Type)
	}

	if req.Status != nil {
		tx.Status = transaction.Status(*req.Status)
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		tx.Date = date
	}

	if req.PaymentMethod != nil {
		tx.PaymentMethod = transaction.PaymentMethod(*req.PaymentMethod)
	}

	if req.CategoryID != nil {
		tx.CategoryID = req.CategoryID
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		if errors.Is(err, transaction.ErrLinkedToFee) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, transaction.ErrLinkedToFee) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (transaction.ListFilter, error) {
	var filter transaction.ListFilter

	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		status := transaction.Status(s)
		if !status.Valid() {
			return filter, errors.New("invalid status")
		}

		filter.Status = &status
	}

	if s := q.Get("type"); s != "" {
		txType := transaction.Type(s)
		if !txType.Valid() {
			return filter, errors.New("invalid type")
		}

		filter.Type = &txType
	}

	if s := q.Get("user_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errors.New("invalid user_id")
		}

		filter.UserID = &id
	}

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errors.New("invalid category_id")
		}

		filter.CategoryID = &id
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid start_date")
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid end_date")
		}

		filter.EndDate = &t
	}

	return filter, nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// paginationFromQuery applies limit/offset to the filter. Listing is always
// paginated; the CSV export skips this and streams the whole set.
func paginationFromQuery(r *http.Request, filter *transaction.ListFilter) error {
	q := r.URL.Query()

	filter.Limit = defaultPageSize

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return errors.New("invalid limit")
		}

		filter.Limit = min(n, maxPageSize)
	}

	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return errors.New("invalid offset")
		}

		filter.Offset = n
	}

	return nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
