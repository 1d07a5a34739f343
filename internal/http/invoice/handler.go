package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/http/validate"
	"github.com/jpcarvalho/clubledger/internal/invoice"
	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/sanitize"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/next-number", h.nextNumber)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Put("/{id}/items", h.replaceItems)
	r.Delete("/{id}", h.delete)
}

type itemRequest struct {
	Description string `json:"description" validate:"required"`
	UnitPrice   string `json:"unit_price" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
}

type createInvoiceRequest struct {
	UserID    uuid.UUID     `json:"user_id" validate:"required"`
	IssueDate string        `json:"issue_date" validate:"required"`
	DueDate   string        `json:"due_date" validate:"required"`
	Notes     string        `json:"notes,omitempty"`
	Items     []itemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	issueDate, err := time.Parse(time.DateOnly, req.IssueDate)
	if err != nil {
		http.Error(w, "invalid issue_date", http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date", http.StatusBadRequest)
		return
	}

	params := invoice.CreateParams{
		UserID:    req.UserID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Notes:     sanitize.Text(req.Notes),
	}

	params.Items, err = itemParams(req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, invoice.ErrNoItems) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter invoice.ListFilter

	q := r.URL.Query()

	if s := q.Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		filter.Year = &year
	}

	if s := q.Get("status"); s != "" {
		status := invoice.Status(s)
		if status != invoice.StatusPendente && status != invoice.StatusPaga {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		filter.Status = &status
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(invoices))
}

type nextNumberResponse struct {
	Number string `json:"number"`
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = y
	}

	number, err := h.svc.NextNumber(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, nextNumberResponse{Number: number})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

type updateInvoiceRequest struct {
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=pendente paga"`
	DueDate *string `json:"due_date,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := invoice.UpdateParams{}

	if req.Status != nil {
		status := invoice.Status(*req.Status)
		params.Status = &status
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			http.Error(w, "invalid due_date", http.StatusBadRequest)
			return
		}

		params.DueDate = &dueDate
	}

	if req.Notes != nil {
		notes := sanitize.Text(*req.Notes)
		params.Notes = &notes
	}

	inv, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

type replaceItemsRequest struct {
	Items []itemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *Handler) replaceItems(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req replaceItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := itemParams(req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.ReplaceItems(r.Context(), id, items)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrNotFound):
			http.Error(w, "invoice not found", http.StatusNotFound)
		case errors.Is(err, invoice.ErrNoItems):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func itemParams(items []itemRequest) ([]invoice.ItemParams, error) {
	params := make([]invoice.ItemParams, len(items))

	for i, item := range items {
		unitPrice, err := money.Parse(item.UnitPrice)
		if err != nil || unitPrice < 0 {
			return nil, errors.New("invalid unit_price")
		}

		params[i] = invoice.ItemParams{
			Description: sanitize.Text(item.Description),
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
		}
	}

	return params, nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
