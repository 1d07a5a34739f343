package category

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/categorize"
	"github.com/jpcarvalho/clubledger/internal/category/store"
	"github.com/jpcarvalho/clubledger/internal/http/validate"
	"github.com/jpcarvalho/clubledger/internal/sanitize"
)

type Handler struct {
	categories *store.Store
	categorize *categorize.Service
}

func NewHandler(categories *store.Store, categorizeSvc *categorize.Service) *Handler {
	return &Handler{categories: categories, categorize: categorizeSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/rules", h.listRules)
	r.Post("/rules", h.createRule)
}

type categoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	}

	writeJSON(w, http.StatusOK, resp)
}

type ruleResponse struct {
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.categorize.Rules(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = ruleResponse{Pattern: rule.Pattern, CategoryID: rule.CategoryID}
	}

	writeJSON(w, http.StatusOK, resp)
}

type createRuleRequest struct {
	Pattern    string    `json:"pattern" validate:"required,min=3"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.categories.GetCategory(r.Context(), req.CategoryID); err != nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	pattern := sanitize.Text(req.Pattern)

	if err := h.categorize.Learn(r.Context(), pattern, req.CategoryID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, ruleResponse{Pattern: pattern, CategoryID: req.CategoryID})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
