package bankimport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/bankimport"
	"github.com/jpcarvalho/clubledger/internal/categorize"
	"github.com/jpcarvalho/clubledger/internal/http/middleware"
	"github.com/jpcarvalho/clubledger/internal/http/validate"
	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

// maxStatementSize caps the uploaded statement at 10 MiB.
const maxStatementSize = 10 << 20

type Handler struct {
	parser     *bankimport.Parser
	txSvc      *transaction.Service
	categorize *categorize.Service
}

func NewHandler(parser *bankimport.Parser, txSvc *transaction.Service, categorizeSvc *categorize.Service) *Handler {
	return &Handler{parser: parser, txSvc: txSvc, categorize: categorizeSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
	r.Post("/confirm", h.confirm)
}

type movementResponse struct {
	Description    string     `json:"description"`
	RawDescription string     `json:"raw_description"`
	Amount         string     `json:"amount"`
	Type           string     `json:"type"`
	Date           string     `json:"date"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
}

type conflictResponse struct {
	Incoming   movementResponse `json:"incoming"`
	ExistingID uuid.UUID        `json:"existing_id"`
}

type importResponse struct {
	Imported  int                `json:"imported"`
	New       []movementResponse `json:"new,omitempty"`
	Conflicts []conflictResponse `json:"conflicts,omitempty"`
}

// importStatement parses the uploaded statement, suggests categories for the
// movements and writes them in one batch. When any movement collides with an
// already recorded one, nothing is written and the split is returned with 409
// for the treasurer to review and confirm.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxStatementSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing statement file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	actor, hasActor := middleware.ActorID(r.Context())

	for i := range params {
		if hasActor {
			params[i].CreatedBy = &actor
		}

		categoryID, err := h.categorize.Suggest(r.Context(), params[i].RawDescription)
		if err != nil {
			slog.Warn("category suggestion failed", "description", params[i].RawDescription, "error", err)
			continue
		}

		params[i].CategoryID = categoryID
	}

	result, err := h.txSvc.ImportBatch(r.Context(), params)
	if err != nil {
		slog.Error("statement import failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if len(result.Conflicts) > 0 {
		writeJSON(w, http.StatusConflict, importResponse{
			New:       toMovementList(result.New),
			Conflicts: toConflictList(result.Conflicts),
		})

		return
	}

	slog.Info("imported bank statement", "movements", len(result.Imported))

	writeJSON(w, http.StatusCreated, importResponse{Imported: len(result.Imported)})
}

type confirmMovement struct {
	Description    string     `json:"description" validate:"required"`
	RawDescription string     `json:"raw_description"`
	Amount         string     `json:"amount" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=receita despesa"`
	Date           string     `json:"date" validate:"required"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
}

type confirmRequest struct {
	Movements []confirmMovement `json:"movements" validate:"required,min=1,dive"`
}

// confirm writes the movements the treasurer kept after reviewing the
// conflict report. No duplicate check here; the review already happened.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actor, hasActor := middleware.ActorID(r.Context())

	params := make([]transaction.CreateParams, len(req.Movements))

	for i, m := range req.Movements {
		amount, err := money.Parse(m.Amount)
		if err != nil || amount <= 0 {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(time.DateOnly, m.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params[i] = transaction.CreateParams{
			Description:    m.Description,
			RawDescription: m.RawDescription,
			Amount:         amount,
			Type:           transaction.Type(m.Type),
			Status:         transaction.StatusPaga,
			Date:           date,
			PaymentMethod:  transaction.MethodTransferencia,
			CategoryID:     m.CategoryID,
		}

		if hasActor {
			params[i].CreatedBy = &actor
		}
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		slog.Error("statement confirm failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, importResponse{Imported: len(txs)})
}

func toMovement(p transaction.CreateParams) movementResponse {
	return movementResponse{
		Description:    p.Description,
		RawDescription: p.RawDescription,
		Amount:         money.Format(p.Amount),
		Type:           string(p.Type),
		Date:           p.Date.Format(time.DateOnly),
		CategoryID:     p.CategoryID,
	}
}

func toMovementList(params []transaction.CreateParams) []movementResponse {
	resp := make([]movementResponse, len(params))
	for i, p := range params {
		resp[i] = toMovement(p)
	}

	return resp
}

func toConflictList(conflicts []transaction.Conflict) []conflictResponse {
	resp := make([]conflictResponse, len(conflicts))
	for i, c := range conflicts {
		resp[i] = conflictResponse{
			Incoming:   toMovement(c.Incoming),
			ExistingID: c.Existing.ID,
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
