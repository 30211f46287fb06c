package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
)

// Uploaded receipt images are capped at 10 MiB.
const maxReceiptBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleAddTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.ledger.Transactions()
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// amountField accepts the amount as either a JSON number or a string, so
// both API clients and forwarded form input parse the same way.
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = amountField(n.String())
	return nil
}

type addTransactionRequest struct {
	Amount      amountField `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Type        string      `json:"type"`
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	form := core.TransactionForm{
		Amount:      string(req.Amount),
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Type:        req.Type,
	}
	form.TouchAll()

	if errs := form.Errors(); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	tx, err := s.ledger.AddTransaction(r.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDate):
			writeJSON(w, http.StatusUnprocessableEntity,
				map[string]any{"errors": core.FieldErrors{"date": "Date must be in YYYY-MM-DD format"}})
		case errors.Is(err, core.ErrUnknownType):
			writeJSON(w, http.StatusUnprocessableEntity,
				map[string]any{"errors": core.FieldErrors{"type": "Type must be income or expense"}})
		case errors.Is(err, core.ErrFormInvalid):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": form.Errors()})
		default:
			slog.ErrorContext(r.Context(), "Add transaction failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save transaction")
		}
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	deleted, err := s.ledger.DeleteTransaction(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleBudgetProgress(w, r)
	case http.MethodPut:
		s.handleUpsertBudget(w, r)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) handleBudgetProgress(w http.ResponseWriter, r *http.Request) {
	progress := s.ledger.BudgetProgress()
	if progress == nil {
		progress = []core.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, progress)
}

type upsertBudgetRequest struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req upsertBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b := core.Budget{Category: core.Category(strings.TrimSpace(req.Category)), Limit: req.Limit}
	if err := s.ledger.UpsertBudget(r.Context(), b); err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownCategory):
			writeJSON(w, http.StatusUnprocessableEntity,
				map[string]any{"errors": core.FieldErrors{"category": "Unknown category"}})
		case errors.Is(err, core.ErrInvalidLimit):
			writeJSON(w, http.StatusUnprocessableEntity,
				map[string]any{"errors": core.FieldErrors{"limit": "Limit must be a positive number"}})
		default:
			slog.ErrorContext(r.Context(), "Upsert budget failed", "category", req.Category, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save budget")
		}
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// summaryResponse is the aggregate dashboard payload: overall totals, the
// expense breakdown in display order, and current-month budget progress.
type summaryResponse struct {
	Totals    core.Totals           `json:"totals"`
	Breakdown []core.CategoryAmount `json:"breakdown"`
	Budgets   []core.BudgetStatus   `json:"budgets"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	entries := core.BreakdownEntries(s.ledger.Breakdown())
	if entries == nil {
		entries = []core.CategoryAmount{}
	}
	progress := s.ledger.BudgetProgress()
	if progress == nil {
		progress = []core.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Totals:    s.ledger.Totals(),
		Breakdown: entries,
		Budgets:   progress,
	})
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	s.serveChart(w, r, "categories", func() ([]byte, error) {
		return s.charts.CategoryPie(core.BreakdownEntries(s.ledger.Breakdown()))
	})
}

func (s *Server) handleBudgetChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	s.serveChart(w, r, "budgets", func() ([]byte, error) {
		return s.charts.BudgetBars(s.ledger.BudgetProgress())
	})
}

// serveChart renders a chart through the version-keyed cache. An empty chart
// (no data to draw) is a 204, not an error.
func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, name string, render func() ([]byte, error)) {
	key := name + ":" + strconv.FormatUint(s.ledger.Version(), 10)

	png, ok := s.chartCache.Get(key)
	if !ok {
		var err error
		png, err = render()
		if err != nil {
			slog.ErrorContext(r.Context(), "Chart render failed", "chart", name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to render chart")
			return
		}
		s.chartCache.Set(key, png)
	}

	if len(png) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}

// handleScanReceipt extracts transaction fields from an uploaded receipt
// image. A failed extraction degrades to 204 so clients fall back to manual
// entry instead of surfacing an error.
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	if s.scanner == nil {
		writeError(w, http.StatusServiceUnavailable, "receipt scanning is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	data, err := s.scanner.Scan(r.Context(), image)
	if err != nil {
		slog.WarnContext(r.Context(), "Receipt scan failed", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"receipt": data,
		"form":    core.FormFromReceipt(*data),
	})
}
