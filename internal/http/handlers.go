package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"findash/internal/core"
	"findash/internal/store"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Personal Finance Backend Running"})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	accounts, err := s.records.ListAccounts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List accounts error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []core.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	goals, err := s.records.ListGoals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleDebts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	debts, err := s.records.ListDebts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List debts error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list debts")
		return
	}
	if debts == nil {
		debts = []core.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	budgets, err := s.records.ListBudgetCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List budget categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list budget categories")
		return
	}
	if budgets == nil {
		budgets = []core.BudgetCategory{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	var filter store.TransactionFilter
	if tf := strings.TrimSpace(r.URL.Query().Get("timeframe")); tf != "" {
		// An unknown label yields an instant-wide window, not an error.
		filter.From = core.StartOfPeriod(time.Now().UTC(), core.Timeframe(tf))
	}
	txs, err := s.records.ListTransactions(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// transactionRequest mirrors the POST /api/transactions payload. Amount sign
// is ignored; a missing date defaults to the time of recording.
type transactionRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Kind        core.Kind  `json:"kind"`
	Account     string     `json:"account"`
	Date        *time.Time `json:"date"`
	Recurring   bool       `json:"recurring"`
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t := core.Transaction{
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Kind:        req.Kind,
		AccountID:   strings.TrimSpace(req.Account),
		Recurring:   req.Recurring,
	}
	if req.Date != nil {
		t.Date = *req.Date
	}

	id, err := s.transactions.Record(r.Context(), t)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create transaction error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"inserted_id": id})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidKind) ||
		errors.Is(err, core.ErrEmptyCategory)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	tf := core.Timeframe(strings.TrimSpace(r.URL.Query().Get("timeframe")))
	if tf == "" {
		tf = core.Monthly
	}
	report, err := s.summaries.Summarize(r.Context(), tf)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err, "timeframe", tf)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	notifs, err := s.notifier.Derive(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Derive notifications error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to derive notifications")
		return
	}
	if notifs == nil {
		notifs = []core.Notification{}
	}
	writeJSON(w, http.StatusOK, notifs)
}
