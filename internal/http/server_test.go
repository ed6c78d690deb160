package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"findash/internal/core"
	"findash/internal/services"
	"findash/internal/store"
	"findash/internal/store/memory"
)

func newTestServer(t *testing.T, records store.Store) *Server {
	t.Helper()
	summaries := services.NewSummaryService(records)
	notifier := services.NewNotificationService(summaries, records)
	transactions := services.NewTransactionService(records, nil)
	srv := NewServer(":0", records, summaries, notifier, transactions)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func doRequest(srv *Server, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := doRequest(srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Personal Finance Backend Running" {
		t.Errorf("message = %q", body["message"])
	}

	if rec := doRequest(srv, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, memory.New())

	if rec := doRequest(srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, want 200", rec.Code)
	}
	if rec := doRequest(srv, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("/readyz status = %d, want 200", rec.Code)
	}
}

func TestListEndpointsReturnEmptyArrays(t *testing.T) {
	srv := newTestServer(t, memory.New())

	for _, path := range []string{"/api/accounts", "/api/goals", "/api/debts", "/api/budgets", "/api/transactions", "/api/notifications"} {
		rec := doRequest(srv, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
			continue
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("%s body = %q, want []", path, got)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := doRequest(srv, http.MethodPost, "/api/accounts", "{}")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET" {
		t.Errorf("Allow = %q, want GET", allow)
	}
}

func TestCreateAndListTransactions(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"amount": 65.00, "description": "Groceries", "category": "Food", "kind": "expense", "date": "2024-03-10T00:00:00Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created["inserted_id"] == "" {
		t.Fatal("missing inserted_id in response")
	}

	rec = doRequest(srv, http.MethodGet, "/api/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var txs []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].Amount.Cents != 6500 {
		t.Errorf("amount = %d cents, want 6500", txs[0].Amount.Cents)
	}
	if txs[0].ID != created["inserted_id"] {
		t.Errorf("listed id = %q, want %q", txs[0].ID, created["inserted_id"])
	}
}

func TestCreateTransactionNegativeAmountNormalized(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"amount": -42.50, "category": "Food", "kind": "expense"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(srv, http.MethodGet, "/api/transactions", "")
	var txs []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if txs[0].Amount.Cents != 4250 {
		t.Errorf("amount = %d cents, want absolute 4250", txs[0].Amount.Cents)
	}
}

func TestCreateTransactionValidationErrors(t *testing.T) {
	srv := newTestServer(t, memory.New())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"zero amount", `{"amount": 0, "category": "Food", "kind": "expense"}`, http.StatusUnprocessableEntity},
		{"missing category", `{"amount": 10, "kind": "expense"}`, http.StatusUnprocessableEntity},
		{"bad kind", `{"amount": 10, "category": "Food", "kind": "transfer"}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"amount": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(srv, http.MethodPost, "/api/transactions", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestSummaryEndpoint(t *testing.T) {
	records := memory.New()
	srv := newTestServer(t, records)
	ctx := context.Background()

	if _, err := records.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 10000}, Category: "Salary", Kind: core.Income, Date: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed transaction failed: %v", err)
	}
	if _, err := records.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 4000}, Category: "Food", Kind: core.Expense, Date: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed transaction failed: %v", err)
	}

	rec := doRequest(srv, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report core.SummaryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if report.Timeframe != core.Monthly {
		t.Errorf("default timeframe = %q, want monthly", report.Timeframe)
	}
	if report.Metrics.CashFlow.Cents != 6000 {
		t.Errorf("cash flow = %d, want 6000", report.Metrics.CashFlow.Cents)
	}

	rec = doRequest(srv, http.MethodGet, "/api/summary?timeframe=yearly", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode yearly summary: %v", err)
	}
	if report.Timeframe != core.Yearly {
		t.Errorf("timeframe = %q, want yearly", report.Timeframe)
	}
	if len(report.BudgetUsage) != 0 {
		t.Errorf("yearly budget usage length = %d, want 0", len(report.BudgetUsage))
	}
}

func TestNotificationsEndpoint(t *testing.T) {
	records := memory.New()
	srv := newTestServer(t, records)

	if _, err := records.InsertGoal(context.Background(), core.Goal{
		Name: "Vacation", TargetAmount: core.Money{Cents: 300000}, CurrentAmount: core.Money{Cents: 300000},
	}); err != nil {
		t.Fatalf("seed goal failed: %v", err)
	}

	rec := doRequest(srv, http.MethodGet, "/api/notifications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var notifs []core.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &notifs); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifs))
	}
	if notifs[0].Kind != core.GoalAlert {
		t.Errorf("kind = %s, want goal", notifs[0].Kind)
	}
}

// failingStore wraps a working store but fails account reads.
type failingStore struct {
	store.Store
}

func (f *failingStore) ListAccounts(context.Context) ([]core.Account, error) {
	return nil, errors.New("store unavailable")
}

func TestStoreFailureReturns500(t *testing.T) {
	srv := newTestServer(t, &failingStore{Store: memory.New()})

	rec := doRequest(srv, http.MethodGet, "/api/accounts", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := doRequest(srv, http.MethodGet, "/api/accounts", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request 61 within a minute should be rejected")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("a different client must not be affected")
	}
}
