package account

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/cashflow/internal/rest"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, serviceFixture) {
	f := setupService(t)
	f.given(t, scenarioData())
	return NewHandler(f.service), f
}

func request(ctx context.Context, method, target string, body any, vars map[string]string) *http.Request {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, target, &payload).WithContext(ctx)
	return mux.SetURLVars(req, vars)
}

func TestHandler_GetMonth(t *testing.T) {
	t.Run("should return the daily ledger", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		// when
		handler.GetMonth(w, request(f.ctx, http.MethodGet, "/api/cashflow/month/2024-01", nil, map[string]string{"month": "2024-01"}))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var response MonthDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "2024-01", response.Month)
		require.Len(t, response.Days, 31)
		assert.True(t, dec("-500").Equal(response.Days[0].Balance))
		assert.Equal(t, "Rent", response.Days[0].Events[0].Name)
		assert.Equal(t, "2024-01-01", response.Days[0].Events[0].InstanceDate.String())
	})

	t.Run("should render csv on request", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		req := request(f.ctx, http.MethodGet, "/api/cashflow/month/2024-01", nil, map[string]string{"month": "2024-01"})
		req.Header.Set("Accept", "text/csv")
		w := httptest.NewRecorder()

		// when
		handler.GetMonth(w, req)

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "Date,Events,Change,Balance")
	})

	t.Run("should reject a malformed month", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		// when
		handler.GetMonth(w, request(f.ctx, http.MethodGet, "/api/cashflow/month/2024-13", nil, map[string]string{"month": "2024-13"}))

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResponse rest.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "Invalid month format", errResponse.Error)
	})

	t.Run("should refuse requests without a user", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.GetMonth(w, request(context.Background(), http.MethodGet, "/api/cashflow/month/2024-01", nil, map[string]string{"month": "2024-01"}))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_GetStats(t *testing.T) {
	// given
	handler, f := setupHandlerTest(t)
	w := httptest.NewRecorder()

	// when
	handler.GetStats(w, request(f.ctx, http.MethodGet, "/api/cashflow/month/2024-02/stats", nil, map[string]string{"month": "2024-02"}))

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var response StatsDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "2024-02", response.Month)
	assert.NotNil(t, response.Alerts)
	assert.Contains(t, []stats.BalanceStatus{stats.Safe, stats.Warning, stats.Danger}, response.Status)
}

func TestHandler_GetTimeline(t *testing.T) {
	t.Run("should project the requested range", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		// when
		handler.GetTimeline(w, request(f.ctx, http.MethodGet, "/api/cashflow/timeline?from=2024-01&range=6m", nil, nil))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var response []TimelineMonthDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Len(t, response, 6)
		assert.Equal(t, "2024-06", response[5].Month)
	})

	t.Run("should require the first month", func(t *testing.T) {
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.GetTimeline(w, request(f.ctx, http.MethodGet, "/api/cashflow/timeline", nil, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Items(t *testing.T) {
	t.Run("should create an expense", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		body := map[string]any{"name": "Gym", "amount": "45", "frequency": "monthly", "startDate": "2024-01-03", "category": "health"}
		w := httptest.NewRecorder()

		// when
		handler.AddExpense(w, request(f.ctx, http.MethodPost, "/api/cashflow/expense", body, nil))

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		var created cashflow.Expense
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "health", created.Category)
	})

	t.Run("should summarize a payment plan", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		body := map[string]any{
			"name": "Laptop", "amount": "100", "frequency": "payment_plan", "startDate": "2024-01-10",
			"paymentPlan": map[string]any{"totalDebt": "600", "paymentCount": "3", "frequency": "semimonthly"},
		}
		w := httptest.NewRecorder()

		// when
		handler.AddExpense(w, request(f.ctx, http.MethodPost, "/api/cashflow/expense", body, nil))

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		var created ExpenseDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		require.NotNil(t, created.PlanSummary)
		assert.Equal(t, "100.00", created.PlanSummary.CalculatedPayment.StringFixed(2))
		assert.Equal(t, "2024-03-15", created.PlanSummary.FinalPaymentDate.String())
	})

	t.Run("should get an expense", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		// when
		handler.GetExpense(w, request(f.ctx, http.MethodGet, "/api/cashflow/expense/rent", nil, map[string]string{"itemId": "rent"}))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var rent ExpenseDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&rent))
		assert.Equal(t, "Rent", rent.Name)
		assert.Nil(t, rent.PlanSummary)
	})

	t.Run("should return 404 for an unknown expense", func(t *testing.T) {
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.GetExpense(w, request(f.ctx, http.MethodGet, "/api/cashflow/expense/nope", nil, map[string]string{"itemId": "nope"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should reject an imported document with an invalid frequency", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		imported := scenarioData()
		imported.Incomes[0].Frequency = cashflow.SplitFrequency
		w := httptest.NewRecorder()

		// when
		handler.ReplaceData(w, request(f.ctx, http.MethodPut, "/api/cashflow", imported, nil))

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject an unsupported frequency", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		body := map[string]any{"name": "Side gig", "amount": "100", "frequency": "bimonthly"}
		w := httptest.NewRecorder()

		// when
		handler.AddIncome(w, request(f.ctx, http.MethodPost, "/api/cashflow/income", body, nil))

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 404 when deleting an unknown income", func(t *testing.T) {
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.DeleteIncome(w, request(f.ctx, http.MethodDelete, "/api/cashflow/income/nope", nil, map[string]string{"itemId": "nope"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should delete an expense", func(t *testing.T) {
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.DeleteExpense(w, request(f.ctx, http.MethodDelete, "/api/cashflow/expense/rent", nil, map[string]string{"itemId": "rent"}))

		assert.Equal(t, http.StatusNoContent, w.Code)
		stored, err := f.repo.Get(context.Background(), testUser.Id)
		require.NoError(t, err)
		assert.Len(t, stored.Expenses, 1)
	})
}

func TestHandler_Overrides(t *testing.T) {
	t.Run("should skip an occurrence", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		body := map[string]any{"originalDate": "2024-02-01", "newDate": "SKIPPED", "note": "landlord away"}
		vars := map[string]string{"kind": "expense", "itemId": "rent"}
		w := httptest.NewRecorder()

		// when
		handler.SaveOverride(w, request(f.ctx, http.MethodPut, "/api/cashflow/expense/rent/override", body, vars))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		stored, err := f.repo.Get(context.Background(), testUser.Id)
		require.NoError(t, err)
		rent, _ := stored.FindExpense("rent")
		override, ok := rent.Overrides.Resolve(stored.StartingDate.YearMonth().Next().FirstDay())
		require.True(t, ok)
		assert.True(t, override.IsSkipped())
	})

	t.Run("should reject an invalid original date on removal", func(t *testing.T) {
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.RemoveOverride(w, request(f.ctx, http.MethodDelete, "/", nil, map[string]string{"kind": "expense", "itemId": "rent", "date": "01/02/2024"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_CreditCard(t *testing.T) {
	t.Run("should describe the card payoff", func(t *testing.T) {
		// given
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		// when
		handler.GetCreditCardStatus(w, request(f.ctx, http.MethodGet, "/api/cashflow/expense/visa/card?month=2024-01", nil, map[string]string{"expenseId": "visa"}))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var response CreditCardStatusDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 3, response.MonthsRemaining)
		assert.Equal(t, "2024-04", response.PayoffMonth)
	})

	t.Run("should reject a non-card expense", func(t *testing.T) {
		handler, f := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.GetPaymentImpact(w, request(f.ctx, http.MethodGet, "/api/cashflow/expense/rent/card/impact?month=2024-01&amount=900", nil, map[string]string{"expenseId": "rent"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetTodaysBalance(t *testing.T) {
	// given
	handler, f := setupHandlerTest(t)
	f.clock.SetNow(time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC))
	w := httptest.NewRecorder()

	// when
	handler.GetTodaysBalance(w, request(f.ctx, http.MethodGet, "/api/cashflow/balance/today", nil, nil))

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var response TodaysBalanceDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "2024-01-05", response.Date.String())
	assert.True(t, dec("1500").Equal(response.Balance))
	assert.Equal(t, stats.Safe, response.Status)
}
