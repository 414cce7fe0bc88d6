package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/cashflow/internal/rest"
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/credit_card"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/klokku/cashflow/pkg/projection"
	"github.com/klokku/cashflow/pkg/stats"
	"github.com/klokku/cashflow/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type SettingsDTO struct {
	StartingBalance  decimal.Decimal   `json:"startingBalance"`
	StartingDate     calendar.Date     `json:"startingDate"`
	WarningThreshold decimal.Decimal   `json:"warningThreshold"`
	FloorThreshold   decimal.Decimal   `json:"floorThreshold"`
	CategoryColors   map[string]string `json:"categoryColors,omitempty"`
}

type EventDTO struct {
	Type         cashflow.Kind   `json:"type"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	ItemId       string          `json:"itemId"`
	Category     string          `json:"category,omitempty"`
	IsOverride   bool            `json:"isOverride,omitempty"`
	IsSkipped    bool            `json:"isSkipped,omitempty"`
	IsSplit      bool            `json:"isSplit,omitempty"`
	SplitPart    int             `json:"splitPart,omitempty"`
	OriginalDate calendar.Date   `json:"originalDate,omitzero"`
	InstanceDate calendar.Date   `json:"instanceDate"`
}

type DayDTO struct {
	Day     int             `json:"day"`
	Date    calendar.Date   `json:"date"`
	Events  []EventDTO      `json:"events"`
	Change  decimal.Decimal `json:"change"`
	Balance decimal.Decimal `json:"balance"`
}

type MonthDTO struct {
	Month           string          `json:"month"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Days            []DayDTO        `json:"days"`
}

type SummaryDTO struct {
	LowestBalance  decimal.Decimal `json:"lowestBalance"`
	LowestDay      int             `json:"lowestDay"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	EndingBalance  decimal.Decimal `json:"endingBalance"`
	VariableBudget decimal.Decimal `json:"variableBudget"`
}

type AlertDTO struct {
	Level   stats.BalanceStatus `json:"level"`
	Title   string              `json:"title"`
	Message string              `json:"message"`
}

type StatsDTO struct {
	Month           string              `json:"month"`
	StartingBalance decimal.Decimal     `json:"startingBalance"`
	Summary         SummaryDTO          `json:"summary"`
	Status          stats.BalanceStatus `json:"status"`
	Alerts          []AlertDTO          `json:"alerts"`
}

type TimelineMonthDTO struct {
	Month           string              `json:"month"`
	StartingBalance decimal.Decimal     `json:"startingBalance"`
	Summary         SummaryDTO          `json:"summary"`
	Status          stats.BalanceStatus `json:"status"`
}

type TodaysBalanceDTO struct {
	Date    calendar.Date       `json:"date"`
	Balance decimal.Decimal     `json:"balance"`
	Status  stats.BalanceStatus `json:"status"`
}

type CreditCardStatusDTO struct {
	Remaining       decimal.Decimal `json:"remaining"`
	IsPaidOff       bool            `json:"isPaidOff"`
	MonthsRemaining int             `json:"monthsRemaining"`
	PayoffMonth     string          `json:"payoffMonth,omitempty"`
}

type PaymentImpactDTO struct {
	RegularMonths  int             `json:"regularMonths"`
	AdjustedMonths int             `json:"adjustedMonths"`
	MonthsSaved    int             `json:"monthsSaved"`
	InterestSaved  decimal.Decimal `json:"interestSaved"`
}

type PaymentPlanSummaryDTO struct {
	CalculatedPayment decimal.Decimal `json:"calculatedPayment"`
	FinalPaymentDate  calendar.Date   `json:"finalPaymentDate,omitzero"`
}

// ExpenseDTO is an expense as stored, plus the derived summary of its payment plan.
type ExpenseDTO struct {
	cashflow.Expense
	PlanSummary *PaymentPlanSummaryDTO `json:"planSummary,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetData godoc
// @Summary Get the cash-flow document
// @Tags Cashflow
// @Produce json
// @Success 200 {object} cashflow.Data
// @Failure 403 {string} string "User not found"
// @Router /api/cashflow [get]
// @Security XUserId
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting cash-flow data")
	data, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// ReplaceData godoc
// @Summary Replace the cash-flow document
// @Description Import a whole document, e.g. one exported from another account
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param data body cashflow.Data true "Document"
// @Success 200 {object} cashflow.Data
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/cashflow [put]
// @Security XUserId
func (h *Handler) ReplaceData(w http.ResponseWriter, r *http.Request) {
	log.Debug("Replacing cash-flow data")
	var data cashflow.Data
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	updated, err := h.service.Replace(r.Context(), data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateSettings godoc
// @Summary Update account settings
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param settings body SettingsDTO true "Settings"
// @Success 200 {object} cashflow.Data
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/cashflow/settings [put]
// @Security XUserId
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating cash-flow settings")
	var settings SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if settings.StartingDate.IsZero() {
		rest.WriteError(w, http.StatusBadRequest, "Starting date is required", "startingDate must be in YYYY-MM-DD format")
		return
	}
	updated, err := h.service.UpdateSettings(r.Context(), cashflow.Settings{
		StartingBalance:  settings.StartingBalance,
		StartingDate:     settings.StartingDate,
		WarningThreshold: settings.WarningThreshold,
		FloorThreshold:   settings.FloorThreshold,
		CategoryColors:   settings.CategoryColors,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GetMonth godoc
// @Summary Project a month
// @Description Daily ledger of the month. Send Accept: text/csv for a CSV export.
// @Tags Cashflow
// @Produce json,text/csv
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} MonthDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Router /api/cashflow/month/{month} [get]
// @Security XUserId
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := monthVar(w, r)
	if !ok {
		return
	}
	log.Tracef("Projecting month %s", month)

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.service.Ledger(r.Context(), month)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write ledger: %v", err)
		}
		return
	}

	projected, err := h.service.ProjectMonth(r.Context(), month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	days := make([]DayDTO, 0, len(projected.Days))
	for _, day := range projected.Days {
		days = append(days, dayToDTO(day))
	}
	writeJSON(w, http.StatusOK, MonthDTO{
		Month:           projected.Month.String(),
		StartingBalance: projected.StartingBalance,
		Days:            days,
	})
}

// GetStats godoc
// @Summary Month summary and alerts
// @Tags Cashflow
// @Produce json
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} StatsDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Router /api/cashflow/month/{month}/stats [get]
// @Security XUserId
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	month, ok := monthVar(w, r)
	if !ok {
		return
	}
	monthStats, err := h.service.StatsFor(r.Context(), month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	alerts := make([]AlertDTO, 0, len(monthStats.Alerts))
	for _, alert := range monthStats.Alerts {
		alerts = append(alerts, AlertDTO{Level: alert.Level, Title: alert.Title, Message: alert.Message})
	}
	writeJSON(w, http.StatusOK, StatsDTO{
		Month:           monthStats.Month.String(),
		StartingBalance: monthStats.StartingBalance,
		Summary:         summaryToDTO(monthStats.Summary),
		Status:          monthStats.Status,
		Alerts:          alerts,
	})
}

// GetTodaysBalance godoc
// @Summary Balance at the end of today
// @Tags Cashflow
// @Produce json
// @Success 200 {object} TodaysBalanceDTO
// @Router /api/cashflow/balance/today [get]
// @Security XUserId
func (h *Handler) GetTodaysBalance(w http.ResponseWriter, r *http.Request) {
	today, err := h.service.TodaysBalance(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TodaysBalanceDTO{Date: today.Date, Balance: today.Balance, Status: today.Status})
}

// GetTimeline godoc
// @Summary Summaries of consecutive months
// @Tags Cashflow
// @Produce json
// @Param from query string true "First month (YYYY-MM)"
// @Param range query string false "6m, 1y, 2y, 5y, 10y or 15y"
// @Success 200 {array} TimelineMonthDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Router /api/cashflow/timeline [get]
// @Security XUserId
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	from, err := calendar.ParseYearMonth(r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (month) format", "from must be in YYYY-MM format")
		return
	}
	months := stats.Range(r.URL.Query().Get("range")).Months()

	timeline, err := h.service.Timeline(r.Context(), from, months)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response := make([]TimelineMonthDTO, 0, len(timeline))
	for _, month := range timeline {
		response = append(response, TimelineMonthDTO{
			Month:           month.Month.String(),
			StartingBalance: month.StartingBalance,
			Summary:         summaryToDTO(month.Summary),
			Status:          month.Status,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// GetCreditCardStatus godoc
// @Summary Credit card balance and payoff
// @Tags Cashflow
// @Produce json
// @Param expenseId path string true "Expense ID"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} CreditCardStatusDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Expense not found"
// @Router /api/cashflow/expense/{expenseId}/card [get]
// @Security XUserId
func (h *Handler) GetCreditCardStatus(w http.ResponseWriter, r *http.Request) {
	month, err := calendar.ParseYearMonth(r.URL.Query().Get("month"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "month must be in YYYY-MM format")
		return
	}
	status, err := h.service.CreditCardStatus(r.Context(), mux.Vars(r)["expenseId"], month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditCardStatusToDTO(status))
}

// GetPaymentImpact godoc
// @Summary Effect of a one-off credit card payment
// @Tags Cashflow
// @Produce json
// @Param expenseId path string true "Expense ID"
// @Param month query string true "Month (YYYY-MM)"
// @Param amount query string true "Payment made once instead of the regular one"
// @Success 200 {object} PaymentImpactDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Expense not found"
// @Router /api/cashflow/expense/{expenseId}/card/impact [get]
// @Security XUserId
func (h *Handler) GetPaymentImpact(w http.ResponseWriter, r *http.Request) {
	month, err := calendar.ParseYearMonth(r.URL.Query().Get("month"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "month must be in YYYY-MM format")
		return
	}
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid amount", err.Error())
		return
	}
	impact, err := h.service.PaymentImpact(r.Context(), mux.Vars(r)["expenseId"], month, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaymentImpactDTO{
		RegularMonths:  impact.RegularMonths,
		AdjustedMonths: impact.AdjustedMonths,
		MonthsSaved:    impact.MonthsSaved,
		InterestSaved:  impact.InterestSaved.Round(2),
	})
}

// AddIncome godoc
// @Summary Add an income
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param income body cashflow.Income true "Income"
// @Success 201 {object} cashflow.Income
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/cashflow/income [post]
// @Security XUserId
func (h *Handler) AddIncome(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding income")
	var income cashflow.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	_, added, err := h.service.AddIncome(r.Context(), income)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// UpdateIncome godoc
// @Summary Update an income
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param itemId path string true "Income ID"
// @Param income body cashflow.Income true "Income"
// @Success 200 {object} cashflow.Income
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Income not found"
// @Router /api/cashflow/income/{itemId} [put]
// @Security XUserId
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	var income cashflow.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	income.Id = mux.Vars(r)["itemId"]
	log.Debugf("Updating income %s", income.Id)
	if _, err := h.service.UpdateIncome(r.Context(), income); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, income)
}

// DeleteIncome godoc
// @Summary Delete an income
// @Tags Cashflow
// @Param itemId path string true "Income ID"
// @Success 204
// @Failure 404 {string} string "Income not found"
// @Router /api/cashflow/income/{itemId} [delete]
// @Security XUserId
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeleteIncome(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetExpense godoc
// @Summary Get an expense
// @Tags Cashflow
// @Produce json
// @Param itemId path string true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 404 {string} string "Expense not found"
// @Router /api/cashflow/expense/{itemId} [get]
// @Security XUserId
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["itemId"]
	data, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	expense, ok := data.FindExpense(id)
	if !ok {
		http.Error(w, "expense "+id+" not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, expenseToDTO(expense))
}

// AddExpense godoc
// @Summary Add an expense
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param expense body cashflow.Expense true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/cashflow/expense [post]
// @Security XUserId
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding expense")
	var expense cashflow.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	_, added, err := h.service.AddExpense(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToDTO(added))
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param itemId path string true "Expense ID"
// @Param expense body cashflow.Expense true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Expense not found"
// @Router /api/cashflow/expense/{itemId} [put]
// @Security XUserId
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var expense cashflow.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	expense.Id = mux.Vars(r)["itemId"]
	log.Debugf("Updating expense %s", expense.Id)
	if _, err := h.service.UpdateExpense(r.Context(), expense); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToDTO(expense))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Cashflow
// @Param itemId path string true "Expense ID"
// @Success 204
// @Failure 404 {string} string "Expense not found"
// @Router /api/cashflow/expense/{itemId} [delete]
// @Security XUserId
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeleteExpense(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveOverride godoc
// @Summary Move, resize, split or skip one occurrence
// @Description newDate "SKIPPED" removes the occurrence
// @Tags Cashflow
// @Accept json
// @Produce json
// @Param kind path string true "income or expense"
// @Param itemId path string true "Item ID"
// @Param override body instance_override.Override true "Override"
// @Success 200 {object} instance_override.Override
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Item not found"
// @Router /api/cashflow/{kind}/{itemId}/override [put]
// @Security XUserId
func (h *Handler) SaveOverride(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var override instance_override.Override
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Debugf("Saving override of %s %s on %s", vars["kind"], vars["itemId"], override.OriginalDate)
	if _, err := h.service.SaveInstanceOverride(r.Context(), cashflow.Kind(vars["kind"]), vars["itemId"], override); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}

// RemoveOverride godoc
// @Summary Restore one occurrence to its schedule
// @Tags Cashflow
// @Param kind path string true "income or expense"
// @Param itemId path string true "Item ID"
// @Param date path string true "Original date (YYYY-MM-DD)"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Item not found"
// @Router /api/cashflow/{kind}/{itemId}/override/{date} [delete]
// @Security XUserId
func (h *Handler) RemoveOverride(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	originalDate, err := calendar.Parse(vars["date"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
		return
	}
	if _, err := h.service.RemoveInstanceOverride(r.Context(), cashflow.Kind(vars["kind"]), vars["itemId"], originalDate); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func monthVar(w http.ResponseWriter, r *http.Request) (calendar.YearMonth, bool) {
	month, err := calendar.ParseYearMonth(mux.Vars(r)["month"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "month must be in YYYY-MM format")
		return calendar.YearMonth{}, false
	}
	return month, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, cashflow.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cashflow.ErrInvalidFrequency),
		errors.Is(err, cashflow.ErrInvalidKind),
		errors.Is(err, ErrNotCreditCard):
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		log.Errorf("cash-flow request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dayToDTO(day projection.DayRecord) DayDTO {
	events := make([]EventDTO, 0, len(day.Events))
	for _, e := range day.Events {
		events = append(events, EventDTO{
			Type:         e.Type,
			Name:         e.Name,
			Amount:       e.Amount,
			ItemId:       e.ItemId,
			Category:     e.Category,
			IsOverride:   e.IsOverride,
			IsSkipped:    e.IsSkipped,
			IsSplit:      e.IsSplit,
			SplitPart:    e.SplitPart,
			OriginalDate: e.OriginalDate,
			InstanceDate: e.InstanceDate,
		})
	}
	return DayDTO{Day: day.Day, Date: day.Date, Events: events, Change: day.Change, Balance: day.Balance}
}

func summaryToDTO(summary stats.Summary) SummaryDTO {
	return SummaryDTO{
		LowestBalance:  summary.LowestBalance,
		LowestDay:      summary.LowestDay,
		TotalIncome:    summary.TotalIncome,
		TotalExpenses:  summary.TotalExpenses,
		EndingBalance:  summary.EndingBalance,
		VariableBudget: summary.VariableBudget,
	}
}

func expenseToDTO(expense cashflow.Expense) ExpenseDTO {
	dto := ExpenseDTO{Expense: expense}
	if plan := expense.PaymentPlan; plan != nil {
		dto.PlanSummary = &PaymentPlanSummaryDTO{
			CalculatedPayment: plan.CalculatedPayment(),
			FinalPaymentDate:  plan.FinalPaymentDate(expense.ScheduleStart()),
		}
	}
	return dto
}

func creditCardStatusToDTO(status credit_card.Status) CreditCardStatusDTO {
	dto := CreditCardStatusDTO{
		Remaining:       status.Remaining.Round(2),
		IsPaidOff:       status.IsPaidOff,
		MonthsRemaining: status.MonthsRemaining,
	}
	if status.PayoffMonth != nil {
		dto.PayoffMonth = status.PayoffMonth.String()
	}
	return dto
}
