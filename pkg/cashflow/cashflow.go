package cashflow

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	IncomeKind  Kind = "income"
	ExpenseKind Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == IncomeKind || k == ExpenseKind
}

type Frequency string

const (
	Once        Frequency = "once"
	Weekly      Frequency = "weekly"
	Biweekly    Frequency = "biweekly"
	Semimonthly Frequency = "semimonthly"
	Monthly     Frequency = "monthly"
	Bimonthly   Frequency = "bimonthly"
	// Quarterly is accepted but scheduled like Monthly.
	Quarterly            Frequency = "quarterly"
	PaymentPlanFrequency Frequency = "payment_plan"
	SplitFrequency       Frequency = "split"
)

var incomeFrequencies = []Frequency{Once, Weekly, Biweekly, Semimonthly, Monthly}
var expenseFrequencies = []Frequency{Once, Weekly, Biweekly, Semimonthly, Monthly, Bimonthly, Quarterly, PaymentPlanFrequency, SplitFrequency}

// Item is either an Income or an Expense.
type Item interface {
	Kind() Kind
	Base() ItemBase
}

// ItemBase holds the fields shared by incomes and expenses.
type ItemBase struct {
	Id        string                 `json:"id"`
	Name      string                 `json:"name"`
	Amount    decimal.Decimal        `json:"amount"`
	Frequency Frequency              `json:"frequency"`
	StartDate calendar.Date          `json:"startDate,omitzero"`
	Date      calendar.Date          `json:"date,omitzero"`
	Overrides instance_override.Set `json:"overrides,omitempty"`
}

// ScheduleStart is the date a recurring schedule is anchored to.
func (b ItemBase) ScheduleStart() calendar.Date {
	if !b.StartDate.IsZero() {
		return b.StartDate
	}
	return b.Date
}

// OneTimeDate is the date of a one-time item.
func (b ItemBase) OneTimeDate() calendar.Date {
	if !b.Date.IsZero() {
		return b.Date
	}
	return b.StartDate
}

type Income struct {
	ItemBase
}

func (i Income) Kind() Kind {
	return IncomeKind
}

func (i Income) Base() ItemBase {
	return i.ItemBase
}

type Expense struct {
	ItemBase
	Category    string       `json:"category"`
	CreditCard  *CreditCard  `json:"creditCard,omitempty"`
	PaymentPlan *PaymentPlan `json:"paymentPlan,omitempty"`
	SplitConfig *SplitConfig `json:"splitConfig,omitempty"`
}

func (e Expense) Kind() Kind {
	return ExpenseKind
}

func (e Expense) Base() ItemBase {
	return e.ItemBase
}

// CreditCard is a revolving debt paid by the expense amount each month.
type CreditCard struct {
	// TotalDebt is the debt the card was registered with; projections use CurrentBalance.
	TotalDebt decimal.Decimal `json:"totalDebt"`
	// CurrentBalance is the statement balance as of BalanceAsOfDate. Older documents lack it.
	CurrentBalance  decimal.NullDecimal `json:"currentBalance"`
	BalanceAsOfDate calendar.Date       `json:"balanceAsOfDate,omitzero"`
	Apr             decimal.Decimal     `json:"apr"`
	MinimumPayment  decimal.Decimal     `json:"minimumPayment"`
}

var monthsTimesPercent = decimal.NewFromInt(12 * 100)

// Balance returns the snapshot balance, falling back to TotalDebt.
func (c CreditCard) Balance() decimal.Decimal {
	if c.CurrentBalance.Valid {
		return c.CurrentBalance.Decimal
	}
	return c.TotalDebt
}

func (c CreditCard) MonthlyRate() decimal.Decimal {
	return MonthlyRate(c.Apr)
}

// MonthlyRate converts an annual percentage rate to the monthly periodic rate (apr/12/100).
func MonthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(monthsTimesPercent)
}

type PaymentPlan struct {
	TotalDebt decimal.Decimal `json:"totalDebt"`
	// PaymentCount caps the number of payments; 0 means unlimited.
	PaymentCount FlexInt   `json:"paymentCount"`
	Frequency    Frequency `json:"frequency"`
	// SecondDay is the second payment day of a semimonthly plan.
	SecondDay FlexInt `json:"secondDay,omitempty"`
}

// SplitConfig describes an expense paid in two fixed parts every month.
type SplitConfig struct {
	FirstDay     FlexInt         `json:"firstDay"`
	FirstAmount  decimal.Decimal `json:"firstAmount"`
	SecondDay    FlexInt         `json:"secondDay"`
	SecondAmount decimal.Decimal `json:"secondAmount"`
}
