package credit_card

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/shopspring/decimal"
)

// MaxPayoffMonths bounds payoff projections (30 years).
const MaxPayoffMonths = 360

// NeverPaysOff marks a payoff that does not complete within MaxPayoffMonths.
const NeverPaysOff = -1

const balancePrecision = 8

type MonthStatus struct {
	// RemainingBalance includes the month's interest but not its payment.
	RemainingBalance decimal.Decimal
	IsPaidOff        bool
	PaymentThisMonth decimal.Decimal
}

// BalanceAtMonth replays the card from its balance snapshot up to target and returns the
// balance and the payment due in target.
//
// Months from the snapshot month (inclusive) to target (exclusive) accrue interest and then
// subtract that month's payment once payments have started. A payment moved by an override
// only counts when it lands before target. In the snapshot month itself the recorded
// balance is returned as is.
func BalanceAtMonth(expense cashflow.Expense, target calendar.YearMonth) MonthStatus {
	card := expense.CreditCard
	if card == nil {
		return MonthStatus{RemainingBalance: decimal.Zero, IsPaidOff: true, PaymentThisMonth: decimal.Zero}
	}
	rate := card.MonthlyRate()
	schedule := newPaymentSchedule(expense)
	snapshot := snapshotMonth(expense, target)
	balance := card.Balance()

	if target.Before(snapshot) {
		return MonthStatus{RemainingBalance: balance, IsPaidOff: false, PaymentThisMonth: decimal.Zero}
	}

	for month := snapshot; month.Before(target); month = month.Next() {
		if !balance.IsPositive() {
			break
		}
		if month.Before(schedule.firstMonth) {
			continue
		}
		balance = accrue(balance, rate)
		balance = balance.Sub(schedule.bankedPayment(month, target))
		if balance.IsNegative() {
			balance = decimal.Zero
		}
	}

	payment := decimal.Zero
	if balance.IsPositive() && !target.Before(schedule.firstMonth) {
		balance = accrue(balance, rate)
		payment = schedule.dueIn(target, balance)
	}

	status := MonthStatus{
		RemainingBalance: decimal.Max(balance, decimal.Zero),
		IsPaidOff:        !balance.IsPositive(),
		PaymentThisMonth: payment,
	}
	if target.Equal(snapshot) {
		status.RemainingBalance = card.Balance()
		status.IsPaidOff = !card.Balance().IsPositive()
	}
	return status
}

// snapshotMonth is the month of BalanceAsOfDate. Documents without it are treated as if
// the balance was recorded when payments started.
func snapshotMonth(expense cashflow.Expense, target calendar.YearMonth) calendar.YearMonth {
	if !expense.CreditCard.BalanceAsOfDate.IsZero() {
		return expense.CreditCard.BalanceAsOfDate.YearMonth()
	}
	if start := expense.ScheduleStart(); !start.IsZero() {
		return start.YearMonth()
	}
	return target
}

type paymentSchedule struct {
	expense    cashflow.Expense
	firstMonth calendar.YearMonth
	day        int
}

func newPaymentSchedule(expense cashflow.Expense) paymentSchedule {
	start := expense.ScheduleStart()
	if start.IsZero() {
		return paymentSchedule{expense: expense, day: 1}
	}
	return paymentSchedule{expense: expense, firstMonth: start.YearMonth(), day: start.Day()}
}

// dueDate is the regular payment date in month.
func (s paymentSchedule) dueDate(month calendar.YearMonth) calendar.Date {
	return month.Date(s.day)
}

// bankedPayment is what was paid in a month before target.
func (s paymentSchedule) bankedPayment(month, target calendar.YearMonth) decimal.Decimal {
	regular := s.expense.Amount
	override, ok := s.expense.Overrides.Resolve(s.dueDate(month))
	if !ok {
		return regular
	}
	if override.IsSkipped() {
		return decimal.Zero
	}
	if override.NewDate.YearMonth().Before(target) {
		return override.AmountOr(regular)
	}
	return decimal.Zero
}

// dueIn is the payment due in target given the balance after the month's interest.
func (s paymentSchedule) dueIn(target calendar.YearMonth, balance decimal.Decimal) decimal.Decimal {
	override, ok := s.expense.Overrides.Resolve(s.dueDate(target))
	switch {
	case ok && override.IsSkipped():
		return decimal.Zero
	case ok && override.NewAmount.Valid:
		return decimal.Min(override.NewAmount.Decimal, balance)
	default:
		return decimal.Min(s.expense.Amount, balance)
	}
}

func accrue(balance, rate decimal.Decimal) decimal.Decimal {
	return balance.Add(balance.Mul(rate)).Round(balancePrecision)
}
