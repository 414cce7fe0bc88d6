package credit_card

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/shopspring/decimal"
)

type Payoff struct {
	// Months until the balance reaches zero, or NeverPaysOff.
	Months        int
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	LastPayment   decimal.Decimal
}

func (p Payoff) Never() bool {
	return p.Months == NeverPaysOff
}

// ProjectPayoff simulates interest-then-payment months until the balance is paid. A payment
// that does not cover the first month's interest never pays the balance off.
func ProjectPayoff(balance, payment, apr decimal.Decimal) Payoff {
	never := Payoff{Months: NeverPaysOff, TotalInterest: decimal.Zero, TotalPaid: decimal.Zero, LastPayment: decimal.Zero}
	if !balance.IsPositive() {
		return Payoff{Months: 0, TotalInterest: decimal.Zero, TotalPaid: decimal.Zero, LastPayment: decimal.Zero}
	}
	if !payment.IsPositive() {
		return never
	}
	rate := cashflow.MonthlyRate(apr)
	if payment.LessThanOrEqual(balance.Mul(rate)) {
		return never
	}

	remaining := balance
	payoff := Payoff{TotalInterest: decimal.Zero, TotalPaid: decimal.Zero, LastPayment: decimal.Zero}
	for remaining.IsPositive() && payoff.Months < MaxPayoffMonths {
		interest := remaining.Mul(rate).Round(balancePrecision)
		remaining = remaining.Add(interest)
		paid := decimal.Min(payment, remaining)
		remaining = remaining.Sub(paid)

		payoff.Months++
		payoff.TotalInterest = payoff.TotalInterest.Add(interest)
		payoff.TotalPaid = payoff.TotalPaid.Add(paid)
		payoff.LastPayment = paid
	}
	if remaining.IsPositive() {
		return never
	}
	return payoff
}

type Status struct {
	Remaining decimal.Decimal
	IsPaidOff bool
	// MonthsRemaining is NeverPaysOff when the regular payment cannot clear the balance.
	MonthsRemaining int
	// PayoffMonth is nil when paid off already or never.
	PayoffMonth *calendar.YearMonth
}

// StatusAt reports the card's balance in month and how long the regular payment needs to clear it.
func StatusAt(expense cashflow.Expense, month calendar.YearMonth) Status {
	if expense.CreditCard == nil {
		return Status{Remaining: decimal.Zero, IsPaidOff: true}
	}
	balance := BalanceAtMonth(expense, month)
	status := Status{Remaining: decimal.Max(balance.RemainingBalance, decimal.Zero), IsPaidOff: balance.IsPaidOff}
	if status.IsPaidOff || !status.Remaining.IsPositive() {
		return status
	}

	payoff := ProjectPayoff(status.Remaining, expense.Amount, expense.CreditCard.Apr)
	status.MonthsRemaining = payoff.Months
	if !payoff.Never() {
		payoffMonth := month.AddMonths(payoff.Months)
		status.PayoffMonth = &payoffMonth
	}
	return status
}

type PaymentImpact struct {
	RegularMonths  int
	AdjustedMonths int
	MonthsSaved    int
	InterestSaved  decimal.Decimal
}

// OneOffPaymentImpact compares paying adjusted instead of regular once against always paying regular.
func OneOffPaymentImpact(balance, regular, adjusted, apr decimal.Decimal) PaymentImpact {
	regularPayoff := ProjectPayoff(balance, regular, apr)
	adjustedBalance := decimal.Max(decimal.Zero, balance.Sub(adjusted.Sub(regular)))
	adjustedPayoff := ProjectPayoff(adjustedBalance, regular, apr)
	return PaymentImpact{
		RegularMonths:  regularPayoff.Months,
		AdjustedMonths: adjustedPayoff.Months,
		MonthsSaved:    regularPayoff.Months - adjustedPayoff.Months,
		InterestSaved:  regularPayoff.TotalInterest.Sub(adjustedPayoff.TotalInterest),
	}
}
