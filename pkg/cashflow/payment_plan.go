package cashflow

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/shopspring/decimal"
)

// CalculatedPayment spreads the plan's debt evenly over its payments. Semimonthly plans
// pay twice for every counted month.
func (p PaymentPlan) CalculatedPayment() decimal.Decimal {
	if p.PaymentCount <= 0 {
		return decimal.Zero
	}
	payments := int64(p.PaymentCount)
	if p.Frequency == Semimonthly {
		payments *= 2
	}
	return p.TotalDebt.Div(decimal.NewFromInt(payments)).Round(2)
}

// SemimonthlySecondDay is the second payment day of a semimonthly schedule whose first
// payment falls on firstDay: the configured day when set, otherwise the 15th for schedules
// starting on or before the 15th and the 28th after it.
func SemimonthlySecondDay(configured, firstDay int) int {
	switch {
	case configured != 0:
		return configured
	case firstDay <= 15:
		return 15
	default:
		return 28
	}
}

// FinalPaymentDate returns the date of the last payment of a plan starting on start, or a
// zero date for unlimited plans. Semimonthly plans count months, so the last payment is the
// second one of the final month when that month has one.
func (p PaymentPlan) FinalPaymentDate(start calendar.Date) calendar.Date {
	if p.PaymentCount <= 0 || start.IsZero() {
		return calendar.Date{}
	}
	remaining := int(p.PaymentCount) - 1
	startMonth := start.YearMonth()
	switch p.Frequency {
	case Weekly:
		return start.AddDays(remaining * 7)
	case Biweekly:
		return start.AddDays(remaining * 14)
	case Bimonthly:
		return startMonth.AddMonths(remaining * 2).Date(start.Day())
	case Semimonthly:
		month := startMonth.AddMonths(remaining)
		first := month.Date(start.Day())
		if second := month.Date(SemimonthlySecondDay(int(p.SecondDay), start.Day())); second.Day() > first.Day() {
			return second
		}
		return first
	default:
		return startMonth.AddMonths(remaining).Date(start.Day())
	}
}
