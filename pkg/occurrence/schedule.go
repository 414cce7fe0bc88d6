package occurrence

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/shopspring/decimal"
)

// Kind is the effective schedule of an item, resolved once from its frequency and sub-records.
type Kind int

const (
	OneTime Kind = iota + 1
	CreditCard
	SplitMonthly
	Recurring
)

func (k Kind) String() string {
	switch k {
	case OneTime:
		return "one_time"
	case CreditCard:
		return "credit_card"
	case SplitMonthly:
		return "split"
	case Recurring:
		return "recurring"
	default:
		return "unknown"
	}
}

type Cadence int

const (
	MonthlyCadence Cadence = iota
	WeeklyCadence
	BiweeklyCadence
	SemimonthlyCadence
	BimonthlyCadence
)

// Schedule is everything the generator needs to place one item on the calendar.
type Schedule struct {
	Kind    Kind
	Cadence Cadence
	Amount  decimal.Decimal
	// Start is the one-time date, or the anchor of recurring schedules.
	Start calendar.Date
	// Cap limits the number of payments; 0 is unlimited.
	Cap int
	// SecondDay is the payment plan's semimonthly second day, 0 for the default rule.
	SecondDay int
	Split     *cashflow.SplitConfig
	Overrides instance_override.Set

	card cashflow.Expense
}

// ScheduleOf resolves the effective schedule of an item. One-time items win over every
// sub-record, then credit cards, then split expenses; everything else recurs on the
// payment plan's cadence when there is a plan, otherwise on the item's own.
func ScheduleOf(item cashflow.Item) Schedule {
	base := item.Base()
	s := Schedule{
		Kind:      Recurring,
		Amount:    base.Amount,
		Start:     base.ScheduleStart(),
		Overrides: base.Overrides,
	}
	frequency := base.Frequency

	if base.Frequency == cashflow.Once {
		s.Kind = OneTime
		s.Start = base.OneTimeDate()
		return s
	}

	if expense, ok := item.(cashflow.Expense); ok {
		switch {
		case expense.CreditCard != nil:
			s.Kind = CreditCard
			s.card = expense
			return s
		case expense.Frequency == cashflow.SplitFrequency:
			s.Kind = SplitMonthly
			s.Split = expense.SplitConfig
			return s
		case expense.PaymentPlan != nil:
			s.Cap = int(expense.PaymentPlan.PaymentCount)
			s.SecondDay = int(expense.PaymentPlan.SecondDay)
			if expense.PaymentPlan.Frequency != "" {
				frequency = expense.PaymentPlan.Frequency
			}
		}
	}
	s.Cadence = cadenceOf(frequency)
	return s
}

// cadenceOf maps a frequency to its calendar cadence. Quarterly, payment_plan and unknown
// values fall through to monthly.
func cadenceOf(f cashflow.Frequency) Cadence {
	switch f {
	case cashflow.Weekly:
		return WeeklyCadence
	case cashflow.Biweekly:
		return BiweeklyCadence
	case cashflow.Semimonthly:
		return SemimonthlyCadence
	case cashflow.Bimonthly:
		return BimonthlyCadence
	default:
		return MonthlyCadence
	}
}

func (s Schedule) withinCap(payments int) bool {
	return s.Cap == 0 || payments <= s.Cap
}
