package occurrence

import (
	"slices"

	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/credit_card"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/shopspring/decimal"
)

// Occurrence is one concrete payment of an item inside a month.
type Occurrence struct {
	Day        int
	Date       calendar.Date
	Amount     decimal.Decimal
	IsOverride bool
	IsSkipped  bool
	IsSplit    bool
	// SplitPart is 1 or 2 for split payments, 0 otherwise.
	SplitPart int
	// OriginalDate is set when an override produced the occurrence.
	OriginalDate calendar.Date
}

// InMonth lists the occurrences of a schedule in month, sorted by day. Occurrences moved into
// month from another month by an override are included, and skipped occurrences are kept with
// a zero amount on their original date.
func InMonth(s Schedule, month calendar.YearMonth) []Occurrence {
	g := &generator{schedule: s, month: month}
	g.inbound()

	if s.Start.IsZero() {
		return g.result()
	}
	switch s.Kind {
	case OneTime:
		g.scheduled(s.Start, s.Amount, 0)
	case CreditCard:
		g.creditCard()
	case SplitMonthly:
		g.splitMonthly()
	case Recurring:
		g.recurring()
	}
	return g.result()
}

type generator struct {
	schedule    Schedule
	month       calendar.YearMonth
	occurrences []Occurrence
}

func (g *generator) emit(o Occurrence) {
	o.Day = o.Date.Day()
	g.occurrences = append(g.occurrences, o)
}

func (g *generator) inbound() {
	for _, override := range g.schedule.Overrides.InboundTo(g.month) {
		g.placeOverride(override, g.schedule.Amount, 0)
	}
}

// placeOverride emits the in-month placements of a non-skipped override.
func (g *generator) placeOverride(override instance_override.Override, amount decimal.Decimal, splitPart int) {
	for _, p := range override.Placements(amount) {
		if !g.month.Contains(p.Date) {
			continue
		}
		part := splitPart
		if p.SplitPart > 0 {
			part = p.SplitPart
		}
		g.emit(Occurrence{
			Date:         p.Date,
			Amount:       p.Amount,
			IsOverride:   true,
			IsSplit:      part > 0,
			SplitPart:    part,
			OriginalDate: override.OriginalDate,
		})
	}
}

func (g *generator) skipped(date calendar.Date, splitPart int) {
	if !g.month.Contains(date) {
		return
	}
	g.emit(Occurrence{
		Date:         date,
		Amount:       decimal.Zero,
		IsOverride:   true,
		IsSkipped:    true,
		IsSplit:      splitPart > 0,
		SplitPart:    splitPart,
		OriginalDate: date,
	})
}

// scheduled emits the occurrence regularly due on date, resolved against its override.
func (g *generator) scheduled(date calendar.Date, amount decimal.Decimal, splitPart int) {
	override, ok := g.schedule.Overrides.Resolve(date)
	switch {
	case !ok:
		if g.month.Contains(date) {
			g.emit(Occurrence{Date: date, Amount: amount, IsSplit: splitPart > 0, SplitPart: splitPart})
		}
	case override.IsSkipped():
		g.skipped(date, splitPart)
	default:
		g.placeOverride(override, amount, splitPart)
	}
}

// creditCard emits the month's card payment as computed by the amortizer. A skipped payment
// is shown even when the card is paid off.
func (g *generator) creditCard() {
	s := g.schedule
	due := g.month.Date(s.Start.Day())
	override, ok := s.Overrides.Resolve(due)
	if ok && override.IsSkipped() {
		g.skipped(due, 0)
		return
	}

	status := credit_card.BalanceAtMonth(s.card, g.month)
	if status.IsPaidOff || !status.PaymentThisMonth.IsPositive() {
		return
	}
	if g.month.Before(s.Start.YearMonth()) {
		return
	}
	if ok {
		g.placeOverride(override, status.PaymentThisMonth, 0)
		return
	}
	g.emit(Occurrence{Date: due, Amount: status.PaymentThisMonth})
}

func (g *generator) splitMonthly() {
	s := g.schedule
	if s.Split == nil || g.month.Before(s.Start.YearMonth()) {
		return
	}
	g.scheduled(g.month.Date(int(s.Split.FirstDay)), s.Split.FirstAmount, 1)
	g.scheduled(g.month.Date(int(s.Split.SecondDay)), s.Split.SecondAmount, 2)
}

func (g *generator) recurring() {
	s := g.schedule
	since := g.month.MonthsSince(s.Start.YearMonth())

	switch s.Cadence {
	case WeeklyCadence:
		g.stepping(7)
	case BiweeklyCadence:
		g.stepping(14)
	case SemimonthlyCadence:
		if since < 0 || !s.withinCap(since+1) {
			return
		}
		first := g.month.Date(s.Start.Day())
		g.scheduled(first, s.Amount, 0)
		if second := g.month.Date(s.secondDay()); second.Day() > first.Day() {
			g.scheduled(second, s.Amount, 0)
		}
	case BimonthlyCadence:
		if since < 0 || since%2 != 0 || !s.withinCap(since/2+1) {
			return
		}
		g.scheduled(g.month.Date(s.Start.Day()), s.Amount, 0)
	default:
		if since < 0 || !s.withinCap(since+1) {
			return
		}
		g.scheduled(g.month.Date(s.Start.Day()), s.Amount, 0)
	}
}

// stepping walks a fixed interval of days from the start date, counting payments from 1.
func (g *generator) stepping(interval int) {
	s := g.schedule
	first, last := g.month.FirstDay(), g.month.LastDay()
	date, payment := s.Start, 1
	if date.Before(first) {
		steps := (date.DaysUntil(first) + interval - 1) / interval
		date = date.AddDays(steps * interval)
		payment += steps
	}
	for ; !date.After(last) && s.withinCap(payment); date, payment = date.AddDays(interval), payment+1 {
		g.scheduled(date, s.Amount, 0)
	}
}

func (s Schedule) secondDay() int {
	return cashflow.SemimonthlySecondDay(s.SecondDay, s.Start.Day())
}

// result drops duplicates by date (and amount, for split payments), keeping the first, and
// orders the rest by day.
func (g *generator) result() []Occurrence {
	seen := make(map[string]bool, len(g.occurrences))
	var unique []Occurrence
	for _, o := range g.occurrences {
		key := o.Date.String()
		if o.IsSplit {
			key += "-split-" + o.Amount.String()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, o)
	}
	slices.SortStableFunc(unique, func(a, b Occurrence) int {
		return a.Day - b.Day
	})
	return unique
}
