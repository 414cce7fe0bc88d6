package projection

import (
	"fmt"

	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/occurrence"
	"github.com/shopspring/decimal"
)

// Event is one occurrence of an item on a projected day.
type Event struct {
	Type         cashflow.Kind
	Name         string
	Amount       decimal.Decimal
	ItemId       string
	Category     string
	IsOverride   bool
	IsSkipped    bool
	IsSplit      bool
	SplitPart    int
	OriginalDate calendar.Date
	InstanceDate calendar.Date
}

// Signed returns the event amount as a balance change.
func (e Event) Signed() decimal.Decimal {
	if e.Type == cashflow.ExpenseKind {
		return e.Amount.Neg()
	}
	return e.Amount
}

type DayRecord struct {
	Day     int
	Date    calendar.Date
	Events  []Event
	Change  decimal.Decimal
	Balance decimal.Decimal
}

type entry struct {
	kind     cashflow.Kind
	base     cashflow.ItemBase
	category string
	schedule occurrence.Schedule
}

func (e entry) event(o occurrence.Occurrence) Event {
	name := e.base.Name
	if o.SplitPart > 0 && e.kind == cashflow.ExpenseKind {
		name = fmt.Sprintf("%s (%d/2)", name, o.SplitPart)
	}
	return Event{
		Type:         e.kind,
		Name:         name,
		Amount:       o.Amount,
		ItemId:       e.base.Id,
		Category:     e.category,
		IsOverride:   o.IsOverride,
		IsSkipped:    o.IsSkipped,
		IsSplit:      o.IsSplit,
		SplitPart:    o.SplitPart,
		OriginalDate: o.OriginalDate,
		InstanceDate: o.Date,
	}
}

// Projector projects the balance of one snapshot of the account. Schedules are resolved once;
// a Projector never changes after New and can be shared between goroutines.
type Projector struct {
	startingBalance decimal.Decimal
	startingDate    calendar.Date
	entries         []entry
}

func New(data cashflow.Data) *Projector {
	entries := make([]entry, 0, len(data.Incomes)+len(data.Expenses))
	for _, income := range data.Incomes {
		entries = append(entries, entry{
			kind:     cashflow.IncomeKind,
			base:     income.ItemBase,
			schedule: occurrence.ScheduleOf(income),
		})
	}
	for _, expense := range data.Expenses {
		entries = append(entries, entry{
			kind:     cashflow.ExpenseKind,
			base:     expense.ItemBase,
			category: expense.Category,
			schedule: occurrence.ScheduleOf(expense),
		})
	}
	return &Projector{
		startingBalance: data.StartingBalance,
		startingDate:    data.StartingDate,
		entries:         entries,
	}
}

// BuildMonth projects a single month of data.
func BuildMonth(data cashflow.Data, month calendar.YearMonth) []DayRecord {
	return New(data).BuildMonth(month)
}

// BuildMonth returns one record per day of month, from the starting day when month is the
// starting month. Incomes come before expenses within a day.
func (p *Projector) BuildMonth(month calendar.YearMonth) []DayRecord {
	eventsByDay := p.eventsByDay(month)
	balance := p.BalanceAtMonthStart(month)

	firstDay := 1
	if month.Contains(p.startingDate) {
		firstDay = p.startingDate.Day()
	}
	days := make([]DayRecord, 0, month.Days()-firstDay+1)
	for day := firstDay; day <= month.Days(); day++ {
		change := decimal.Zero
		for _, e := range eventsByDay[day] {
			change = change.Add(e.Signed())
		}
		balance = balance.Add(change)
		days = append(days, DayRecord{
			Day:     day,
			Date:    month.Date(day),
			Events:  eventsByDay[day],
			Change:  change,
			Balance: balance,
		})
	}
	return days
}

func (p *Projector) eventsByDay(month calendar.YearMonth) map[int][]Event {
	byDay := make(map[int][]Event)
	for _, e := range p.entries {
		for _, o := range occurrence.InMonth(e.schedule, month) {
			byDay[o.Day] = append(byDay[o.Day], e.event(o))
		}
	}
	return byDay
}

// BalanceAtMonthStart replays every occurrence from the starting date up to the end of the
// month before month. Months up to the starting month open with the starting balance.
func (p *Projector) BalanceAtMonthStart(month calendar.YearMonth) decimal.Decimal {
	if p.startingDate.IsZero() {
		return p.startingBalance
	}
	return p.replay(month.FirstDay().AddDays(-1))
}

// BalanceOn is the balance at the end of date. Dates before the starting date have the
// starting balance.
func (p *Projector) BalanceOn(date calendar.Date) decimal.Decimal {
	if p.startingDate.IsZero() {
		return p.startingBalance
	}
	return p.replay(date)
}

// replay sums every occurrence from the starting date through until, inclusive.
func (p *Projector) replay(until calendar.Date) decimal.Decimal {
	balance := p.startingBalance
	if until.Before(p.startingDate) {
		return balance
	}
	last := until.YearMonth()
	for month := p.startingDate.YearMonth(); !month.After(last); month = month.Next() {
		firstDay, lastDay := 1, month.Days()
		if month.Equal(p.startingDate.YearMonth()) {
			firstDay = p.startingDate.Day()
		}
		if month.Equal(last) {
			lastDay = until.Day()
		}
		balance = balance.Add(p.changeBetween(month, firstDay, lastDay))
	}
	return balance
}

func (p *Projector) changeBetween(month calendar.YearMonth, firstDay, lastDay int) decimal.Decimal {
	change := decimal.Zero
	for _, e := range p.entries {
		for _, o := range occurrence.InMonth(e.schedule, month) {
			if o.Day < firstDay || o.Day > lastDay {
				continue
			}
			change = change.Add(e.event(o).Signed())
		}
	}
	return change
}
