package cashflow

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/shopspring/decimal"
)

var ErrItemNotFound = errors.New("item not found")
var ErrInvalidFrequency = errors.New("invalid frequency")
var ErrInvalidKind = errors.New("invalid item kind")

// Data is the whole cash-flow document of one account. Every mutation returns a new Data
// and leaves the receiver untouched.
type Data struct {
	StartingBalance  decimal.Decimal   `json:"startingBalance"`
	StartingDate     calendar.Date     `json:"startingDate"`
	WarningThreshold decimal.Decimal   `json:"warningThreshold"`
	FloorThreshold   decimal.Decimal   `json:"floorThreshold"`
	Incomes          []Income          `json:"incomes"`
	Expenses         []Expense         `json:"expenses"`
	CategoryColors   map[string]string `json:"categoryColors,omitempty"`
}

// Settings are the account-level values edited independently of the items.
type Settings struct {
	StartingBalance  decimal.Decimal
	StartingDate     calendar.Date
	WarningThreshold decimal.Decimal
	FloorThreshold   decimal.Decimal
	CategoryColors   map[string]string
}

// NewData returns the document of an account that has not saved anything yet.
func NewData(today calendar.Date) Data {
	return Data{
		StartingBalance:  decimal.Zero,
		StartingDate:     today,
		WarningThreshold: decimal.NewFromInt(500),
		FloorThreshold:   decimal.NewFromInt(50),
		Incomes:          []Income{},
		Expenses:         []Expense{},
		CategoryColors:   map[string]string{},
	}
}

func (d Data) Settings() Settings {
	return Settings{
		StartingBalance:  d.StartingBalance,
		StartingDate:     d.StartingDate,
		WarningThreshold: d.WarningThreshold,
		FloorThreshold:   d.FloorThreshold,
		CategoryColors:   d.CategoryColors,
	}
}

func (d Data) WithSettings(s Settings) Data {
	d.StartingBalance = s.StartingBalance
	d.StartingDate = s.StartingDate
	d.WarningThreshold = s.WarningThreshold
	d.FloorThreshold = s.FloorThreshold
	if s.CategoryColors != nil {
		d.CategoryColors = maps.Clone(s.CategoryColors)
	}
	return d
}

func (d Data) FindIncome(id string) (Income, bool) {
	idx := slices.IndexFunc(d.Incomes, func(i Income) bool { return i.Id == id })
	if idx < 0 {
		return Income{}, false
	}
	return d.Incomes[idx], true
}

func (d Data) FindExpense(id string) (Expense, bool) {
	idx := slices.IndexFunc(d.Expenses, func(e Expense) bool { return e.Id == id })
	if idx < 0 {
		return Expense{}, false
	}
	return d.Expenses[idx], true
}

// Validate checks every item's frequency against the ones allowed for its kind.
func (d Data) Validate() error {
	for _, income := range d.Incomes {
		if !slices.Contains(incomeFrequencies, income.Frequency) {
			return fmt.Errorf("%w for income %s: %q", ErrInvalidFrequency, income.Id, income.Frequency)
		}
	}
	for _, expense := range d.Expenses {
		if !slices.Contains(expenseFrequencies, expense.Frequency) {
			return fmt.Errorf("%w for expense %s: %q", ErrInvalidFrequency, expense.Id, expense.Frequency)
		}
	}
	return nil
}

// AddIncome appends the income, generating an id when it has none.
func (d Data) AddIncome(income Income) (Data, Income, error) {
	if !slices.Contains(incomeFrequencies, income.Frequency) {
		return d, Income{}, fmt.Errorf("%w for income: %q", ErrInvalidFrequency, income.Frequency)
	}
	if income.Id == "" {
		income.Id = uuid.NewString()
	}
	d.Incomes = append(slices.Clip(d.Incomes), income)
	return d, income, nil
}

func (d Data) UpdateIncome(income Income) (Data, error) {
	if !slices.Contains(incomeFrequencies, income.Frequency) {
		return d, fmt.Errorf("%w for income: %q", ErrInvalidFrequency, income.Frequency)
	}
	idx := slices.IndexFunc(d.Incomes, func(i Income) bool { return i.Id == income.Id })
	if idx < 0 {
		return d, fmt.Errorf("income %s: %w", income.Id, ErrItemNotFound)
	}
	d.Incomes = slices.Clone(d.Incomes)
	d.Incomes[idx] = income
	return d, nil
}

func (d Data) DeleteIncome(id string) (Data, error) {
	if _, ok := d.FindIncome(id); !ok {
		return d, fmt.Errorf("income %s: %w", id, ErrItemNotFound)
	}
	d.Incomes = slices.DeleteFunc(slices.Clone(d.Incomes), func(i Income) bool { return i.Id == id })
	return d, nil
}

// AddExpense appends the expense, generating an id when it has none.
func (d Data) AddExpense(expense Expense) (Data, Expense, error) {
	if !slices.Contains(expenseFrequencies, expense.Frequency) {
		return d, Expense{}, fmt.Errorf("%w for expense: %q", ErrInvalidFrequency, expense.Frequency)
	}
	if expense.Id == "" {
		expense.Id = uuid.NewString()
	}
	d.Expenses = append(slices.Clip(d.Expenses), expense)
	return d, expense, nil
}

func (d Data) UpdateExpense(expense Expense) (Data, error) {
	if !slices.Contains(expenseFrequencies, expense.Frequency) {
		return d, fmt.Errorf("%w for expense: %q", ErrInvalidFrequency, expense.Frequency)
	}
	idx := slices.IndexFunc(d.Expenses, func(e Expense) bool { return e.Id == expense.Id })
	if idx < 0 {
		return d, fmt.Errorf("expense %s: %w", expense.Id, ErrItemNotFound)
	}
	d.Expenses = slices.Clone(d.Expenses)
	d.Expenses[idx] = expense
	return d, nil
}

func (d Data) DeleteExpense(id string) (Data, error) {
	if _, ok := d.FindExpense(id); !ok {
		return d, fmt.Errorf("expense %s: %w", id, ErrItemNotFound)
	}
	d.Expenses = slices.DeleteFunc(slices.Clone(d.Expenses), func(e Expense) bool { return e.Id == id })
	return d, nil
}

// SaveInstanceOverride records the override on the item, replacing any override with the
// same original date.
func (d Data) SaveInstanceOverride(kind Kind, itemId string, override instance_override.Override) (Data, error) {
	return d.mapOverrides(kind, itemId, func(s instance_override.Set) instance_override.Set {
		return s.With(override)
	})
}

// RemoveInstanceOverride drops the override for originalDate. Removing a missing override is a no-op.
func (d Data) RemoveInstanceOverride(kind Kind, itemId string, originalDate calendar.Date) (Data, error) {
	return d.mapOverrides(kind, itemId, func(s instance_override.Set) instance_override.Set {
		return s.Without(originalDate)
	})
}

func (d Data) mapOverrides(kind Kind, itemId string, update func(instance_override.Set) instance_override.Set) (Data, error) {
	switch kind {
	case IncomeKind:
		income, ok := d.FindIncome(itemId)
		if !ok {
			return d, fmt.Errorf("income %s: %w", itemId, ErrItemNotFound)
		}
		income.Overrides = update(income.Overrides)
		return d.UpdateIncome(income)
	case ExpenseKind:
		expense, ok := d.FindExpense(itemId)
		if !ok {
			return d, fmt.Errorf("expense %s: %w", itemId, ErrItemNotFound)
		}
		expense.Overrides = update(expense.Overrides)
		return d.UpdateExpense(expense)
	default:
		return d, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}
