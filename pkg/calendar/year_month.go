package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth converts "2024-03" to YearMonth.
func ParseYearMonth(s string) (YearMonth, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return YearMonth{}, fmt.Errorf("invalid month format: %s", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month: %w", err)
	}
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("month out of range: %d", month)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func (m YearMonth) index() int {
	return m.Year*12 + int(m.Month) - 1
}

func fromIndex(i int) YearMonth {
	year := i / 12
	month := i % 12
	if month < 0 {
		year--
		month += 12
	}
	return YearMonth{Year: year, Month: time.Month(month + 1)}
}

func (m YearMonth) AddMonths(months int) YearMonth {
	return fromIndex(m.index() + months)
}

func (m YearMonth) Next() YearMonth {
	return m.AddMonths(1)
}

// MonthsSince returns how many months m is after other; negative when m is earlier.
func (m YearMonth) MonthsSince(other YearMonth) int {
	return m.index() - other.index()
}

// Equal returns true when both the year and month match.
func (m YearMonth) Equal(other YearMonth) bool {
	return m.Year == other.Year && m.Month == other.Month
}

// Before reports whether m refers to a month that occurs before other.
func (m YearMonth) Before(other YearMonth) bool {
	return m.index() < other.index()
}

// After reports whether m refers to a month that occurs after other.
func (m YearMonth) After(other YearMonth) bool {
	return m.index() > other.index()
}

func (m YearMonth) Days() int {
	return DaysInMonth(m.Year, m.Month)
}

// Date returns the given day of the month, clamped to the month's valid range.
func (m YearMonth) Date(day int) Date {
	return NewDate(m.Year, m.Month, min(max(day, 1), m.Days()))
}

func (m YearMonth) FirstDay() Date {
	return m.Date(1)
}

func (m YearMonth) LastDay() Date {
	return m.Date(m.Days())
}

func (m YearMonth) Contains(d Date) bool {
	return !d.IsZero() && d.Year() == m.Year && d.Month() == m.Month
}

// String formats the month as "YYYY-MM".
func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
