package stats

import (
	"fmt"
	"strings"

	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type BalanceStatus string

const (
	Safe    BalanceStatus = "safe"
	Warning BalanceStatus = "warning"
	Danger  BalanceStatus = "danger"
)

type Thresholds struct {
	Warning decimal.Decimal
	Floor   decimal.Decimal
}

func ThresholdsOf(data cashflow.Data) Thresholds {
	return Thresholds{Warning: data.WarningThreshold, Floor: data.FloorThreshold}
}

// StatusOf is danger below the floor and warning below the warning threshold.
func (t Thresholds) StatusOf(balance decimal.Decimal) BalanceStatus {
	switch {
	case balance.LessThan(t.Floor):
		return Danger
	case balance.LessThan(t.Warning):
		return Warning
	default:
		return Safe
	}
}

type Alert struct {
	Level   BalanceStatus
	Title   string
	Message string
}

// AlertsFor warns about the lowest balance of a month. At most one alert is raised.
func AlertsFor(summary Summary, t Thresholds) []Alert {
	var title string
	level := t.StatusOf(summary.LowestBalance)
	switch level {
	case Danger:
		title = "Critical Balance Alert"
	case Warning:
		title = "Low Balance Warning"
	default:
		return []Alert{}
	}
	return []Alert{{
		Level:   level,
		Title:   title,
		Message: fmt.Sprintf("Balance drops to %s on day %d", FormatCurrency(summary.LowestBalance), summary.LowestDay),
	}}
}

// FormatCurrency renders an amount in dollars with thousands separators, e.g. -$1,234.50.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	fixed := rounded.Abs().StringFixed(2)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	return sign + message.NewPrinter(language.AmericanEnglish).Sprintf("$%d", rounded.Abs().IntPart()) + cents
}
