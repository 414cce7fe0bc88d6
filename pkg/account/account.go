package account

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/projection"
	"github.com/klokku/cashflow/pkg/stats"
	"github.com/shopspring/decimal"
)

type MonthProjection struct {
	Month           calendar.YearMonth
	StartingBalance decimal.Decimal
	Days            []projection.DayRecord
}

type MonthStats struct {
	Month           calendar.YearMonth
	StartingBalance decimal.Decimal
	Summary         stats.Summary
	Status          stats.BalanceStatus
	Alerts          []stats.Alert
}

type TodaysBalance struct {
	Date    calendar.Date
	Balance decimal.Decimal
	Status  stats.BalanceStatus
}
