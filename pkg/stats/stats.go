package stats

import (
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/projection"
	"github.com/shopspring/decimal"
)

type Summary struct {
	LowestBalance  decimal.Decimal
	LowestDay      int
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	EndingBalance  decimal.Decimal
	VariableBudget decimal.Decimal
}

// Summarize reduces a month's ledger. The lowest balance is the first day reaching the
// minimum. An empty ledger ends on startingBalance and reports a zero low on day 1.
func Summarize(days []projection.DayRecord, startingBalance decimal.Decimal) Summary {
	summary := Summary{
		LowestBalance: decimal.Zero,
		LowestDay:     1,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		EndingBalance: startingBalance,
	}
	for i, day := range days {
		if i == 0 || day.Balance.LessThan(summary.LowestBalance) {
			summary.LowestBalance = day.Balance
			summary.LowestDay = day.Day
		}
		for _, e := range day.Events {
			switch e.Type {
			case cashflow.IncomeKind:
				summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
			case cashflow.ExpenseKind:
				summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
			}
		}
	}
	if len(days) > 0 {
		summary.EndingBalance = days[len(days)-1].Balance
	}
	summary.VariableBudget = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

type MonthSummary struct {
	Month           calendar.YearMonth
	StartingBalance decimal.Decimal
	Summary         Summary
	Status          BalanceStatus
}
