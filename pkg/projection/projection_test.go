package projection

import (
	"testing"
	"time"

	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func month(year int, m time.Month) calendar.YearMonth {
	return calendar.YearMonth{Year: year, Month: m}
}

func scenarioData(startingDate string) cashflow.Data {
	return cashflow.Data{
		StartingBalance:  dec("1000"),
		StartingDate:     calendar.MustParse(startingDate),
		WarningThreshold: dec("500"),
		FloorThreshold:   dec("50"),
		Incomes: []cashflow.Income{{ItemBase: cashflow.ItemBase{
			Id:        "paycheck",
			Name:      "Paycheck",
			Amount:    dec("2000"),
			Frequency: cashflow.Biweekly,
			StartDate: calendar.MustParse("2024-01-05"),
		}}},
		Expenses: []cashflow.Expense{{
			ItemBase: cashflow.ItemBase{
				Id:        "rent",
				Name:      "Rent",
				Amount:    dec("1500"),
				Frequency: cashflow.Monthly,
				StartDate: calendar.MustParse("2024-01-01"),
			},
			Category: "housing",
		}},
	}
}

func recordOf(t *testing.T, days []DayRecord, day int) DayRecord {
	t.Helper()
	for _, d := range days {
		if d.Day == day {
			return d
		}
	}
	require.Failf(t, "missing day", "day %d not projected", day)
	return DayRecord{}
}

func TestBuildMonth(t *testing.T) {
	t.Run("should project the daily ledger of the starting month", func(t *testing.T) {
		// given
		data := scenarioData("2024-01-01")

		// when
		days := BuildMonth(data, month(2024, time.January))

		// then
		require.Len(t, days, 31)
		assert.True(t, dec("-500").Equal(recordOf(t, days, 1).Balance), recordOf(t, days, 1).Balance.String())
		assert.True(t, dec("1500").Equal(recordOf(t, days, 5).Balance))
		assert.True(t, dec("3500").Equal(recordOf(t, days, 19).Balance))
		assert.True(t, dec("3500").Equal(recordOf(t, days, 31).Balance))

		rent := recordOf(t, days, 1).Events
		require.Len(t, rent, 1)
		assert.Equal(t, cashflow.ExpenseKind, rent[0].Type)
		assert.Equal(t, "Rent", rent[0].Name)
		assert.Equal(t, "housing", rent[0].Category)
		assert.Equal(t, "2024-01-01", rent[0].InstanceDate.String())
	})

	t.Run("should carry the balance into the next month", func(t *testing.T) {
		// given
		data := scenarioData("2024-01-01")

		// when
		days := BuildMonth(data, month(2024, time.February))

		// then
		assert.True(t, dec("2000").Equal(recordOf(t, days, 1).Balance))
		assert.True(t, dec("4000").Equal(recordOf(t, days, 2).Balance))
	})

	t.Run("should keep the balance continuous from day to day", func(t *testing.T) {
		// given
		data := scenarioData("2024-01-01")

		for _, ym := range []calendar.YearMonth{month(2024, time.January), month(2024, time.March), month(2025, time.February)} {
			// when
			days := BuildMonth(data, ym)

			// then
			for i := 1; i < len(days); i++ {
				assert.True(t, days[i-1].Balance.Add(days[i].Change).Equal(days[i].Balance), "%s day %d", ym, days[i].Day)
			}
		}
	})

	t.Run("should start the starting month at the starting day", func(t *testing.T) {
		// given
		data := scenarioData("2024-01-10")

		// when
		january := BuildMonth(data, month(2024, time.January))
		february := BuildMonth(data, month(2024, time.February))

		// then
		require.Len(t, january, 22)
		assert.Equal(t, 10, january[0].Day)
		assert.True(t, dec("1000").Equal(january[0].Balance))
		// Jan 1 rent and Jan 5 paycheck happen before the starting day.
		assert.True(t, dec("1500").Equal(recordOf(t, february, 1).Balance), recordOf(t, february, 1).Balance.String())
	})

	t.Run("should open months before the starting month with the starting balance", func(t *testing.T) {
		days := BuildMonth(scenarioData("2024-01-01"), month(2023, time.December))

		require.Len(t, days, 31)
		assert.True(t, dec("1000").Equal(days[30].Balance))
	})

	t.Run("should list incomes before expenses and name split parts", func(t *testing.T) {
		// given
		data := scenarioData("2024-01-01")
		data.Expenses = append(data.Expenses, cashflow.Expense{
			ItemBase: cashflow.ItemBase{
				Id:        "car",
				Name:      "Car",
				Amount:    dec("500"),
				Frequency: cashflow.SplitFrequency,
				StartDate: calendar.MustParse("2024-01-01"),
			},
			Category:    "transport",
			SplitConfig: &cashflow.SplitConfig{FirstDay: 5, FirstAmount: dec("300"), SecondDay: 20, SecondAmount: dec("200")},
		})

		// when
		day5 := recordOf(t, BuildMonth(data, month(2024, time.January)), 5)

		// then
		require.Len(t, day5.Events, 2)
		assert.Equal(t, cashflow.IncomeKind, day5.Events[0].Type)
		assert.Equal(t, "Car (1/2)", day5.Events[1].Name)
		assert.True(t, day5.Events[1].IsSplit)
		assert.True(t, dec("1700").Equal(day5.Change))
	})

	t.Run("should keep income names on split parts", func(t *testing.T) {
		// given
		data, err := scenarioData("2024-01-01").SaveInstanceOverride(cashflow.IncomeKind, "paycheck", instance_override.Override{
			OriginalDate: calendar.MustParse("2024-01-05"),
			NewDate:      calendar.MustParse("2024-01-05"),
			Split: &instance_override.Split{
				FirstAmount:  dec("1200"),
				SecondAmount: dec("800"),
				SecondDate:   calendar.MustParse("2024-01-10"),
			},
		})
		require.NoError(t, err)

		// when
		days := BuildMonth(data, month(2024, time.January))

		// then
		day5, day10 := recordOf(t, days, 5), recordOf(t, days, 10)
		require.Len(t, day5.Events, 1)
		assert.Equal(t, "Paycheck", day5.Events[0].Name)
		assert.Equal(t, 1, day5.Events[0].SplitPart)
		require.Len(t, day10.Events, 1)
		assert.Equal(t, "Paycheck", day10.Events[0].Name)
		assert.True(t, dec("800").Equal(day10.Events[0].Amount))
	})

	t.Run("should replay overrides into later months", func(t *testing.T) {
		// given
		data := scenarioData("2024-01-01")
		data, err := data.SaveInstanceOverride(cashflow.ExpenseKind, "rent", instance_override.Skip(calendar.MustParse("2024-01-01"), ""))
		require.NoError(t, err)

		// when
		days := BuildMonth(data, month(2024, time.February))

		// then
		assert.True(t, dec("3500").Equal(recordOf(t, days, 1).Balance), recordOf(t, days, 1).Balance.String())
	})
}

func TestProjector_BalanceOn(t *testing.T) {
	projector := New(scenarioData("2024-01-01"))

	t.Run("should include the events of the date itself", func(t *testing.T) {
		assert.True(t, dec("1500").Equal(projector.BalanceOn(calendar.MustParse("2024-01-05"))))
		assert.True(t, dec("-500").Equal(projector.BalanceOn(calendar.MustParse("2024-01-04"))))
	})

	t.Run("should agree with the month start balance", func(t *testing.T) {
		assert.True(t, projector.BalanceOn(calendar.MustParse("2024-02-29")).Equal(projector.BalanceAtMonthStart(month(2024, time.March))))
	})

	t.Run("should return the starting balance before the starting date", func(t *testing.T) {
		assert.True(t, dec("1000").Equal(projector.BalanceOn(calendar.MustParse("2023-12-31"))))
	})

	t.Run("should return the starting balance without a starting date", func(t *testing.T) {
		data := scenarioData("2024-01-01")
		data.StartingDate = calendar.Date{}

		assert.True(t, dec("1000").Equal(New(data).BalanceAtMonthStart(month(2024, time.June))))
	})
}
