package instance_override

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = calendar.YearMonth{Year: 2024, Month: time.March}

func TestOverride_IsSkipped(t *testing.T) {
	t.Run("should be skipped without a new date", func(t *testing.T) {
		assert.True(t, Skip(calendar.MustParse("2024-03-01"), "").IsSkipped())
	})

	t.Run("should be skipped for the sentinel and missing newDate", func(t *testing.T) {
		var sentinel, missing Override
		require.NoError(t, json.Unmarshal([]byte(`{"originalDate":"2024-03-01","newDate":"SKIPPED"}`), &sentinel))
		require.NoError(t, json.Unmarshal([]byte(`{"originalDate":"2024-03-01"}`), &missing))

		assert.True(t, sentinel.IsSkipped())
		assert.True(t, missing.IsSkipped())
	})

	t.Run("should not be skipped when moved", func(t *testing.T) {
		o := Override{OriginalDate: calendar.MustParse("2024-03-01"), NewDate: calendar.MustParse("2024-03-04")}
		assert.False(t, o.IsSkipped())
	})
}

func TestOverride_Placements(t *testing.T) {
	original := calendar.MustParse("2024-03-01")
	defaultAmount := decimal.NewFromInt(100)

	t.Run("should use the default amount when no new amount is set", func(t *testing.T) {
		// given
		o := Override{OriginalDate: original, NewDate: calendar.MustParse("2024-03-03")}

		// when
		placements := o.Placements(defaultAmount)

		// then
		require.Len(t, placements, 1)
		assert.Equal(t, "2024-03-03", placements[0].Date.String())
		assert.True(t, defaultAmount.Equal(placements[0].Amount))
		assert.Equal(t, 0, placements[0].SplitPart)
	})

	t.Run("should use the new amount", func(t *testing.T) {
		o := Override{OriginalDate: original, NewDate: original, NewAmount: decimal.NewNullDecimal(decimal.NewFromInt(40))}

		placements := o.Placements(defaultAmount)

		require.Len(t, placements, 1)
		assert.True(t, decimal.NewFromInt(40).Equal(placements[0].Amount))
	})

	t.Run("should split into two payments ignoring the new amount", func(t *testing.T) {
		// given
		o := Override{
			OriginalDate: original,
			NewDate:      original,
			NewAmount:    decimal.NewNullDecimal(decimal.NewFromInt(999)),
			Split: &Split{
				FirstAmount:  decimal.NewFromInt(70),
				SecondAmount: decimal.NewFromInt(45),
				SecondDate:   calendar.MustParse("2024-03-20"),
			},
		}

		// when
		placements := o.Placements(defaultAmount)

		// then
		require.Len(t, placements, 2)
		assert.Equal(t, 1, placements[0].SplitPart)
		assert.True(t, decimal.NewFromInt(70).Equal(placements[0].Amount))
		assert.Equal(t, 2, placements[1].SplitPart)
		assert.Equal(t, "2024-03-20", placements[1].Date.String())
		assert.True(t, decimal.NewFromInt(45).Equal(placements[1].Amount))
	})

	t.Run("should place nothing when skipped", func(t *testing.T) {
		assert.Empty(t, Skip(original, "holiday").Placements(defaultAmount))
	})
}

func TestSet(t *testing.T) {
	first := calendar.MustParse("2024-03-01")

	t.Run("should replace the override with the same original date", func(t *testing.T) {
		// given
		s := NewSet(Skip(first, "first"))

		// when
		next := s.With(Override{OriginalDate: first, NewDate: calendar.MustParse("2024-03-02"), Note: "second"})

		// then
		assert.Len(t, next, 1)
		o, ok := next.Resolve(first)
		require.True(t, ok)
		assert.Equal(t, "second", o.Note)
		original, _ := s.Resolve(first)
		assert.Equal(t, "first", original.Note, "receiver must stay untouched")
	})

	t.Run("should remove by original date without touching the receiver", func(t *testing.T) {
		s := NewSet(Skip(first, ""))

		next := s.Without(first)

		assert.Empty(t, next)
		assert.Len(t, s, 1)
	})

	t.Run("should add to a nil set", func(t *testing.T) {
		var s Set
		next := s.With(Skip(first, ""))
		assert.Len(t, next, 1)
	})

	t.Run("should find overrides moved in from other months", func(t *testing.T) {
		// given
		s := NewSet(
			Override{OriginalDate: calendar.MustParse("2024-02-28"), NewDate: calendar.MustParse("2024-03-02")},
			Override{OriginalDate: calendar.MustParse("2024-03-05"), NewDate: calendar.MustParse("2024-03-06")},
			Skip(calendar.MustParse("2024-02-14"), ""),
			Override{
				OriginalDate: calendar.MustParse("2024-04-01"),
				NewDate:      calendar.MustParse("2024-04-01"),
				Split:        &Split{SecondDate: calendar.MustParse("2024-03-30")},
			},
			Override{OriginalDate: calendar.MustParse("2024-01-10"), NewDate: calendar.MustParse("2024-01-12")},
		)

		// when
		inbound := s.InboundTo(march)

		// then
		require.Len(t, inbound, 2)
		assert.Equal(t, "2024-02-28", inbound[0].OriginalDate.String())
		assert.Equal(t, "2024-04-01", inbound[1].OriginalDate.String())
	})
}

func TestSet_JSON(t *testing.T) {
	t.Run("should serialize as an array ordered by original date", func(t *testing.T) {
		// given
		s := NewSet(
			Override{OriginalDate: calendar.MustParse("2024-03-15"), NewDate: calendar.MustParse("2024-03-16"), NewAmount: decimal.NewNullDecimal(decimal.RequireFromString("12.5"))},
			Skip(calendar.MustParse("2024-03-01"), "skip"),
		)

		// when
		out, err := json.Marshal(s)

		// then
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"originalDate":"2024-03-01","newDate":"SKIPPED","note":"skip"},
			{"originalDate":"2024-03-15","newDate":"2024-03-16","newAmount":"12.5"}
		]`, string(out))
	})

	t.Run("should keep the last duplicate and accept numeric strings", func(t *testing.T) {
		// given
		raw := `[
			{"originalDate":"2024-03-01","newDate":"2024-03-02","newAmount":10},
			{"originalDate":"2024-03-01","newDate":"2024-03-03","newAmount":"20.50",
			 "split":{"firstAmount":"5","secondAmount":15.5,"secondDate":"2024-03-20"}}
		]`

		// when
		var s Set
		err := json.Unmarshal([]byte(raw), &s)

		// then
		require.NoError(t, err)
		require.Len(t, s, 1)
		o, _ := s.Resolve(calendar.MustParse("2024-03-01"))
		assert.Equal(t, "2024-03-03", o.NewDate.String())
		assert.True(t, decimal.RequireFromString("20.5").Equal(o.NewAmount.Decimal))
		require.NotNil(t, o.Split)
		assert.True(t, decimal.RequireFromString("15.5").Equal(o.Split.SecondAmount))
	})
}
