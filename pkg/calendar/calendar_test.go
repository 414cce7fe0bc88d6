package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		month  time.Month
		expect int
	}{
		{"january", 2024, time.January, 31},
		{"leap february", 2024, time.February, 29},
		{"regular february", 2023, time.February, 28},
		{"century non-leap february", 2100, time.February, 28},
		{"april", 2024, time.April, 30},
		{"december", 2024, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.expect {
				t.Fatalf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.expect)
			}
		})
	}
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, time.Monday, FirstWeekdayOfMonth(2024, time.January))
	assert.Equal(t, time.Thursday, FirstWeekdayOfMonth(2024, time.February))
	assert.Equal(t, time.Sunday, FirstWeekdayOfMonth(2024, time.September))
}

func TestParse(t *testing.T) {
	t.Run("should parse a naive date", func(t *testing.T) {
		// when
		d, err := Parse("2024-03-05")

		// then
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 5, d.Day())
		assert.Equal(t, 12, d.Time().Hour())
		assert.Equal(t, "2024-03-05", d.String())
	})

	t.Run("should keep the day regardless of local timezone", func(t *testing.T) {
		// given
		location, err := time.LoadLocation("America/Los_Angeles")
		require.NoError(t, err)
		d := MustParse("2024-01-01")

		// when
		local := d.Time().In(location)

		// then
		assert.Equal(t, 1, local.Day())
	})

	t.Run("should fail on malformed input", func(t *testing.T) {
		_, err := Parse("2024-13-45")
		assert.Error(t, err)

		_, err = Parse("not a date")
		assert.Error(t, err)
	})
}

func TestDate_AddDays(t *testing.T) {
	d := MustParse("2024-02-26")

	assert.Equal(t, "2024-03-04", d.AddDays(7).String())
	assert.Equal(t, "2024-02-12", d.AddDays(-14).String())
	assert.Equal(t, 7, d.DaysUntil(d.AddDays(7)))
	assert.Equal(t, -14, d.DaysUntil(d.AddDays(-14)))
}

func TestDate_JSON(t *testing.T) {
	t.Run("should round trip through a string", func(t *testing.T) {
		// given
		type holder struct {
			Date Date `json:"date"`
		}

		// when
		out, err := json.Marshal(holder{Date: MustParse("2024-07-04")})
		require.NoError(t, err)
		var back holder
		err = json.Unmarshal(out, &back)

		// then
		require.NoError(t, err)
		assert.JSONEq(t, `{"date":"2024-07-04"}`, string(out))
		assert.True(t, back.Date.Equal(MustParse("2024-07-04")))
	})

	t.Run("should treat null and empty as zero", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
	})
}

func TestYearMonth(t *testing.T) {
	jan := YearMonth{Year: 2024, Month: time.January}

	t.Run("should move across year boundaries", func(t *testing.T) {
		assert.Equal(t, YearMonth{Year: 2023, Month: time.December}, jan.AddMonths(-1))
		assert.Equal(t, YearMonth{Year: 2025, Month: time.February}, jan.AddMonths(13))
		assert.Equal(t, YearMonth{Year: 2024, Month: time.February}, jan.Next())
	})

	t.Run("should count months between", func(t *testing.T) {
		assert.Equal(t, 14, YearMonth{Year: 2025, Month: time.March}.MonthsSince(jan))
		assert.Equal(t, -1, YearMonth{Year: 2023, Month: time.December}.MonthsSince(jan))
	})

	t.Run("should compare months", func(t *testing.T) {
		dec := YearMonth{Year: 2023, Month: time.December}
		assert.True(t, dec.Before(jan))
		assert.True(t, jan.After(dec))
		assert.False(t, jan.Before(jan))
		assert.True(t, jan.Equal(MustParse("2024-01-31").YearMonth()))
	})

	t.Run("should clamp days to the month", func(t *testing.T) {
		feb := YearMonth{Year: 2024, Month: time.February}
		assert.Equal(t, "2024-02-29", feb.Date(31).String())
		assert.Equal(t, "2024-02-01", feb.Date(0).String())
		assert.True(t, feb.Contains(MustParse("2024-02-15")))
		assert.False(t, feb.Contains(MustParse("2024-03-01")))
		assert.False(t, feb.Contains(Date{}))
	})

	t.Run("should parse and format", func(t *testing.T) {
		m, err := ParseYearMonth("2024-03")
		require.NoError(t, err)
		assert.Equal(t, YearMonth{Year: 2024, Month: time.March}, m)
		assert.Equal(t, "2024-03", m.String())

		_, err = ParseYearMonth("2024-13")
		assert.Error(t, err)
		_, err = ParseYearMonth("2024")
		assert.Error(t, err)
	})
}
