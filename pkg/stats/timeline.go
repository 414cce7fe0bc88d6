package stats

import (
	"context"
	"fmt"

	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/projection"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Range is a timeline length offered to the user.
type Range string

var rangeMonths = map[Range]int{
	"6m":  6,
	"1y":  12,
	"2y":  24,
	"5y":  60,
	"10y": 120,
	"15y": 180,
}

// Months returns the number of months of the range, 12 for unknown ranges.
func (r Range) Months() int {
	if months, ok := rangeMonths[r]; ok {
		return months
	}
	return 12
}

// Timeline summarizes months consecutive months starting at from. Months are projected
// concurrently, at most limit at a time (unbounded when limit <= 0).
func Timeline(
	ctx context.Context,
	projector *projection.Projector,
	thresholds Thresholds,
	from calendar.YearMonth,
	months int,
	limit int,
) ([]MonthSummary, error) {
	if months <= 0 {
		return []MonthSummary{}, nil
	}
	summaries := make([]MonthSummary, months)
	group, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i := range months {
		month := from.AddMonths(i)
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return fmt.Errorf("timeline month %s: %w", month, err)
			}
			startingBalance := projector.BalanceAtMonthStart(month)
			summary := Summarize(projector.BuildMonth(month), startingBalance)
			summaries[i] = MonthSummary{
				Month:           month,
				StartingBalance: startingBalance,
				Summary:         summary,
				Status:          thresholds.StatusOf(summary.LowestBalance),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	log.Tracef("Projected timeline of %d months from %s", months, from)
	return summaries, nil
}
