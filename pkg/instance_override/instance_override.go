package instance_override

import (
	"encoding/json"
	"fmt"

	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/shopspring/decimal"
)

// SkippedMarker is stored in place of newDate when an occurrence is removed.
const SkippedMarker = "SKIPPED"

// Split turns a single occurrence into two payments.
type Split struct {
	FirstAmount  decimal.Decimal
	SecondAmount decimal.Decimal
	SecondDate   calendar.Date
}

// Override is a per-date exception of a recurring item. It is identified by the date the
// occurrence would have landed on without it.
type Override struct {
	OriginalDate calendar.Date
	// NewDate is zero for skipped occurrences.
	NewDate   calendar.Date
	NewAmount decimal.NullDecimal
	Note      string
	Split     *Split
}

func Skip(originalDate calendar.Date, note string) Override {
	return Override{OriginalDate: originalDate, Note: note}
}

func (o Override) IsSkipped() bool {
	return o.NewDate.IsZero()
}

// Placement is where a non-skipped override puts money.
type Placement struct {
	Date   calendar.Date
	Amount decimal.Decimal
	// SplitPart is 1 or 2 for split overrides, 0 otherwise.
	SplitPart int
}

// Placements resolves the override against the amount the occurrence would have had.
// A split ignores NewAmount. Skipped overrides place nothing.
func (o Override) Placements(defaultAmount decimal.Decimal) []Placement {
	if o.IsSkipped() {
		return nil
	}
	if o.Split != nil {
		placements := []Placement{{Date: o.NewDate, Amount: o.Split.FirstAmount, SplitPart: 1}}
		if !o.Split.SecondDate.IsZero() {
			placements = append(placements, Placement{Date: o.Split.SecondDate, Amount: o.Split.SecondAmount, SplitPart: 2})
		}
		return placements
	}
	return []Placement{{Date: o.NewDate, Amount: o.AmountOr(defaultAmount)}}
}

// AmountOr returns NewAmount when set.
func (o Override) AmountOr(defaultAmount decimal.Decimal) decimal.Decimal {
	if o.NewAmount.Valid {
		return o.NewAmount.Decimal
	}
	return defaultAmount
}

type splitJSON struct {
	FirstAmount  decimal.Decimal `json:"firstAmount"`
	SecondAmount decimal.Decimal `json:"secondAmount"`
	SecondDate   calendar.Date   `json:"secondDate"`
}

type overrideJSON struct {
	OriginalDate calendar.Date    `json:"originalDate"`
	NewDate      string           `json:"newDate,omitempty"`
	NewAmount    *decimal.Decimal `json:"newAmount,omitempty"`
	Note         string           `json:"note,omitempty"`
	Split        *splitJSON       `json:"split,omitempty"`
}

func (o Override) MarshalJSON() ([]byte, error) {
	out := overrideJSON{
		OriginalDate: o.OriginalDate,
		NewDate:      SkippedMarker,
		Note:         o.Note,
	}
	if !o.IsSkipped() {
		out.NewDate = o.NewDate.String()
	}
	if o.NewAmount.Valid {
		amount := o.NewAmount.Decimal
		out.NewAmount = &amount
	}
	if o.Split != nil {
		out.Split = &splitJSON{
			FirstAmount:  o.Split.FirstAmount,
			SecondAmount: o.Split.SecondAmount,
			SecondDate:   o.Split.SecondDate,
		}
	}
	return json.Marshal(out)
}

func (o *Override) UnmarshalJSON(data []byte) error {
	var in overrideJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.OriginalDate.IsZero() {
		return fmt.Errorf("override without originalDate")
	}
	parsed := Override{OriginalDate: in.OriginalDate, Note: in.Note}
	if in.NewDate != "" && in.NewDate != SkippedMarker {
		newDate, err := calendar.Parse(in.NewDate)
		if err != nil {
			return fmt.Errorf("invalid newDate: %w", err)
		}
		parsed.NewDate = newDate
	}
	if in.NewAmount != nil {
		parsed.NewAmount = decimal.NewNullDecimal(*in.NewAmount)
	}
	if in.Split != nil {
		parsed.Split = &Split{
			FirstAmount:  in.Split.FirstAmount,
			SecondAmount: in.Split.SecondAmount,
			SecondDate:   in.Split.SecondDate,
		}
	}
	*o = parsed
	return nil
}
