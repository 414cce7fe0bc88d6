package cashflow

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// FlexInt is an int that also reads from a quoted numeric string, as older stored documents
// carry day and count fields as text. It is always written as a JSON number.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	text := bytes.TrimSpace(bytes.Trim(bytes.TrimSpace(data), `"`))
	if len(text) == 0 || string(text) == "null" {
		return nil
	}
	value, err := decimal.NewFromString(string(text))
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*n = FlexInt(value.IntPart())
	return nil
}
