package event_bus

import "github.com/klokku/cashflow/pkg/cashflow"

const CashflowDataChangedType EventType = "cashflow.data.changed"

// CashflowDataChanged carries the full snapshot produced by a mutation.
type CashflowDataChanged struct {
	UserId int
	Data   cashflow.Data
}
