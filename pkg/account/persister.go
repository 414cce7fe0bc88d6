package account

import (
	"fmt"

	"github.com/klokku/cashflow/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// RegisterPersister stores every published snapshot in repo.
func RegisterPersister(eventBus *event_bus.EventBus, repo Repository) (unsubscribe func()) {
	return event_bus.SubscribeTyped(eventBus, event_bus.CashflowDataChangedType,
		func(e event_bus.EventT[event_bus.CashflowDataChanged]) error {
			if err := repo.Store(e.Context(), e.Data.UserId, e.Data.Data); err != nil {
				return fmt.Errorf("store cash-flow data: %w", err)
			}
			log.Tracef("Stored cash-flow data of user %d", e.Data.UserId)
			return nil
		})
}
