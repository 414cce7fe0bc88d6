package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/cashflow/pkg/cashflow"
)

type RepositoryStub struct {
	data     map[int]cashflow.Data
	stores   int
	storeErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: map[int]cashflow.Data{}}
}

func (r *RepositoryStub) Get(ctx context.Context, userId int) (cashflow.Data, error) {
	data, ok := r.data[userId]
	if !ok {
		return cashflow.Data{}, fmt.Errorf("user %d: %w", userId, ErrDataNotFound)
	}
	return data, nil
}

func (r *RepositoryStub) Store(ctx context.Context, userId int, data cashflow.Data) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	r.stores++
	r.data[userId] = data
	return nil
}

// FailStores makes every following Store fail.
func (r *RepositoryStub) FailStores() {
	r.storeErr = errors.New("storage unavailable")
}

func (r *RepositoryStub) Stores() int {
	return r.stores
}

func (r *RepositoryStub) Cleanup() {
	r.data = map[int]cashflow.Data{}
	r.stores = 0
	r.storeErr = nil
}
