package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/memory"
	"github.com/aussiebroadwan/copilot/pkg/idx"
)

// countingStore wraps a Store and counts writes per document.
type countingStore struct {
	store.Store
	writes atomic.Int64
}

func (c *countingStore) Write(ctx context.Context, name string, data []byte) error {
	c.writes.Add(1)
	return c.Store.Write(ctx, name, data)
}

type fixture struct {
	store    *countingStore
	ids      *idx.Sequence
	accounts *service.AccountService
	clients  *service.ClientService
}

// newFixture wires both registries over a fresh memory store. The clock is
// frozen so ids are predictable: 1_000, 1_001, ...
func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := &countingStore{Store: memory.New()}
	ids := idx.NewSequenceWithClock(func() time.Time { return time.UnixMilli(1_000) })

	return &fixture{
		store:    st,
		ids:      ids,
		accounts: &service.AccountService{Store: st, IDs: ids},
		clients:  &service.ClientService{Store: st, IDs: ids},
	}
}
