package service

import (
	"context"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/pkg/idx"
)

// PrimeSequence advances ids past every id already stored, so a restart
// within the same millisecond as the last write cannot reuse one.
func PrimeSequence(ctx context.Context, st store.Store, ids *idx.Sequence) error {
	accounts, err := store.Load[domain.Account](ctx, st, store.Users)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		ids.Observe(a.ID)
	}

	clients, err := store.Load[domain.Client](ctx, st, store.Clients)
	if err != nil {
		return err
	}
	for _, c := range clients {
		ids.Observe(c.ID)
		for _, svc := range c.Services {
			ids.Observe(svc.ID)
		}
	}
	return nil
}
