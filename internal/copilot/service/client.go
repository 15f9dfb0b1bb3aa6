package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	"github.com/aussiebroadwan/copilot/internal/copilot/metrics"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
)

var ErrClientNotFound = errors.New("client not found")

// ClientService manages clients and the services nested under them. Every
// mutation loads the whole clients collection, changes it in memory and
// saves it back.
type ClientService struct {
	Store store.Store
	IDs   *idx.Sequence

	mu sync.Mutex
}

// ListClients returns every client in insertion order.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.load(ctx)
}

// CreateClient appends a client with no services.
func (s *ClientService) CreateClient(ctx context.Context, name, gstin string) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load(ctx)
	if err != nil {
		return domain.Client{}, err
	}

	client := domain.Client{
		ID:       s.IDs.Next(),
		Name:     name,
		GSTIN:    gstin,
		Services: []domain.Service{},
	}
	clients = append(clients, client)

	if err := store.Save(ctx, s.Store, store.Clients, clients); err != nil {
		l.Error("failed to save clients", "error", err)
		return domain.Client{}, err
	}

	metrics.RecordCreated("client")
	l.Info("client created", "client_id", client.ID)
	return client, nil
}

// ListServices returns the services of one client.
func (s *ClientService) ListServices(ctx context.Context, clientID int64) ([]domain.Service, error) {
	clients, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(clients, clientID)
	if i < 0 {
		return nil, ErrClientNotFound
	}
	return clients[i].Services, nil
}

// AddService appends a service to the client with clientID. Nothing is
// written when the client does not exist.
func (s *ClientService) AddService(ctx context.Context, clientID int64, name, status, description string) (domain.Service, error) {
	l := slogx.FromContext(ctx).With("client_id", clientID)

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load(ctx)
	if err != nil {
		return domain.Service{}, err
	}

	i := indexOf(clients, clientID)
	if i < 0 {
		return domain.Service{}, ErrClientNotFound
	}

	svc := domain.Service{
		ID:          s.IDs.Next(),
		Name:        name,
		Status:      status,
		Description: description,
	}
	clients[i].Services = append(clients[i].Services, svc)

	if err := store.Save(ctx, s.Store, store.Clients, clients); err != nil {
		l.Error("failed to save clients", "error", err)
		return domain.Service{}, err
	}

	metrics.RecordCreated("service")
	l.Info("service added", "service_id", svc.ID)
	return svc, nil
}

// load reads the clients collection and fills in missing service lists.
func (s *ClientService) load(ctx context.Context) ([]domain.Client, error) {
	clients, err := store.Load[domain.Client](ctx, s.Store, store.Clients)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].Services == nil {
			clients[i].Services = []domain.Service{}
		}
	}
	return clients, nil
}

func indexOf(clients []domain.Client, id int64) int {
	for i := range clients {
		if clients[i].ID == id {
			return i
		}
	}
	return -1
}
