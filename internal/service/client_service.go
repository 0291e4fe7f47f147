package service

import (
	"context"
	"errors"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/repository"
)

const (
	defaultClientLimit = 100
	maxClientLimit     = 1000
)

// ClientService fronts the client CRUD surface.
type ClientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) List(ctx context.Context, skip, limit int) ([]domain.Client, error) {
	if skip < 0 {
		skip = 0
	}
	limit = clampLimit(limit, defaultClientLimit)
	clients, err := s.clients.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Client{}, errNotFound("Cliente no encontrado")
		}
		return domain.Client{}, err
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, nc domain.NewClient) (domain.Client, error) {
	return s.clients.Create(ctx, nc)
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxClientLimit {
		return maxClientLimit
	}
	return limit
}
