package service

import (
	"context"
	"errors"

	domainevents "printshop_backend/internal/events"
	"printshop_backend/internal/printers/repository"
	"printshop_backend/platform/apperr"
	"printshop_backend/platform/events"
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

func New(repo *repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) List(ctx context.Context) ([]repository.Printer, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, currentOrderID *string) (repository.Printer, error) {
	printer, err := s.repo.UpdateStatus(ctx, id, status, currentOrderID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Printer{}, apperr.NotFound("printer not found")
	}
	if err != nil {
		return repository.Printer{}, err
	}

	s.bus.Publish(ctx, domainevents.NewChangeEvent(
		domainevents.PrintersChanged, "printers", domainevents.ActionUpdate))

	return printer, nil
}
