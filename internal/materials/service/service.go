package service

import (
	"context"
	"errors"

	domainevents "printshop_backend/internal/events"
	"printshop_backend/internal/materials/repository"
	"printshop_backend/platform/apperr"
	"printshop_backend/platform/events"

	"github.com/google/uuid"
)

const (
	defaultColorHex       = "#FFFFFF"
	defaultInitialWeightG = 1000.0
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

func New(repo *repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) ListActive(ctx context.Context) ([]repository.Material, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Material, error) {
	if params.ColorHex == "" {
		params.ColorHex = defaultColorHex
	}
	if params.InitialWeightG <= 0 {
		params.InitialWeightG = defaultInitialWeightG
	}

	material, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Material{}, err
	}

	s.publishChange(ctx, domainevents.ActionInsert)
	return material, nil
}

// Consume reduces the remaining weight of a spool. The repository
// clamps at zero so inventory never goes negative.
func (s *Service) Consume(ctx context.Context, id uuid.UUID, grams float64) (repository.Material, error) {
	if grams <= 0 {
		return repository.Material{}, apperr.Validation("grams must be greater than zero")
	}

	material, err := s.repo.Consume(ctx, id, grams)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Material{}, apperr.NotFound("material not found")
	}
	if err != nil {
		return repository.Material{}, err
	}

	s.publishChange(ctx, domainevents.ActionUpdate)
	return material, nil
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (repository.Material, error) {
	material, err := s.repo.Deactivate(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Material{}, apperr.NotFound("material not found")
	}
	if err != nil {
		return repository.Material{}, err
	}

	s.publishChange(ctx, domainevents.ActionUpdate)
	return material, nil
}

func (s *Service) publishChange(ctx context.Context, action string) {
	s.bus.Publish(ctx, domainevents.NewChangeEvent(
		domainevents.MaterialsChanged, "materials", action))
}
