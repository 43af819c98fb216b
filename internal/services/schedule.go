package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventqa/internal/domain"
)

type scheduleService struct {
	presenterRepo domain.PresenterRepository
	logger        *slog.Logger
}

// NewScheduleService returns a ScheduleService backed by presenterRepo.
func NewScheduleService(presenterRepo domain.PresenterRepository, logger *slog.Logger) domain.ScheduleService {
	return &scheduleService{presenterRepo: presenterRepo, logger: logger}
}

func (s *scheduleService) List(ctx context.Context) ([]*domain.Presenter, error) {
	presenters, err := s.presenterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presenters: %w", err)
	}
	if presenters == nil {
		presenters = []*domain.Presenter{}
	}
	return presenters, nil
}

func (s *scheduleService) Lookup(ctx context.Context, name string) (*domain.Presenter, error) {
	presenters, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range presenters {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, domain.ErrPresenterNotFound
}

func (s *scheduleService) AddNames(ctx context.Context, list string) ([]string, error) {
	var added []string
	var firstErr error
	for _, raw := range strings.Split(list, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		outcome, err := s.presenterRepo.Add(ctx, domain.NewPresenter(name, "", "", ""))
		if err != nil {
			s.logger.Error("add presenter failed", "name", name, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("add presenter %q: %w", name, err)
			}
			continue
		}
		if outcome == domain.AddExisted {
			s.logger.Debug("presenter already exists", "name", name)
		}
		added = append(added, name)
	}
	if len(added) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return added, nil
}

func (s *scheduleService) Seed(ctx context.Context, presenters []*domain.Presenter) error {
	for _, p := range presenters {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return fmt.Errorf("%w: seed presenter without a name", domain.ErrInvalidInput)
		}
	}
	if err := s.presenterRepo.Upsert(ctx, presenters); err != nil {
		return fmt.Errorf("seed presenters: %w", err)
	}
	s.logger.Info("presenters seeded", "count", len(presenters))
	return nil
}
