package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
)

const (
	priorityCacheKey = "priorities:all"
	priorityCacheTTL = 10 * time.Minute
)

// PriorityServiceImpl serves the global priority table through an optional cache.
type PriorityServiceImpl struct {
	priorityRepo repositories.PriorityRepository
	cache        ports.CachePort
}

func NewPriorityService(priorityRepo repositories.PriorityRepository, cache ports.CachePort) services.PriorityService {
	return &PriorityServiceImpl{
		priorityRepo: priorityRepo,
		cache:        cache,
	}
}

func (s *PriorityServiceImpl) ListPriorities(ctx context.Context) ([]*models.Priority, error) {
	if s.cache != nil {
		var cached []*models.Priority
		err := s.cache.GetJSON(ctx, priorityCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.WarnContext(ctx, "Priority cache read failed", "error", err)
		}
	}

	priorities, err := s.priorityRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, priorityCacheKey, priorities, priorityCacheTTL); err != nil {
			logger.WarnContext(ctx, "Priority cache write failed", "error", err)
		}
	}
	return priorities, nil
}

func (s *PriorityServiceImpl) GetPriority(ctx context.Context, id int64) (*models.Priority, error) {
	priority, err := s.priorityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrPriorityNotFound
		}
		return nil, err
	}
	return priority, nil
}

func (s *PriorityServiceImpl) DefaultPriorityID(ctx context.Context) (*int64, error) {
	priorities, err := s.ListPriorities(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range priorities {
		if strings.EqualFold(p.Name, models.DefaultPriorityName) {
			id := p.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (s *PriorityServiceImpl) CreatePriority(ctx context.Context, name string) (*models.Priority, error) {
	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	priority := &models.Priority{Name: name}
	if err := s.priorityRepo.Create(ctx, priority); err != nil {
		logger.ErrorContext(ctx, "Failed to create priority", "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	logger.InfoContext(ctx, "Priority created", "priority_id", priority.ID, "name", priority.Name)
	return priority, nil
}

func (s *PriorityServiceImpl) UpdatePriority(ctx context.Context, id int64, name string) (*models.Priority, error) {
	priority, err := s.GetPriority(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	priority.Name = name
	if err := s.priorityRepo.Update(ctx, priority); err != nil {
		logger.ErrorContext(ctx, "Failed to update priority", "priority_id", id, "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	return priority, nil
}

func (s *PriorityServiceImpl) DeletePriority(ctx context.Context, id int64) error {
	if err := s.priorityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrPriorityNotFound
		}
		logger.ErrorContext(ctx, "Failed to delete priority", "priority_id", id, "error", err)
		return err
	}

	s.invalidate(ctx)
	logger.InfoContext(ctx, "Priority deleted", "priority_id", id)
	return nil
}

func (s *PriorityServiceImpl) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.priorityRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return services.ErrPriorityNameTaken
	}
	return nil
}

func (s *PriorityServiceImpl) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, priorityCacheKey); err != nil {
		logger.WarnContext(ctx, "Priority cache invalidation failed", "error", err)
	}
}
