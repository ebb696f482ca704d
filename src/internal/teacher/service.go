package teacher

import (
	"context"
	"time"

	"classbook-svc/src/internal/cache"
	"classbook-svc/src/internal/config"

	"github.com/sirupsen/logrus"
)

type Service interface {
	FindAll(ctx context.Context) ([]*Teacher, error)
	GetByID(ctx context.Context, id int64) (*Teacher, error)
}

type teacherService struct {
	teacherRepository Repository
	cacheService      cache.Service
	cfg               *config.Configuration
}

func NewTeacherService(teacherRepository Repository, cacheService cache.Service, cfg *config.Configuration) Service {
	return &teacherService{
		teacherRepository: teacherRepository,
		cacheService:      cacheService,
		cfg:               cfg,
	}
}

// FindAll serves the teacher roster through the cache. The roster changes
// rarely, so cache failures fall back to the repository silently.
func (s *teacherService) FindAll(ctx context.Context) ([]*Teacher, error) {
	key := s.cfg.Cache.TeacherRosterKey

	var cached []*Teacher
	found, err := s.cacheService.Get(ctx, key, &cached)
	if err == nil && found {
		return cached, nil
	}

	teachers, err := s.teacherRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.cfg.Cache.TeacherExpirationMinutes) * time.Minute
	if err := s.cacheService.Set(ctx, key, teachers, ttl); err != nil {
		logrus.WithError(err).Warn("Failed to cache teacher roster")
	}

	return teachers, nil
}

func (s *teacherService) GetByID(ctx context.Context, id int64) (*Teacher, error) {
	return s.teacherRepository.FindByID(ctx, id)
}
