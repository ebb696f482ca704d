package session

import (
	"context"
	"fmt"
	"time"

	"classbook-svc/src/clients"
	"classbook-svc/src/internal/cache"
	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"
	"classbook-svc/src/internal/user"

	"github.com/sirupsen/logrus"
)

type Service interface {
	FindAll(ctx context.Context) ([]*Session, error)
	GetByID(ctx context.Context, id int64) (*Session, error)
	Create(ctx context.Context, dto *Dto) (*Session, error)
	Update(ctx context.Context, id int64, dto *Dto) (*Session, error)
	Delete(ctx context.Context, id int64) error
	Participate(ctx context.Context, sessionID, userID int64) error
	Unparticipate(ctx context.Context, sessionID, userID int64) error
}

type sessionService struct {
	sessionRepository Repository
	userRepository    user.Repository
	cacheService      cache.Service
	publisher         clients.Publisher
	cfg               *config.Configuration
}

func NewSessionService(
	sessionRepository Repository,
	userRepository user.Repository,
	cacheService cache.Service,
	publisher clients.Publisher,
	cfg *config.Configuration,
) Service {
	return &sessionService{
		sessionRepository: sessionRepository,
		userRepository:    userRepository,
		cacheService:      cacheService,
		publisher:         publisher,
		cfg:               cfg,
	}
}

func sessionKey(id int64) string {
	return fmt.Sprintf("session:%d", id)
}

func (s *sessionService) FindAll(ctx context.Context) ([]*Session, error) {
	return s.sessionRepository.FindAll(ctx)
}

// GetByID serves session reads through the cache. Cache errors degrade to
// a repository read.
func (s *sessionService) GetByID(ctx context.Context, id int64) (*Session, error) {
	var cached Session
	found, err := s.cacheService.Get(ctx, sessionKey(id), &cached)
	if err == nil && found {
		return &cached, nil
	}

	loaded, err := s.sessionRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.cfg.Cache.SessionExpirationMinutes) * time.Minute
	if err := s.cacheService.Set(ctx, sessionKey(id), loaded, ttl); err != nil {
		logrus.WithError(err).WithField("session_id", id).Warn("Failed to cache session")
	}

	return loaded, nil
}

func (s *sessionService) Create(ctx context.Context, dto *Dto) (*Session, error) {
	created, err := s.sessionRepository.Create(ctx, dto.ToSession())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"session_id": created.ID,
		"name":       created.Name,
	}).Info("Session created")

	return created, nil
}

func (s *sessionService) Update(ctx context.Context, id int64, dto *Dto) (*Session, error) {
	updated := dto.ToSession()
	updated.ID = id

	saved, err := s.sessionRepository.Update(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return saved, nil
}

func (s *sessionService) Delete(ctx context.Context, id int64) error {
	if err := s.sessionRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	logrus.WithField("session_id", id).Info("Session deleted")
	return nil
}

// Participate enrolls a user into a session. Enrolling twice is an error;
// the participant list keeps join order. Concurrent calls for the same
// session race at the store; the repository save is the only
// serialization point.
func (s *sessionService) Participate(ctx context.Context, sessionID, userID int64) error {
	loaded, err := s.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if _, err := s.userRepository.FindByID(ctx, userID); err != nil {
		return err
	}

	for _, id := range loaded.Users {
		if id == userID {
			return models.ErrAlreadyParticipating
		}
	}

	loaded.Users = append(loaded.Users, userID)
	if _, err := s.sessionRepository.Update(ctx, loaded); err != nil {
		return err
	}

	s.invalidate(ctx, sessionID)
	s.publishActivity(sessionID, userID, models.ActionParticipate)

	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    userID,
	}).Info("User joined session")

	return nil
}

// Unparticipate removes a user from a session. Unlike Participate, the
// user row itself is not looked up; only list membership is checked.
func (s *sessionService) Unparticipate(ctx context.Context, sessionID, userID int64) error {
	loaded, err := s.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	participates := false
	for _, id := range loaded.Users {
		if id == userID {
			participates = true
			break
		}
	}
	if !participates {
		return models.ErrNotParticipating
	}

	remaining := make([]int64, 0, len(loaded.Users))
	for _, id := range loaded.Users {
		if id != userID {
			remaining = append(remaining, id)
		}
	}
	loaded.Users = remaining

	if _, err := s.sessionRepository.Update(ctx, loaded); err != nil {
		return err
	}

	s.invalidate(ctx, sessionID)
	s.publishActivity(sessionID, userID, models.ActionUnparticipate)

	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    userID,
	}).Info("User left session")

	return nil
}

func (s *sessionService) invalidate(ctx context.Context, id int64) {
	if err := s.cacheService.Delete(ctx, sessionKey(id)); err != nil {
		logrus.WithError(err).WithField("session_id", id).Warn("Failed to invalidate session cache")
	}
}

func (s *sessionService) publishActivity(sessionID, userID int64, action string) {
	err := s.publisher.Publish(models.ActivityMessage{
		UserID:      userID,
		SessionID:   sessionID,
		ServiceName: models.ServiceSession,
		Action:      action,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"user_id":    userID,
			"action":     action,
		}).Warn("Failed to publish participation event")
	}
}
