package user

import (
	"context"
	"errors"

	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"
	"classbook-svc/src/internal/security"

	"github.com/sirupsen/logrus"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Delete(ctx context.Context, id int64) error

	// FindPrincipalByEmail resolves a request identity for the auth
	// middleware.
	FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error)
}

type userService struct {
	userRepository Repository
	cfg            *config.Configuration
}

func NewUserService(userRepository Repository, cfg *config.Configuration) Service {
	return &userService{
		userRepository: userRepository,
		cfg:            cfg,
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.userRepository.FindByID(ctx, id)
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	taken, err := s.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password, s.cfg.Security.BcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	created, err := s.userRepository.Create(ctx, &User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Admin:     false,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID,
		"email":   created.Email,
	}).Info("User registered")

	return created, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	found, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Do not reveal whether the account exists.
			return nil, models.ErrBadCredentials
		}
		return nil, err
	}

	if err := security.CheckPassword(found.Password, password); err != nil {
		return nil, err
	}

	return found, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepository.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}

func (s *userService) FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	found, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return found.ToPrincipal(), nil
}
