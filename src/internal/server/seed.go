package server

import (
	"context"
	"errors"

	"classbook-svc/src/internal/dependency"
	"classbook-svc/src/internal/models"
	"classbook-svc/src/internal/security"
	"classbook-svc/src/internal/teacher"
	"classbook-svc/src/internal/user"
)

// seed brings a fresh database to a usable state: the configured admin
// account and a default teacher roster. Re-running is a no-op.
func seed(ctx context.Context, deps *dependency.Manager) error {
	if err := seedAdmin(ctx, deps); err != nil {
		return err
	}
	return seedTeachers(ctx, deps)
}

func seedAdmin(ctx context.Context, deps *dependency.Manager) error {
	sec := deps.Config.Security
	if sec.AdminEmail == "" || sec.AdminPassword == "" {
		log.Debug("Admin seed not configured, skipping")
		return nil
	}

	exists, err := deps.UserRepository.ExistsByEmail(ctx, sec.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := security.HashPassword(sec.AdminPassword, sec.BcryptCost)
	if err != nil {
		return err
	}

	created, err := deps.UserRepository.Create(ctx, &user.User{
		Email:     sec.AdminEmail,
		Password:  hash,
		FirstName: sec.AdminFirstName,
		LastName:  sec.AdminLastName,
		Admin:     true,
	})
	if err != nil {
		// Lost the race against a concurrent startup; the account exists.
		if errors.Is(err, models.ErrEmailTaken) {
			return nil
		}
		return err
	}

	log.WithField("email", created.Email).Info("Seeded admin account")
	return nil
}

func seedTeachers(ctx context.Context, deps *dependency.Manager) error {
	existing, err := deps.TeacherRepository.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []*teacher.Teacher{
		{FirstName: "Margot", LastName: "DELAHAYE"},
		{FirstName: "Helene", LastName: "THIERCELIN"},
	}

	for _, t := range defaults {
		if _, err := deps.TeacherRepository.Create(ctx, t); err != nil {
			return err
		}
	}

	log.WithField("count", len(defaults)).Info("Seeded teacher roster")
	return nil
}
