package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
)

const serviceUserEmail = "api@miv.local"

// EnsureServiceUser returns the user that API mutations are attributed to
// when the auth layer carries no richer identity, creating it on first run.
func EnsureServiceUser(ctx context.Context, users repository.UserRepo) (*domain.User, error) {
	user, err := users.GetByEmail(ctx, serviceUserEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &domain.User{
		ID:        uuid.New().String(),
		Name:      "API Service",
		Email:     serviceUserEmail,
		Role:      "service",
		CreatedAt: time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
