package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	Approve(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
	log    *logger.Logger
	users  repos.UserRepo
	notify NotificationService
	format *Formatter
}

func NewUserService(baseLog *logger.Logger, users repos.UserRepo, notify NotificationService, format *Formatter) UserService {
	return &userService{
		log:    baseLog.With("service", "UserService"),
		users:  users,
		notify: notify,
		format: format,
	}
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return s.users.GetByID(ctx, nil, userID)
}

// Approve activates a pending registration and tells the user. Approving an
// already-active account is a no-op and sends nothing.
func (s *userService) Approve(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return user, nil
	}
	if err := s.users.SetActive(ctx, nil, userID, true); err != nil {
		return nil, err
	}
	user.IsActive = true

	msg := s.format.RegistrationAccepted()
	if _, err := s.notify.Enqueue(ctx, types.EventRegistrationAccepted, user.ID, msg, ""); err != nil {
		return user, err
	}
	return user, nil
}
