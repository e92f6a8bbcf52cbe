package service

import (
	"context"

	"pizza-shop/internal/model"
	"pizza-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// List returns every user.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Get returns a user along with whether the requester may see the full
// record. Owners and admins get the full record; any other authenticated
// user gets the public projection.
func (s *userService) Get(ctx context.Context, id uuid.UUID, requester *model.User) (*model.User, bool, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, model.ErrUserNotFound
	}

	full := user.ID == requester.ID || requester.Admin
	return user, full, nil
}

// Patch updates profile fields, restricted to the owner or an admin.
// A username change is checked for uniqueness first so the caller gets
// the conflict message rather than a bare constraint failure.
func (s *userService) Patch(ctx context.Context, id uuid.UUID, requester *model.User, patch UserPatch) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if user.ID != requester.ID && !requester.Admin {
		s.logger.Warn().
			Str("user_id", id.String()).
			Str("requester_id", requester.ID.String()).
			Msg("profile update denied")
		return nil, model.ErrUnauthorised
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := s.userRepo.GetByUsername(ctx, *patch.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, model.ErrUsernameTaken
		}
		user.Username = *patch.Username
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user profile updated")
	return user, nil
}

// Delete removes a user and returns the deleted record.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return user, nil
}
