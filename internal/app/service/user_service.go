package service

import (
	"context"
	"fmt"

	"tourbase/internal/common"
	"tourbase/internal/domain/model"
	"tourbase/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateMeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`

	// Present only to detect misuse: password changes must go through the
	// dedicated password route.
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdateMe changes name and/or email of the authenticated account. Any
// password material in the payload is rejected outright.
func (s *UserService) UpdateMe(ctx context.Context, user *model.User, req UpdateMeRequest) (*model.User, error) {
	if req.Password != "" || req.PasswordConfirm != "" {
		return nil, fmt.Errorf("this route is not for password updates, please use /updateMyPassword: %w", common.ErrBadRequest)
	}

	name := user.Name
	if req.Name != "" {
		name = req.Name
	}
	email := user.Email
	if req.Email != "" {
		email = normalizeEmail(req.Email)
	}

	updated, err := s.userRepo.UpdateProfile(ctx, user.ID, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	updated.Sanitize()
	return updated, nil
}

// DeleteMe soft-deletes the account by clearing the active flag; the row is
// kept and simply disappears from every active-only lookup.
func (s *UserService) DeleteMe(ctx context.Context, userID string) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}
