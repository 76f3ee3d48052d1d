package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourbase/internal/common"
	"tourbase/internal/common/security"
	"tourbase/internal/domain/model"
	"tourbase/internal/domain/repository"
	"tourbase/internal/platform/config"
	"tourbase/internal/platform/mail"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	jwt      *security.JWT
	mailer   mail.Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, jwt *security.JWT, mailer mail.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt, mailer: mailer, cfg: cfg}
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// AuthResponse carries a freshly minted credential and the sanitized account
// view; the handler turns it into the cookie + JSON envelope.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"-"`
}

// issueSession mints a token for the account and strips secret fields from
// the returned representation.
func (s *AuthService) issueSession(user *model.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.Sanitize()
	return &AuthResponse{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("please provide name, email and password: %w", common.ErrBadRequest)
	}
	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("passwords do not match: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          normalizeEmail(req.Email),
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Role is never client-assignable
		Active:         true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("please provide email and password: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same outcome as a wrong password so login does not leak
			// which of the two was incorrect.
			return nil, fmt.Errorf("incorrect email or password: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("incorrect email or password: %w", common.ErrUnauthorized)
	}

	return s.issueSession(user)
}

// ForgotPassword generates a single-use reset token, stores only its hash
// plus expiry, and mails the plain token. A delivery failure rolls the
// stored fields back so the unsent token can never be redeemed. A repeat
// request simply overwrites the previous token.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	if email == "" {
		return fmt.Errorf("please provide an email address: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("there is no user with that email address: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	plain, hash, expires, err := security.GenerateResetToken(s.cfg.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, hash, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := strings.TrimRight(resetURLBase, "/") + "/" + plain
	subject := fmt.Sprintf("Your password reset token (valid for %d min)", int(s.cfg.ResetTokenTTL.Minutes()))
	body := fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s.\nIf you didn't forget your password, please ignore this email!", resetURL)

	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		// The token was never delivered; make sure it cannot be redeemed.
		if clearErr := s.userRepo.ClearPasswordResetToken(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("failed to clear reset token after delivery error: %v: %w", clearErr, common.ErrDeliveryFailed)
		}
		return fmt.Errorf("there was an error sending the email, try again later: %w", common.ErrDeliveryFailed)
	}
	return nil
}

// ResetPassword redeems a plain reset token. The token is matched by its
// hash and must be unexpired; redemption clears the stored fields whether
// the flow is ever repeated, because UpdatePassword wipes them atomically.
// The user ends the flow with a fresh session.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken string, req ResetPasswordRequest) (*AuthResponse, error) {
	if req.Password == "" {
		return nil, fmt.Errorf("please provide a new password: %w", common.ErrBadRequest)
	}
	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("passwords do not match: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByResetToken(ctx, security.HashResetToken(plainToken))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("token is invalid or has expired: %w", common.ErrInvalidResetToken)
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	user.HashedPassword = hashedPassword
	return s.issueSession(user)
}

// UpdatePassword changes the password of an authenticated account after the
// caller proves knowledge of the current one. The password_changed_at stamp
// set by the repository makes every previously issued token stale.
func (s *AuthService) UpdatePassword(ctx context.Context, userID string, req UpdatePasswordRequest) (*AuthResponse, error) {
	if req.PasswordCurrent == "" || req.Password == "" {
		return nil, fmt.Errorf("please provide your current and new password: %w", common.ErrBadRequest)
	}
	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("passwords do not match: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.PasswordCurrent, user.HashedPassword) {
		return nil, fmt.Errorf("your current password is wrong: %w", common.ErrNotFound)
	}

	hashedPassword, err := security.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	user.HashedPassword = hashedPassword
	return s.issueSession(user)
}
