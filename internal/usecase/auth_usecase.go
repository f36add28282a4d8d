package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/logging"
)

type RegisterInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"cover_image"`
}

// ClientInfo describes the caller for the auth audit trail.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type AuthUsecase struct {
	userRepo  domain.UserRepository
	eventRepo domain.AuthEventRepository
	tokens    *TokenUsecase
	logger    *slog.Logger
}

func NewAuthUsecase(userRepo domain.UserRepository, eventRepo domain.AuthEventRepository, tokens *TokenUsecase, logger *slog.Logger) *AuthUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthUsecase{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		tokens:    tokens,
		logger:    logging.WithComponent(logger, "auth"),
	}
}

func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email, full_name and password are required", domain.ErrInvalidInput)
	}

	for _, login := range []string{username, email} {
		existing, err := u.userRepo.GetByUsernameOrEmail(ctx, login)
		if err != nil {
			return nil, fmt.Errorf("check existing user: %w", err)
		}
		if existing != nil {
			return nil, ErrUserExists
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       input.Avatar,
		CoverImage:   input.CoverImage,
		PasswordHash: string(hashedPassword),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user.Sanitized(), nil
}

// Login accepts either the username or the email as login.
func (u *AuthUsecase) Login(ctx context.Context, login, password string, client ClientInfo) (*domain.User, *TokenPair, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username or email and password are required", domain.ErrInvalidInput)
	}

	user, err := u.userRepo.GetByUsernameOrEmail(ctx, login)
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := u.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	u.recordEvent(ctx, user.ID, domain.AuthEventLogin, client)
	return user.Sanitized(), tokens, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, userID uuid.UUID, client ClientInfo) error {
	if err := u.tokens.Revoke(ctx, userID); err != nil {
		return err
	}
	u.recordEvent(ctx, userID, domain.AuthEventLogout, client)
	return nil
}

func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrTokenMalformed
	}

	tokens, userID, err := u.tokens.Rotate(ctx, refreshToken)
	if errors.Is(err, ErrSuperseded) {
		u.logger.Warn("refresh token reuse detected, session revoked", "user_id", userID)
		u.recordEvent(ctx, userID, domain.AuthEventReuseDetected, client)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	u.recordEvent(ctx, userID, domain.AuthEventRefresh, client)
	return tokens, nil
}

// ChangePassword replaces the verifier and starts a fresh token chain, so
// refresh tokens minted before the change stop working.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) (*TokenPair, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, fmt.Errorf("%w: old and new password are required", domain.ErrInvalidInput)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return nil, fmt.Errorf("%w: invalid old password", domain.ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update password: %w", err)
	}

	return u.tokens.Issue(ctx, userID)
}

func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Sanitized(), nil
}

func (u *AuthUsecase) AuthEvents(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AuthEvent, error) {
	events, err := u.eventRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	return events, nil
}

// recordEvent is best effort; a failed audit write never fails the request.
func (u *AuthUsecase) recordEvent(ctx context.Context, userID uuid.UUID, kind string, client ClientInfo) {
	if u.eventRepo == nil || userID == uuid.Nil {
		return
	}
	event := &domain.AuthEvent{
		UserID:    userID,
		Kind:      kind,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
	}
	if err := u.eventRepo.Create(ctx, event); err != nil {
		u.logger.Error("failed to record auth event", "kind", kind, "user_id", userID, "error", err)
	}
}
