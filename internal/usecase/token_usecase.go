package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/config"
	"github.com/GuranshBedi/Backendd/internal/domain"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

type AccessClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// RefreshClaims carries the token identifier in the registered jti claim.
type RefreshClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenUsecase mints, verifies and rotates access/refresh pairs. Each user has
// a single refresh slot; a refresh token is only valid while its jti is the
// value in that slot.
type TokenUsecase struct {
	tokenRepo domain.RefreshTokenRepository
	userRepo  domain.UserRepository
	cfg       *config.JWTConfig
	now       func() time.Time
}

func NewTokenUsecase(tokenRepo domain.RefreshTokenRepository, userRepo domain.UserRepository, cfg *config.JWTConfig) *TokenUsecase {
	return &TokenUsecase{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Issue starts a new rotation chain for the user, replacing any previous one.
func (u *TokenUsecase) Issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	tokenID := uuid.New()
	if err := u.tokenRepo.Store(ctx, userID, tokenID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return u.mint(userID, tokenID)
}

// Rotate exchanges a live refresh token for a new pair. Presenting a token
// that is no longer in the slot ends the session: the slot is cleared and
// ErrSuperseded is returned. The user id is returned whenever the token
// verified, even on failure.
func (u *TokenUsecase) Rotate(ctx context.Context, refreshToken string) (*TokenPair, uuid.UUID, error) {
	claims := &RefreshClaims{}
	if err := u.parse(refreshToken, claims, u.cfg.RefreshSecret); err != nil {
		return nil, uuid.Nil, err
	}
	presented, err := uuid.Parse(claims.ID)
	if err != nil || claims.UserID == uuid.Nil {
		return nil, uuid.Nil, ErrTokenMalformed
	}

	next := uuid.New()
	swapped, err := u.tokenRepo.CompareAndSwap(ctx, claims.UserID, presented, next)
	if err != nil {
		return nil, claims.UserID, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !swapped {
		user, err := u.userRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, claims.UserID, fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return nil, claims.UserID, ErrUserNotFound
		}
		if err := u.tokenRepo.Clear(ctx, claims.UserID); err != nil {
			return nil, claims.UserID, fmt.Errorf("revoke superseded chain: %w", err)
		}
		return nil, claims.UserID, ErrSuperseded
	}

	pair, err := u.mint(claims.UserID, next)
	if err != nil {
		return nil, claims.UserID, err
	}
	return pair, claims.UserID, nil
}

// Revoke makes every outstanding refresh token of the user unusable.
func (u *TokenUsecase) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := u.tokenRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// VerifyAccess checks signature and expiry only; it never touches the store.
func (u *TokenUsecase) VerifyAccess(accessToken string) (uuid.UUID, error) {
	claims := &AccessClaims{}
	if err := u.parse(accessToken, claims, u.cfg.Secret); err != nil {
		return uuid.Nil, err
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return claims.UserID, nil
}

func (u *TokenUsecase) mint(userID, tokenID uuid.UUID) (*TokenPair, error) {
	now := u.now()
	accessExpiry := now.Add(u.cfg.AccessExpiry)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
	})
	accessString, err := access.SignedString([]byte(u.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.RefreshExpiry)),
		},
	})
	refreshString, err := refresh.SignedString([]byte(u.cfg.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		ExpiresAt:    accessExpiry.Unix(),
	}, nil
}

func (u *TokenUsecase) parse(tokenString string, claims jwt.Claims, secret string) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
