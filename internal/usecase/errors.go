package usecase

import (
	"errors"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid username, email or password")
	ErrUserExists         = errors.New("user with email or username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrSignatureInvalid   = errors.New("token signature invalid")
	ErrSuperseded         = errors.New("refresh token superseded")
	ErrTargetNotFound     = errors.New("target not found")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrForbidden          = errors.New("forbidden")
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
