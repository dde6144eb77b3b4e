package repositories

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user; a taken email yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserLoggedIn(ctx context.Context, userID string, at time.Time) error
	// SetResetToken stores the hash of a freshly issued password reset token.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// ConsumeResetToken replaces the password hash and clears the reset token, but only
	// while tokenHash is still the stored one and has not expired at at. It reports
	// whether the token was consumed.
	ConsumeResetToken(ctx context.Context, userID, tokenHash, passwordHash string, at time.Time) (bool, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
