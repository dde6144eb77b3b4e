package services

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// DisplayCurrency resolves the currency a read should be rendered in:
	// the requested one when given, otherwise the user's default.
	DisplayCurrency(ctx context.Context, userID, requested string) (string, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks email and password and stamps the login time.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserRecoverySvc defines the forgotten-password flow
type UserRecoverySvc interface {
	// VerifySecurityAnswer returns a one-time reset token and its expiry.
	VerifySecurityAnswer(ctx context.Context, req dto.ForgotPasswordVerifyRequest) (string, time.Time, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserRecoverySvc
}

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
