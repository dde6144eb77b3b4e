package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	errInvalidCredentials = apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", nil)
	errNoRecovery         = apperrors.NewNotFoundError("no account with a security question for this email")
	errInvalidResetToken  = apperrors.NewValidationError("reset token is invalid or has expired")
)

type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	categorySvc  portssvc.CategorySvcFacade
	baseCurrency string
	resetTTL     time.Duration
	now          Clock
}

// UserServiceOption configures the user service
type UserServiceOption func(*userService)

// WithUserClock overrides the time source.
func WithUserClock(now Clock) UserServiceOption {
	return func(s *userService) { s.now = now }
}

// WithResetTokenTTL sets how long a password reset token stays usable.
func WithResetTokenTTL(ttl time.Duration) UserServiceOption {
	return func(s *userService) { s.resetTTL = ttl }
}

// NewUserService creates a new user service. New users default to baseCurrency and
// get the starter categories from categorySvc.
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	categorySvc portssvc.CategorySvcFacade,
	baseCurrency string,
	options ...UserServiceOption,
) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:     userRepo,
		categorySvc:  categorySvc,
		baseCurrency: domain.NormalizeCurrencyCode(baseCurrency, domain.DefaultBaseCurrency),
		resetTTL:     domain.ResetTokenTTL,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) DisplayCurrency(ctx context.Context, userID, requested string) (string, error) {
	if strings.TrimSpace(requested) != "" {
		return domain.NormalizeCurrencyCode(requested, s.baseCurrency), nil
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return domain.NormalizeCurrencyCode(user.DefaultCurrency, s.baseCurrency), nil
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", utils.MinPasswordLength))
	}
	question, answerHash, err := securityAnswer(req.SecurityQuestion, req.SecurityAnswer)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	currency := domain.NormalizeCurrencyCode(req.DefaultCurrency, s.baseCurrency)
	now := s.now()
	user := domain.User{
		UserID:                uuid.NewString(),
		Email:                 email,
		PasswordHash:          hash,
		DisplayName:           strings.TrimSpace(req.DisplayName),
		DefaultCurrency:       currency,
		MonthlyIncomeCurrency: currency,
		Role:                  domain.RoleUser,
		SecurityQuestion:      question,
		SecurityAnswerHash:    answerHash,
		AuditFields:           domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, "email is already registered", err)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}

	if s.categorySvc != nil {
		if err := s.categorySvc.SeedDefaultCategories(ctx, user.UserID); err != nil {
			s.LogWarn(ctx, "User registered without default categories",
				slog.String("user_id", user.UserID),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// securityAnswer validates an optional question and answer pair and hashes the answer.
func securityAnswer(question, answer string) (string, string, error) {
	question = domain.NormalizeSecurityQuestion(question)
	answer = strings.TrimSpace(answer)
	switch {
	case question == "" && answer == "":
		return "", "", nil
	case question == "" || answer == "":
		return "", "", apperrors.NewValidationError("securityQuestion and securityAnswer must be given together")
	case !domain.IsSecurityQuestion(question):
		return "", "", apperrors.NewValidationError("securityQuestion is not one of the known questions")
	case utf8.RuneCountInString(answer) < domain.MinSecurityAnswerLength:
		return "", "", apperrors.NewValidationError(
			fmt.Sprintf("securityAnswer must be at least %d characters", domain.MinSecurityAnswerLength))
	}
	hash, err := utils.HashPassword(answer)
	if err != nil {
		return "", "", err
	}
	return question, hash, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.DefaultCurrency != nil {
		user.DefaultCurrency = domain.NormalizeCurrencyCode(*req.DefaultCurrency, user.DefaultCurrency)
	}
	if req.MonthlyIncome != nil {
		if req.MonthlyIncome.IsNegative() {
			return nil, apperrors.NewValidationError("monthlyIncome cannot be negative")
		}
		user.MonthlyIncome = decimal.NewNullDecimal(*req.MonthlyIncome)
	}
	if req.MonthlyIncomeCurrency != nil {
		user.MonthlyIncomeCurrency = domain.NormalizeCurrencyCode(*req.MonthlyIncomeCurrency, user.DefaultCurrency)
	}
	user.LastUpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Failed login attempt", slog.String("user_id", user.UserID))
		return nil, errInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.MarkUserLoggedIn(ctx, user.UserID, now); err != nil {
		s.LogWarn(ctx, "Failed to record login time",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
	} else {
		user.LastLoginAt = &now
	}
	return user, nil
}

// VerifySecurityAnswer checks the answer to the account's security question and,
// when it matches, issues a reset token valid for the configured TTL.
func (s *userService) VerifySecurityAnswer(ctx context.Context, req dto.ForgotPasswordVerifyRequest) (string, time.Time, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, errNoRecovery
		}
		return "", time.Time{}, err
	}
	if user.SecurityQuestion == "" || user.SecurityAnswerHash == "" {
		return "", time.Time{}, errNoRecovery
	}
	if domain.NormalizeSecurityQuestion(req.SecurityQuestion) != user.SecurityQuestion {
		return "", time.Time{}, apperrors.NewValidationError("security question does not match the one on file")
	}
	if !utils.CheckPasswordHash(strings.TrimSpace(req.SecurityAnswer), user.SecurityAnswerHash) {
		s.LogWarn(ctx, "Wrong security answer", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.NewValidationError("security answer is incorrect")
	}

	token, err := utils.GenerateResetToken(utils.ResetTokenBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := s.now().Add(s.resetTTL)
	if err := s.userRepo.SetResetToken(ctx, user.UserID, utils.HashResetToken(token), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store reset token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}

	s.LogInfo(ctx, "Password reset token issued", slog.String("user_id", user.UserID))
	return token, expiresAt, nil
}

// ResetPassword replaces the password when the reset token matches and has not
// expired. A token works once.
func (s *userService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match")
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", utils.MinPasswordLength))
	}
	token := strings.TrimSpace(req.ResetToken)
	if token == "" {
		return errInvalidResetToken
	}

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errInvalidResetToken
		}
		return err
	}
	now := s.now()
	if !user.ResetTokenUsable(now) || !utils.CompareResetTokenHash(token, user.ResetTokenHash) {
		s.LogWarn(ctx, "Rejected password reset token", slog.String("user_id", user.UserID))
		return errInvalidResetToken
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	consumed, err := s.userRepo.ConsumeResetToken(ctx, user.UserID, user.ResetTokenHash, hash, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to reset password", slog.String("user_id", user.UserID))
		return err
	}
	if !consumed {
		return errInvalidResetToken
	}

	s.LogInfo(ctx, "Password reset", slog.String("user_id", user.UserID))
	return nil
}
