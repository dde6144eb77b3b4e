package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loginRate caps login and password recovery attempts per client IP.
const loginRate = "5-M"

// authHandler handles registration and login.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade) error {
	h := newAuthHandler(userService, tokenService)

	loginLimiter, err := middleware.NewIPRateLimiter(loginRate)
	if err != nil {
		return err
	}
	recoveryLimiter, err := middleware.NewIPRateLimiter(loginRate)
	if err != nil {
		return err
	}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
		auth.POST("/register", h.register)
		auth.GET("/security-questions", h.listSecurityQuestions)

		recovery := auth.Group("/forgot-password", middleware.RateLimit(recoveryLimiter))
		recovery.POST("/verify", h.verifySecurityAnswer)
		recovery.POST("/reset", h.resetPassword)
	}
	return nil
}

// register godoc
// @Summary Register new user
// @Description Creates a new user, seeds the default categories and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		respondServiceError(c, logger, err, "Failed to register user")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondServiceError(c, logger, err, "Failed to log in")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}

// listSecurityQuestions godoc
// @Summary List security questions
// @Description Questions a user may pick at registration for password recovery
// @Tags auth
// @Produce json
// @Success 200 {array} dto.SecurityQuestionResponse
// @Router /auth/security-questions [get]
func (h *authHandler) listSecurityQuestions(c *gin.Context) {
	keys := domain.SecurityQuestionKeys()
	resp := make([]dto.SecurityQuestionResponse, len(keys))
	for i, key := range keys {
		resp[i] = dto.SecurityQuestionResponse{Key: key, Prompt: domain.SecurityQuestions[key]}
	}
	c.JSON(http.StatusOK, resp)
}

// verifySecurityAnswer godoc
// @Summary Verify security answer
// @Description Checks the answer to the account's security question and returns a reset token valid for 15 minutes.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.ForgotPasswordVerifyRequest true "Security answer"
// @Success 200 {object} dto.ForgotPasswordVerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No account with a security question"
// @Failure 429 {object} ErrorResponse
// @Router /auth/forgot-password/verify [post]
func (h *authHandler) verifySecurityAnswer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ForgotPasswordVerifyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	token, expiresAt, err := h.userService.VerifySecurityAnswer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to verify security answer")
		return
	}
	c.JSON(http.StatusOK, dto.ForgotPasswordVerifyResponse{ResetToken: token, ExpiresAt: expiresAt})
}

// resetPassword godoc
// @Summary Reset password
// @Description Sets a new password using a reset token. The token works once.
// @Tags auth
// @Accept json
// @Param reset body dto.ResetPasswordRequest true "New password"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/forgot-password/reset [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetPasswordRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req); err != nil {
		respondServiceError(c, logger, err, "Failed to reset password")
		return
	}
	logger.Info("Password reset completed")
	c.Status(http.StatusNoContent)
}
