package dto

import "time"

// RegisterRequest defines the payload for creating an account.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	DisplayName     string `json:"displayName" binding:"omitempty,max=100"`
	DefaultCurrency string `json:"defaultCurrency" binding:"omitempty,currency"`

	// SecurityQuestion and SecurityAnswer enable password recovery; both or neither.
	SecurityQuestion string `json:"securityQuestion" binding:"omitempty,max=50"`
	SecurityAnswer   string `json:"securityAnswer" binding:"omitempty,max=200"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login or registration.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// SecurityQuestionResponse is one question a user may pick for password recovery.
type SecurityQuestionResponse struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

// ForgotPasswordVerifyRequest answers the account's security question.
type ForgotPasswordVerifyRequest struct {
	Email            string `json:"email" binding:"required,email"`
	SecurityQuestion string `json:"securityQuestion" binding:"required,max=50"`
	SecurityAnswer   string `json:"securityAnswer" binding:"required,max=200"`
}

// ForgotPasswordVerifyResponse carries the one-time reset token.
type ForgotPasswordVerifyResponse struct {
	ResetToken string    `json:"resetToken"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	ResetToken      string `json:"resetToken" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
