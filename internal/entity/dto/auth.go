package dto

import "time"

// AuthRegisterRequest is the registration request payload.
type AuthRegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=255"`
	CompanyName string `json:"company_name" validate:"omitempty,max=255"`
	Role        string `json:"role" validate:"required,oneof=manufacturer brand retailer"`
}

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after successful login.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

// VerifyEmailRequest confirms a pending registration with the mailed code.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResendVerificationRequest asks for a fresh verification code.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the reset flow with the mailed token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfileUpdateRequest mutates the caller's own account.
type ProfileUpdateRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=255"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8"`
}
