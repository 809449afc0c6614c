package auth

import (
	"github.com/hrsuite/hr-management/internal"
)

// SignInDTO accepts either an email or a phone number plus the password.
type SignInDTO struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

func (d SignInDTO) Validate() *internal.AppError {
	if d.Email == "" && d.Phone == "" {
		return internal.NewValidationFieldError("email", "either email or phone is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type VerifyDTO struct {
	UserID string `json:"user_id"`
	Code   int    `json:"code"`
}

func (d VerifyDTO) Validate() *internal.AppError {
	if d.UserID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Code == 0 {
		return internal.NewValidationFieldError("code", "code is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UserIDDTO struct {
	UserID string `json:"user_id"`
}

func (d UserIDDTO) Validate() *internal.AppError {
	if d.UserID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ResetPasswordDTO requires the user id and email jointly as an extra check
// on top of the emailed code.
type ResetPasswordDTO struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Code        int    `json:"code"`
	NewPassword string `json:"new_password"`
}

func (d ResetPasswordDTO) Validate() *internal.AppError {
	if d.UserID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if d.Code == 0 {
		return internal.NewValidationFieldError("code", "code is required", internal.ErrCodeValidationFailed)
	}
	if d.NewPassword == "" {
		return internal.NewValidationFieldError("new_password", "new_password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}
