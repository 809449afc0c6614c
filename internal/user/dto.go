package user

import (
	"strings"

	"github.com/hrsuite/hr-management/internal"
)

// CreateUserDTO is the payload for registering a new admin-side user. The
// account starts NOT_VERIFIED; the first sign-in triggers email verification.
type CreateUserDTO struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

func (d CreateUserDTO) Validate() *internal.AppError {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(d.Email, "@") {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationFieldError("password", "password must be at least 6 characters", internal.ErrCodeValidationFailed)
	}
	if d.Phone != nil && strings.TrimSpace(*d.Phone) == "" {
		return internal.NewValidationFieldError("phone", "phone must not be blank when provided", internal.ErrCodeValidationFailed)
	}
	if d.Role != nil && !d.Role.IsValid() {
		return internal.NewValidationFieldError("role", "role must be ADMIN or SUPER_ADMIN", internal.ErrCodeInvalidEnumValue)
	}
	return nil
}

type CreateUserResponse struct {
	Message string `json:"message"`
}
