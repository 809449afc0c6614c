package user

import (
	"time"
)

// Role is an ordered enum: every role maps to a numeric level and a caller
// passes a gate when their level is at least the minimum required one.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Level returns the numeric rank of a role. Unrecognized roles rank below
// every real role.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	default:
		return 0
	}
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// MinLevel returns the lowest level among the given roles, so a gate declared
// as "ADMIN or SUPER_ADMIN" only requires the ADMIN level.
func MinLevel(roles []Role) int {
	if len(roles) == 0 {
		return 0
	}
	min := roles[0].Level()
	for _, r := range roles[1:] {
		if l := r.Level(); l < min {
			min = l
		}
	}
	return min
}

type ApprovalState string

const (
	ApprovalNotVerified ApprovalState = "NOT_VERIFIED"
	ApprovalVerified    ApprovalState = "VERIFIED"
)

// User is the identity record. The refresh-token hash column is the whole
// session model: a non-null hash marks the single active session for the
// user, and clearing it logs every holder out.
type User struct {
	ID                        string        `json:"id" gorm:"primaryKey;column:id"`
	Name                      string        `json:"name" gorm:"column:name;not null"`
	Email                     string        `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Phone                     *string       `json:"phone,omitempty" gorm:"column:phone;uniqueIndex"`
	PasswordHash              string        `json:"-" gorm:"column:password_hash;not null"`
	Role                      Role          `json:"role" gorm:"column:role;default:ADMIN"`
	ApprovalState             ApprovalState `json:"approval_state" gorm:"column:approval_state;default:NOT_VERIFIED"`
	HashedRefreshToken        *string       `json:"-" gorm:"column:hashed_refresh_token"`
	VerificationCode          *int          `json:"-" gorm:"column:verification_code"`
	VerificationCodeExpiresAt *time.Time    `json:"-" gorm:"column:verification_code_expires_at"`
	CreatedAt                 time.Time     `json:"created_at" gorm:"column:created_at"`
	UpdatedAt                 time.Time     `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsVerified() bool {
	return u.ApprovalState == ApprovalVerified
}
