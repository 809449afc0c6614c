package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hrsuite/hr-management/internal/user"
)

// Claims is the payload carried by both access and refresh tokens:
// subject (user id), email and role. Nothing secret goes in here.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// VerificationPending is returned from sign-in instead of tokens when the
// account has not confirmed its email yet. It is a success response, not an
// error: the caller needs the user id to submit the emailed code.
type VerificationPending struct {
	VerificationID string `json:"verification_id"`
	Message        string `json:"message"`
}

// SignInResult holds exactly one of the two sign-in outcomes.
type SignInResult struct {
	Tokens  *Tokens
	Pending *VerificationPending
}

// TokenIssuer mints and verifies the two token kinds. Access and refresh
// tokens are signed with distinct secrets, so each Validate method only
// accepts its own kind.
type TokenIssuer interface {
	GenerateTokenPair(userID, email, role string) (Tokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// UserStore is the persistence surface the auth flows need. Implementations
// return errors from the shared taxonomy, never raw driver errors.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByPhone(ctx context.Context, phone string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByIDAndEmail(ctx context.Context, id, email string) (*user.User, error)

	// UpdateRefreshHash overwrites the stored refresh-token hash. Writing a
	// new hash is what invalidates the previous session.
	UpdateRefreshHash(ctx context.Context, userID, hash string) error
	// ClearRefreshHash nulls the stored hash, but only when one is set.
	ClearRefreshHash(ctx context.Context, userID string) error

	SetVerificationCode(ctx context.Context, userID string, code int, expiresAt time.Time) error
	SetApprovalState(ctx context.Context, userID string, state user.ApprovalState) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type ServiceAPI interface {
	SignIn(ctx context.Context, dto SignInDTO) (*SignInResult, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, userID, refreshToken string) (Tokens, error)
	VerifyAccount(ctx context.Context, dto VerifyDTO) (Tokens, error)
	SendVerificationCode(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, dto ResetPasswordDTO) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}
