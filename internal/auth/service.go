package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"log/slog"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// Service orchestrates the authentication lifecycle: sign-in, logout,
// refresh rotation, account verification and password reset.
type Service struct {
	store      UserStore
	tokens     TokenIssuer
	codes      *CodeManager
	bcryptCost int
	logger     *slog.Logger
}

func NewService(store UserStore, tokens TokenIssuer, codes *CodeManager, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		tokens:     tokens,
		codes:      codes,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// SignIn authenticates by email or phone. An unverified account gets a
// verification code instead of tokens; a verified one gets a fresh token
// pair with the refresh hash persisted.
func (s *Service) SignIn(ctx context.Context, dto SignInDTO) (*SignInResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var (
		u   *user.User
		err error
	)
	if dto.Email != "" {
		u, err = s.store.FindByEmail(ctx, dto.Email)
	} else {
		u, err = s.store.FindByPhone(ctx, dto.Phone)
	}
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			// same error shape as a wrong password
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !u.IsVerified() {
		if err := s.codes.IssueCode(ctx, u.ID); err != nil {
			return nil, err
		}
		s.logger.Info("sign-in pending verification", "user_id", u.ID)
		return &SignInResult{Pending: &VerificationPending{
			VerificationID: u.ID,
			Message:        "Email verification required. Code sent.",
		}}, nil
	}

	tokens, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sign-in succeeded", "user_id", u.ID, "role", u.Role)
	return &SignInResult{Tokens: &tokens}, nil
}

// Logout revokes the caller's session. Calling it with no active session is
// a no-op, so repeated logouts are harmless.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.store.ClearRefreshHash(ctx, userID); err != nil {
		s.logger.Error("failed to clear refresh hash", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("logged out", "user_id", userID)
	return nil
}

// Refresh trades a valid refresh token for a fresh pair. The presented
// plaintext must match the stored hash; rotation happens on every use, so
// the old refresh token dies the moment the new one is minted.
func (s *Service) Refresh(ctx context.Context, userID, refreshToken string) (Tokens, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return Tokens{}, internal.ErrSessionRevoked
		}
		return Tokens{}, err
	}
	if u.HashedRefreshToken == nil {
		return Tokens{}, internal.ErrSessionRevoked
	}

	if err := compareRefreshToken(*u.HashedRefreshToken, refreshToken); err != nil {
		return Tokens{}, internal.ErrSessionRevoked
	}

	tokens, err := s.issueSession(ctx, u)
	if err != nil {
		return Tokens{}, err
	}

	s.logger.Info("tokens refreshed", "user_id", userID)
	return tokens, nil
}

// VerifyAccount consumes the emailed code, flips the account to VERIFIED and
// signs the user in.
func (s *Service) VerifyAccount(ctx context.Context, dto VerifyDTO) (Tokens, error) {
	if err := dto.Validate(); err != nil {
		return Tokens{}, err
	}

	u, err := s.store.FindByID(ctx, dto.UserID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return Tokens{}, internal.ErrAccessDenied
		}
		return Tokens{}, err
	}

	if err := s.codes.ConsumeCode(u, dto.Code); err != nil {
		return Tokens{}, err
	}

	if err := s.store.SetApprovalState(ctx, u.ID, user.ApprovalVerified); err != nil {
		return Tokens{}, err
	}

	tokens, err := s.issueSession(ctx, u)
	if err != nil {
		return Tokens{}, err
	}

	s.logger.Info("account verified", "user_id", u.ID)
	return tokens, nil
}

// SendVerificationCode backs both the resend-code and request-password-reset
// endpoints.
func (s *Service) SendVerificationCode(ctx context.Context, userID string) error {
	return s.codes.IssueCode(ctx, userID)
}

// ResetPassword validates the user by id and email jointly, consumes the
// code, and overwrites the password hash. No tokens are issued; the caller
// signs in again with the new password.
func (s *Service) ResetPassword(ctx context.Context, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.store.FindByIDAndEmail(ctx, dto.UserID, dto.Email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return internal.ErrAccessDenied
		}
		return err
	}

	if err := s.codes.ConsumeCode(u, dto.Code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.store.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password reset", "user_id", u.ID)
	return nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateRefreshToken(tokenString)
}

// issueSession mints a token pair and stores the bcrypt hash of the refresh
// token, making it the user's only live session.
func (s *Service) issueSession(ctx context.Context, u *user.User) (Tokens, error) {
	tokens, err := s.tokens.GenerateTokenPair(u.ID, u.Email, string(u.Role))
	if err != nil {
		return Tokens{}, internal.NewInternalError("failed to sign tokens", err)
	}

	hash, err := hashRefreshToken(tokens.RefreshToken, s.bcryptCost)
	if err != nil {
		return Tokens{}, internal.NewInternalError("failed to hash refresh token", err)
	}

	if err := s.store.UpdateRefreshHash(ctx, u.ID, hash); err != nil {
		return Tokens{}, err
	}

	return tokens, nil
}

// bcrypt caps its input at 72 bytes and a signed JWT is far longer, so the
// token is digested before the slow hash on both the write and compare paths.
func hashRefreshToken(token string, cost int) (string, error) {
	digest := sha256.Sum256([]byte(token))
	hash, err := bcrypt.GenerateFromPassword(digest[:], cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func compareRefreshToken(storedHash, token string) error {
	digest := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(storedHash), digest[:])
}
