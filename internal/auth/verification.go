package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/mail"
	"github.com/hrsuite/hr-management/internal/user"
)

const (
	codeTTL        = 10 * time.Minute
	resendCooldown = 1 * time.Minute
	codeMin        = 10000
	codeMax        = 99999
)

// CodeManager issues and checks the one-time numeric codes used for email
// verification and password reset. Codes are stored in plaintext on the user
// row together with their expiry.
type CodeManager struct {
	store  UserStore
	mailer mail.Mailer
	logger *slog.Logger

	now     func() time.Time
	randInt func(n int) int
}

func NewCodeManager(store UserStore, mailer mail.Mailer, logger *slog.Logger) *CodeManager {
	return &CodeManager{
		store:   store,
		mailer:  mailer,
		logger:  logger,
		now:     time.Now,
		randInt: cryptoRandInt,
	}
}

// IssueCode generates a fresh 5-digit code for the user, emails it, and
// persists code + expiry. A stored expiry implies the previous code was
// issued at expiry minus the code TTL; a new code may not be requested until
// one minute after that.
func (m *CodeManager) IssueCode(ctx context.Context, userID string) error {
	u, err := m.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return internal.ErrAccessDenied
		}
		return err
	}

	now := m.now()
	if u.VerificationCodeExpiresAt != nil {
		lastSentAt := u.VerificationCodeExpiresAt.Add(-codeTTL)
		if now.Before(lastSentAt.Add(resendCooldown)) {
			return internal.ErrResendCooldown
		}
	}

	code := codeMin + m.randInt(codeMax-codeMin+1)
	expiresAt := now.Add(codeTTL)

	// TODO: persist before sending so a failed write cannot leave the user
	// holding an emailed code that the server never stored.
	if err := m.mailer.SendVerificationCode(ctx, u.Email, code); err != nil {
		m.logger.Error("failed to send verification code", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to send verification code", err)
	}

	if err := m.store.SetVerificationCode(ctx, u.ID, code, expiresAt); err != nil {
		m.logger.Error("failed to persist verification code", "error", err, "user_id", userID)
		return err
	}

	m.logger.Info("verification code issued", "user_id", userID, "expires_at", expiresAt)
	return nil
}

// ConsumeCode checks a submitted code against the one stored for the already
// loaded user. Expired and mismatched codes produce the same error.
func (m *CodeManager) ConsumeCode(u *user.User, code int) error {
	if u.VerificationCodeExpiresAt == nil {
		return internal.ErrAccessDenied
	}

	now := m.now()
	if now.After(*u.VerificationCodeExpiresAt) {
		return internal.ErrCodeMismatch
	}
	if u.VerificationCode == nil || *u.VerificationCode != code {
		return internal.ErrCodeMismatch
	}
	return nil
}

func cryptoRandInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return int(v.Int64())
}
