package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/user"
)

// UserStore implements the auth persistence surface on gorm.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (s *UserStore) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	var u user.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

// FindByIDAndEmail requires both values to match the same row. Password reset
// uses it so a leaked user id alone is not enough to start the flow.
func (s *UserStore) FindByIDAndEmail(ctx context.Context, id, email string) (*user.User, error) {
	var u user.User
	if err := s.db.WithContext(ctx).Where("id = ? AND email = ?", id, email).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (s *UserStore) UpdateRefreshHash(ctx context.Context, userID, hash string) error {
	result := s.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Update("hashed_refresh_token", hash)
	if result.Error != nil {
		return internal.NewInternalError("failed to update refresh hash", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// ClearRefreshHash only touches rows that actually hold a hash, so a repeated
// logout is a no-op rather than an error.
func (s *UserStore) ClearRefreshHash(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ? AND hashed_refresh_token IS NOT NULL", userID).
		Update("hashed_refresh_token", nil)
	if result.Error != nil {
		return internal.NewInternalError("failed to clear refresh hash", result.Error)
	}
	return nil
}

func (s *UserStore) SetVerificationCode(ctx context.Context, userID string, code int, expiresAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_code":            code,
			"verification_code_expires_at": expiresAt,
		})
	if result.Error != nil {
		return internal.NewInternalError("failed to set verification code", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// SetApprovalState also clears the consumed code so it cannot be replayed.
func (s *UserStore) SetApprovalState(ctx context.Context, userID string, state user.ApprovalState) error {
	result := s.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"approval_state":               state,
			"verification_code":            nil,
			"verification_code_expires_at": nil,
		})
	if result.Error != nil {
		return internal.NewInternalError("failed to set approval state", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result := s.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":                passwordHash,
			"verification_code":            nil,
			"verification_code_expires_at": nil,
		})
	if result.Error != nil {
		return internal.NewInternalError("failed to update password", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.ErrUserNotFound
	}
	return internal.NewInternalError("failed to query user", err)
}
