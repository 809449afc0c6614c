package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository on GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// Search matches the term as a case-insensitive substring of id, name, email
// or phone.
func (r *UserRepository) Search(ctx context.Context, term string) ([]*user.User, error) {
	pattern := "%" + term + "%"

	var users []*user.User
	err := r.db.WithContext(ctx).
		Where("LOWER(id) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(phone) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, internal.NewInternalError("failed to search users", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrUserExists
		}
		return internal.NewInternalError("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&user.User{})
	if result.Error != nil {
		return internal.NewInternalError("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation covers both the gorm sentinel and the raw postgres /
// sqlite messages, so the same repository works under the test driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
