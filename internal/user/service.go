package user

import (
	"context"
	"log/slog"

	"github.com/hrsuite/hr-management/internal"
	"golang.org/x/crypto/bcrypt"
)

// Repository is the data access surface the service needs. The postgres
// implementation translates driver errors into the shared taxonomy before
// they get here.
type Repository interface {
	FindAll(ctx context.Context) ([]*User, error)
	Search(ctx context.Context, term string) ([]*User, error)
	Create(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// List returns every user, or only those matching the search term when one
// is given. The admin population is small, so there is no pagination here.
func (s *Service) List(ctx context.Context, search string) ([]*User, error) {
	if search != "" {
		return s.repo.Search(ctx, search)
	}
	return s.repo.FindAll(ctx)
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	role := RoleAdmin
	if dto.Role != nil {
		role = *dto.Role
	}

	u := &User{
		Name:          dto.Name,
		Email:         dto.Email,
		Phone:         dto.Phone,
		PasswordHash:  string(hash),
		Role:          role,
		ApprovalState: ApprovalNotVerified,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
