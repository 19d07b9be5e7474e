package repositories

import (
	"context"

	"github.com/coursehub/elearning-service/internal/models"
)

// UserRepository owns the credential store: persisted user records
// including the salted password hash and role.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id uint, role models.UserRole) (bool, error)

	// UpdateRole flips a user's role; used only by the self-service
	// instructor application flow.
	UpdateRole(ctx context.Context, id uint, role models.UserRole) error
	UpdateAvatar(ctx context.Context, id uint, avatarURL string) error
}
