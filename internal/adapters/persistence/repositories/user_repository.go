package repositories

import (
	"context"

	"gorm.io/gorm"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/core/domain"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByToken gets a user by their current session token
func (r *userRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCredentials gets a non-deleted user by exact credential match
func (r *userRepository) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ? AND is_deleted = ?", username, password, false).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAll lists all non-deleted users
func (r *userRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("is_deleted = ?", false).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole lists all non-deleted users with the given role
func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_deleted = ?", role, false).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SetToken replaces the user's session token in a single UPDATE
func (r *userRepository) SetToken(ctx context.Context, userID uint, token *string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("token", token).Error
}

// ClearToken clears the token wherever it is held and reports matched rows
func (r *userRepository) ClearToken(ctx context.Context, token string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("token = ?", token).
		Update("token", nil)
	return result.RowsAffected, result.Error
}

// ExistsActiveUsername checks if a non-deleted user holds the username
func (r *userRepository) ExistsActiveUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND is_deleted = ?", username, false).
		Count(&count).Error
	return count > 0, err
}

// ClearTokensOfDeleted drops tokens left on soft-deleted users
func (r *userRepository) ClearTokensOfDeleted(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_deleted = ? AND token IS NOT NULL", true).
		Update("token", nil)
	return result.RowsAffected, result.Error
}
