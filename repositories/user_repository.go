package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs"
	"devclub.community/configs/configslog"
	"devclub.community/models"
)

// IUserRepository covers member persistence.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	TouchLastLogin(ctx context.Context, id uint) error
}

// UserRepository implements IUserRepository on GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a repository on the shared connection.
func NewUserRepository() IUserRepository {
	return &UserRepository{db: configs.GetDB()}
}

// NewUserRepositoryDB builds a repository on an explicit handle.
func NewUserRepositoryDB(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

// Create inserts a member; a unique-email hit surfaces as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("user must not be nil")
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		configslog.Log.Error("user create failed", zap.Error(err))
		return err
	}
	return nil
}

// FindByID returns an active member by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("user FindByID failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns an active member by normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", models.NormalizeEmail(email), true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("user FindByEmail failed", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to an active member.
func (r *UserRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(data)
	if result.Error != nil {
		configslog.Log.Error("user update failed", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin stamps the successful-login time.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}

var _ IUserRepository = (*UserRepository)(nil)
