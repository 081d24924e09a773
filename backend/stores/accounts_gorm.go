package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"langbridge/backend/models"
)

type GormAccounts struct {
	DB *gorm.DB
}

func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{DB: db}
}

func (s *GormAccounts) Create(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *GormAccounts) BySubject(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormAccounts) Update(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		user.Role = *update.Role
	}

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormAccounts) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormAccounts) List(ctx context.Context, opts ListUsersOptions) ([]models.User, error) {
	query := s.DB.WithContext(ctx).Model(&models.User{})
	if opts.Role != "" {
		query = query.Where("role = ?", opts.Role)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	var users []models.User
	if err := query.Limit(limit).Offset(opts.Offset).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
