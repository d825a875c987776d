package repository

import (
	"context"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. When the table is empty the user is promoted to ADMIN.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	user := &model.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Role = model.RoleAdmin
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// FindByUsername looks a user up by exact username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByID looks a user up by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateProfile writes the username and avatar key of user.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"username":   user.Username,
		"avatar_key": user.AvatarKey,
	}).Error
	return translate(err)
}

// ListAll returns every user, oldest first.
func (r *UserRepository) ListAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

// Delete removes a user together with its sessions, comments and favorites.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&model.Session{}, &model.Comment{}, &model.Favorite{}} {
			if err := tx.Where("user_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
