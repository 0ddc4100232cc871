package mysql

import (
	"context"

	"SafeCampus/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint64) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// ListExcluding returns users whose id is not in ids, used for the
// recommended-users listing.
func (r *UserRepository) ListExcluding(ctx context.Context, ids []uint64) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).Where("id NOT IN ?", ids).Find(&list).Error
	return list, err
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, hash string) error {
	return r.DB.WithContext(ctx).Model(user).Update("password", hash).Error
}

// Delete removes the account row only. Posts and comments by the user are
// left in place; referential cleanup is not performed.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.User{}, id).Error
}
