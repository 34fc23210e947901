package repositories

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindById(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByIds(ctx context.Context, ids []int) ([]*models.User, error) {
	var users []*models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", utils.UniqueSlice(ids)).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) List(ctx context.Context, role *models.UserRole) ([]*models.User, error) {
	var users []*models.User
	dbCtx := r.db.WithContext(ctx)
	if role != nil {
		dbCtx = dbCtx.Where("role = ?", *role)
	}
	err := dbCtx.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isDuplicateKeyError(err) {
		return utils.NewConflictError("email is already registered")
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if isDuplicateKeyError(err) {
		return utils.NewConflictError("email is already registered")
	}
	return err
}
