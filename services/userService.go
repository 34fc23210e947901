package services

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type UserService struct {
	users models.UserRepository
}

func NewUserService(users models.UserRepository) *UserService {
	return &UserService{users: users}
}

// List is for managers only; role narrows the result to one role.
func (s *UserService) List(ctx context.Context, caller *models.User, role *models.UserRole) ([]*models.User, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}
	if caller.Role != models.UserRoleManager {
		return nil, utils.NewForbiddenError("")
	}
	return s.users.List(ctx, role)
}
