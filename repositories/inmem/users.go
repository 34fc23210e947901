package inmem

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type userRepository struct {
	db *memDB
}

func (r *userRepository) FindById(_ context.Context, id int) (*models.User, error) {
	var out *models.User
	err := r.db.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return utils.ErrorRecordNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	var out *models.User
	err := r.db.with(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return utils.ErrorRecordNotFound
	})
	return out, err
}

func (r *userRepository) FindByIds(_ context.Context, ids []int) ([]*models.User, error) {
	var out []*models.User
	err := r.db.with(func(st *state) error {
		wanted := make(map[int]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		for _, u := range sortedValues(st.users, func(u models.User) int { return u.ID }) {
			if wanted[u.ID] {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepository) List(_ context.Context, role *models.UserRole) ([]*models.User, error) {
	out := []*models.User{}
	err := r.db.with(func(st *state) error {
		for _, u := range sortedValues(st.users, func(u models.User) int { return u.ID }) {
			if role != nil && u.Role != *role {
				continue
			}
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	return r.db.with(func(st *state) error {
		for _, u := range st.users {
			if u.Email == user.Email {
				return utils.NewConflictError("email is already registered")
			}
		}
		now := r.db.now()
		user.ID = st.newId()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		st.users[user.ID] = *user
		return nil
	})
}

func (r *userRepository) Update(_ context.Context, user *models.User) error {
	return r.db.with(func(st *state) error {
		if _, ok := st.users[user.ID]; !ok {
			return utils.ErrorRecordNotFound
		}
		for _, u := range st.users {
			if u.ID != user.ID && u.Email == user.Email {
				return utils.NewConflictError("email is already registered")
			}
		}
		user.UpdatedAt = r.db.now()
		st.users[user.ID] = *user
		return nil
	})
}
