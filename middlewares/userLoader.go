package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/graph-gophers/dataloader/v7"
)

type userReader struct {
	users models.UserRepository
}

func (r *userReader) getUsers(ctx context.Context, ids []int) []*dataloader.Result[*models.User] {
	results, err := r.users.FindByIds(ctx, ids)
	if err != nil {
		return handleError[*models.User](len(ids), err)
	}

	resultMap := make(map[int]*models.User, len(results))
	for _, result := range results {
		resultMap[result.ID] = result
	}

	loaderResults := make([]*dataloader.Result[*models.User], 0, len(ids))
	for _, id := range ids {
		user, ok := resultMap[id]
		if !ok {
			loaderResults = append(loaderResults, &dataloader.Result[*models.User]{Error: utils.ErrorRecordNotFound})
			continue
		}
		loaderResults = append(loaderResults, &dataloader.Result[*models.User]{Data: user})
	}
	return loaderResults
}

func GetUser(ctx context.Context, id int) (*models.User, error) {
	loaders := For(ctx)
	return loaders.userLoader.Load(ctx, id)()
}

func GetUsers(ctx context.Context, ids []int) ([]*models.User, []error) {
	loaders := For(ctx)
	return loaders.userLoader.LoadMany(ctx, ids)()
}
