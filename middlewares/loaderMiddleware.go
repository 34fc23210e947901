package middlewares

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders wrap the per-request data loaders
type Loaders struct {
	userLoader       *dataloader.Loader[int, *models.User]
	visitCountLoader *dataloader.Loader[int, int]
}

// NewLoaders instantiates data loaders for the middleware
func NewLoaders(repos models.Repositories) *Loaders {
	userReader := &userReader{users: repos.Users()}
	visitCountReader := &visitCountReader{visits: repos.VisitRecords()}

	return &Loaders{
		userLoader:       dataloader.NewBatchedLoader(userReader.getUsers, dataloader.WithWait[int, *models.User](time.Millisecond)),
		visitCountLoader: dataloader.NewBatchedLoader(visitCountReader.getVisitCounts, dataloader.WithWait[int, int](time.Millisecond)),
	}
}

func LoaderMiddleware(repos models.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(repos)
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}

// WithLoaders attaches loaders outside of a gin request.
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// handleError creates array of result with the same error repeated for as many items requested
func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}
