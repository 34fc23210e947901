package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/graph-gophers/dataloader/v7"
)

type visitCountReader struct {
	visits models.VisitRecordRepository
}

// reports without visit records count as zero
func (r *visitCountReader) getVisitCounts(ctx context.Context, reportIds []int) []*dataloader.Result[int] {
	counts, err := r.visits.CountByReportIds(ctx, reportIds)
	if err != nil {
		return handleError[int](len(reportIds), err)
	}

	loaderResults := make([]*dataloader.Result[int], 0, len(reportIds))
	for _, id := range reportIds {
		loaderResults = append(loaderResults, &dataloader.Result[int]{Data: counts[id]})
	}
	return loaderResults
}

func GetVisitCount(ctx context.Context, reportId int) (int, error) {
	loaders := For(ctx)
	return loaders.visitCountLoader.Load(ctx, reportId)()
}

func GetVisitCounts(ctx context.Context, reportIds []int) ([]int, []error) {
	loaders := For(ctx)
	return loaders.visitCountLoader.LoadMany(ctx, reportIds)()
}
