package services

import (
	"testing"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

func TestManagerCommentsOnSubmittedReport(t *testing.T) {
	f := newFixture(t)
	report := f.submittedReport(t, f.salesA, "2024-06-10")

	comment, err := f.comments.Create(f.ctx, report.ID, &models.NewComment{Target: "PROBLEM", Content: "call them back"}, f.manager)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if !comment.CreatedAt.Equal(fixedNow) {
		t.Fatalf("created_at = %v, want %v", comment.CreatedAt, fixedNow)
	}
	if comment.Manager.ID != f.manager.ID || comment.Target != models.CommentTargetProblem {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	detail, err := f.reports.GetDetail(f.ctx, report.ID, f.salesA)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if len(detail.Comments) != 1 || detail.Comments[0].Content != "call them back" {
		t.Fatalf("comment not attached to detail: %+v", detail.Comments)
	}
	if detail.Status != models.ReportStatusSubmitted {
		t.Fatalf("commenting must not change status, got %s", detail.Status)
	}

	events := f.store.EnqueuedEvents()
	last := events[len(events)-1]
	if last.EventType != models.ReportEventCommentCreated || last.ActorId != f.manager.ID {
		t.Fatalf("unexpected last event: %+v", last)
	}
}

func TestCommentsOnReviewedReportAreAllowed(t *testing.T) {
	f := newFixture(t)
	report := f.submittedReport(t, f.salesA, "2024-06-10")
	if _, err := f.reports.Review(f.ctx, report.ID, f.manager); err != nil {
		t.Fatalf("review: %v", err)
	}

	if _, err := f.comments.Create(f.ctx, report.ID, &models.NewComment{Target: "PLAN", Content: "ok"}, f.manager); err != nil {
		t.Fatalf("comment on reviewed report: %v", err)
	}
}

func TestCommentGuards(t *testing.T) {
	f := newFixture(t)
	draft := f.createReport(t, f.salesA, "2024-06-09", models.ReportStatusDraft)
	submitted := f.submittedReport(t, f.salesA, "2024-06-10")

	// role first, even for a missing report
	_, err := f.comments.Create(f.ctx, 9999, &models.NewComment{Target: "PLAN", Content: "x"}, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	_, err = f.comments.Create(f.ctx, submitted.ID, &models.NewComment{Target: "PLAN", Content: "x"}, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	_, err = f.comments.Create(f.ctx, 9999, &models.NewComment{Target: "PLAN", Content: "x"}, f.manager)
	assertKind(t, err, utils.ErrorKindNotFound)

	// the draft rule wins over a bad target
	_, err = f.comments.Create(f.ctx, draft.ID, &models.NewComment{Target: "OTHER", Content: "x"}, f.manager)
	assertKind(t, err, utils.ErrorKindForbidden)

	_, err = f.comments.Create(f.ctx, submitted.ID, &models.NewComment{Target: "OTHER", Content: "x"}, f.manager)
	assertField(t, err, "target")

	if n := len(f.store.CommentsOf(submitted.ID)); n != 0 {
		t.Fatalf("rejected comments were stored: %d", n)
	}
}

func TestCommentsKeepCreationOrder(t *testing.T) {
	f := newFixture(t)
	report := f.submittedReport(t, f.salesA, "2024-06-10")

	for _, content := range []string{"first", "second", "third"} {
		if _, err := f.comments.Create(f.ctx, report.ID, &models.NewComment{Target: "PLAN", Content: content}, f.manager); err != nil {
			t.Fatalf("create %s: %v", content, err)
		}
	}

	detail, err := f.reports.GetDetail(f.ctx, report.ID, f.manager)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	got := []string{}
	for _, c := range detail.Comments {
		got = append(got, c.Content)
	}
	if len(got) != 3 || got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Fatalf("comment order = %v", got)
	}
}
