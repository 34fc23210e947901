package services

import (
	"testing"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

func TestCustomerListFiltersAndSorts(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.store, "JP")
	if _, err := svc.Create(f.ctx, &models.NewCustomer{CompanyName: "acme trading", ContactName: "Jiro"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	customers, total, err := svc.List(f.ctx, models.CustomerFilter{
		CompanyName: strPtr("ACME"),
		SortBy:      models.CustomerSortCompanyName,
		Order:       models.SortOrderAsc,
		Pagination:  models.Pagination{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(customers) != 2 {
		t.Fatalf("filter matched %d, want 2", total)
	}
	if customers[0].CompanyName != "Acme Corp" || customers[1].CompanyName != "acme trading" {
		t.Fatalf("unexpected order: %s, %s", customers[0].CompanyName, customers[1].CompanyName)
	}

	byContact, total, err := svc.List(f.ctx, models.CustomerFilter{
		ContactName: strPtr("suzuki"),
		Pagination:  models.Pagination{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("list by contact: %v", err)
	}
	if total != 1 || byContact[0].ID != f.customerY.ID {
		t.Fatalf("contact filter matched %d", total)
	}
}

func TestCustomerCreateValidatesPhone(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.store, "JP")

	_, err := svc.Create(f.ctx, &models.NewCustomer{CompanyName: "Initech", ContactName: "Bill", Phone: strPtr("12")})
	assertField(t, err, "phone")

	created, err := svc.Create(f.ctx, &models.NewCustomer{CompanyName: "Initech", ContactName: "Bill", Phone: strPtr("03-1234-5678")})
	if err != nil {
		t.Fatalf("create with valid phone: %v", err)
	}
	if created.ID == 0 || created.Phone == nil || *created.Phone != "03-1234-5678" {
		t.Fatalf("unexpected customer: %+v", created)
	}
}

func TestCustomerUpdate(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.store, "")

	updated, err := svc.Update(f.ctx, f.customerX.ID, &models.NewCustomer{CompanyName: "Acme Holdings", ContactName: "Taro", Address: strPtr("Tokyo")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CompanyName != "Acme Holdings" || updated.Address == nil || *updated.Address != "Tokyo" {
		t.Fatalf("fields not applied: %+v", updated)
	}

	_, err = svc.Update(f.ctx, 9999, &models.NewCustomer{CompanyName: "x", ContactName: "y"})
	assertKind(t, err, utils.ErrorKindNotFound)
}

func TestCustomerDeleteGuard(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.store, "")
	f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft,
		models.NewVisitRecord{CustomerId: f.customerX.ID, VisitContent: "visit", VisitedAt: "10:00"},
	)

	err := svc.Delete(f.ctx, f.customerX.ID)
	assertKind(t, err, utils.ErrorKindConflict)
	if _, err := svc.GetDetail(f.ctx, f.customerX.ID); err != nil {
		t.Fatalf("referenced customer was removed: %v", err)
	}

	if err := svc.Delete(f.ctx, f.customerY.ID); err != nil {
		t.Fatalf("delete unreferenced: %v", err)
	}
	_, err = svc.GetDetail(f.ctx, f.customerY.ID)
	assertKind(t, err, utils.ErrorKindNotFound)

	err = svc.Delete(f.ctx, f.customerY.ID)
	assertKind(t, err, utils.ErrorKindNotFound)
}
