package inmem

import (
	"context"
	"sort"
	"strings"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type customerRepository struct {
	db *memDB
}

func (r *customerRepository) FindById(_ context.Context, id int) (*models.Customer, error) {
	var out *models.Customer
	err := r.db.with(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return utils.ErrorRecordNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *customerRepository) List(_ context.Context, filter models.CustomerFilter) ([]*models.Customer, int64, error) {
	var (
		out   []*models.Customer
		total int64
	)
	err := r.db.with(func(st *state) error {
		var matched []models.Customer
		for _, c := range sortedValues(st.customers, func(c models.Customer) int { return c.ID }) {
			if filter.CompanyName != nil && !containsFold(c.CompanyName, *filter.CompanyName) {
				continue
			}
			if filter.ContactName != nil && !containsFold(c.ContactName, *filter.ContactName) {
				continue
			}
			matched = append(matched, c)
		}

		key := func(c models.Customer) string {
			if filter.SortBy == models.CustomerSortContactName {
				return strings.ToLower(c.ContactName)
			}
			return strings.ToLower(c.CompanyName)
		}
		desc := filter.Order == models.SortOrderDesc
		sort.SliceStable(matched, func(i, j int) bool {
			ki, kj := key(matched[i]), key(matched[j])
			if ki == kj {
				return matched[i].ID < matched[j].ID
			}
			if desc {
				return ki > kj
			}
			return ki < kj
		})

		total = int64(len(matched))
		out = []*models.Customer{}
		for _, c := range window(matched, filter.Offset(), filter.Limit()) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, total, err
}

func (r *customerRepository) Create(_ context.Context, customer *models.Customer) error {
	return r.db.with(func(st *state) error {
		now := r.db.now()
		customer.ID = st.newId()
		customer.CreatedAt = now
		customer.UpdatedAt = now
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (r *customerRepository) Update(_ context.Context, customer *models.Customer) error {
	return r.db.with(func(st *state) error {
		if _, ok := st.customers[customer.ID]; !ok {
			return utils.ErrorRecordNotFound
		}
		customer.UpdatedAt = r.db.now()
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (r *customerRepository) Delete(_ context.Context, customer *models.Customer) error {
	return r.db.with(func(st *state) error {
		delete(st.customers, customer.ID)
		return nil
	})
}

func (r *customerRepository) CountVisitRecords(_ context.Context, customerId int) (int64, error) {
	var count int64
	err := r.db.with(func(st *state) error {
		for _, v := range st.visits {
			if v.CustomerId == customerId {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *customerRepository) ExistingIds(_ context.Context, ids []int) (map[int]bool, error) {
	existing := make(map[int]bool)
	err := r.db.with(func(st *state) error {
		for _, id := range ids {
			if _, ok := st.customers[id]; ok {
				existing[id] = true
			}
		}
		return nil
	})
	return existing, err
}
