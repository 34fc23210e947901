package repositories

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"gorm.io/gorm"
)

var customerSortColumns = map[models.CustomerSortField]string{
	models.CustomerSortCompanyName: "company_name",
	models.CustomerSortContactName: "contact_name",
}

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) FindById(ctx context.Context, id int) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.Customer{})
	if filter.CompanyName != nil && *filter.CompanyName != "" {
		dbCtx = dbCtx.Where("LOWER(company_name) LIKE ?", containsPattern(*filter.CompanyName))
	}
	if filter.ContactName != nil && *filter.ContactName != "" {
		dbCtx = dbCtx.Where("LOWER(contact_name) LIKE ?", containsPattern(*filter.ContactName))
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := customerSortColumns[filter.SortBy]
	if !ok {
		column = "company_name"
	}
	direction := "ASC"
	if filter.Order == models.SortOrderDesc {
		direction = "DESC"
	}

	var customers []*models.Customer
	err := dbCtx.Order(column + " " + direction).Order("id ASC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, customer.ID).Error
}

func (r *CustomerRepository) CountVisitRecords(ctx context.Context, customerId int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VisitRecord{}).
		Where("customer_id = ?", customerId).
		Count(&count).Error
	return count, err
}

func (r *CustomerRepository) ExistingIds(ctx context.Context, ids []int) (map[int]bool, error) {
	existing := make(map[int]bool)
	unqIds := utils.UniqueSlice(ids)
	if len(unqIds) == 0 {
		return existing, nil
	}
	var found []int
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id IN ?", unqIds).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}
