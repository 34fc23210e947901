package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type CustomerService struct {
	uow         models.UnitOfWork
	phoneRegion string
}

// NewCustomerService validates phone numbers against phoneRegion; empty disables the check.
func NewCustomerService(uow models.UnitOfWork, phoneRegion string) *CustomerService {
	return &CustomerService{uow: uow, phoneRegion: phoneRegion}
}

func (s *CustomerService) List(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, int64, error) {
	return s.uow.Customers().List(ctx, filter)
}

func (s *CustomerService) GetDetail(ctx context.Context, id int) (*models.Customer, error) {
	return findCustomer(ctx, s.uow, id)
}

func (s *CustomerService) Create(ctx context.Context, input *models.NewCustomer) (*models.Customer, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	customer := &models.Customer{}
	applyCustomerInput(customer, input)
	if err := s.uow.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id int, input *models.NewCustomer) (*models.Customer, error) {
	customer, err := findCustomer(ctx, s.uow, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	applyCustomerInput(customer, input)
	if err := s.uow.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete refuses while any visit record still references the customer.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	return s.uow.Transaction(ctx, func(repos models.Repositories) error {
		customer, err := findCustomer(ctx, repos, id)
		if err != nil {
			return err
		}
		count, err := repos.Customers().CountVisitRecords(ctx, customer.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return utils.NewConflictError("customer is referenced by visit records")
		}
		return repos.Customers().Delete(ctx, customer)
	})
}

func (s *CustomerService) validate(input *models.NewCustomer) error {
	if s.phoneRegion == "" || input.Phone == nil || strings.TrimSpace(*input.Phone) == "" {
		return nil
	}
	if err := utils.ValidatePhoneNumber(*input.Phone, s.phoneRegion); err != nil {
		return utils.NewFieldValidationError("phone", "must be a valid phone number")
	}
	return nil
}

func applyCustomerInput(customer *models.Customer, input *models.NewCustomer) {
	customer.CompanyName = input.CompanyName
	customer.ContactName = input.ContactName
	customer.Address = input.Address
	customer.Phone = input.Phone
	customer.Email = input.Email
}

type customerReader interface {
	Customers() models.CustomerRepository
}

func findCustomer(ctx context.Context, repos customerReader, id int) (*models.Customer, error) {
	customer, err := repos.Customers().FindById(ctx, id)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, utils.NewNotFoundError("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", id, err)
	}
	return customer, nil
}
