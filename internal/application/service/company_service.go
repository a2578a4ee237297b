package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/qistas/fatoora-api/internal/domain/entity"
	"github.com/qistas/fatoora-api/internal/domain/repository"
	"github.com/qistas/fatoora-api/pkg/apperror"
	"github.com/qistas/fatoora-api/pkg/pagination"
	"github.com/qistas/fatoora-api/pkg/zatca"
)

// CompanyService handles company profile operations
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput represents the create/update company input
type CompanyInput struct {
	NameEN    string
	NameAR    string
	VATNumber string
	Address   *string
	Phone     *string
	Email     *string
	IsDefault bool
}

func validateCompanyInput(input *CompanyInput) error {
	var fieldErrors []apperror.FieldError
	if input.NameEN == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name_en", Message: "English name is required"})
	}
	if input.NameAR == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name_ar", Message: "Arabic name is required"})
	}
	if !zatca.ValidVATNumber(input.VATNumber) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "vat_number",
			Message: "VAT number must be 15 digits starting with 3",
		})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Create creates a new company profile for the user
func (s *CompanyService) Create(ctx context.Context, userID uuid.UUID, input *CompanyInput) (*entity.Company, error) {
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.companyRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	company := &entity.Company{
		UserID:    userID,
		NameEN:    input.NameEN,
		NameAR:    input.NameAR,
		VATNumber: input.VATNumber,
		Address:   input.Address,
		Phone:     input.Phone,
		Email:     input.Email,
		IsDefault: input.IsDefault,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// GetByID returns the user's company by ID
func (s *CompanyService) GetByID(ctx context.Context, userID, companyID uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.UserID != userID {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// GetDefault returns the user's default company
func (s *CompanyService) GetDefault(ctx context.Context, userID uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Default company")
	}
	return company, nil
}

// Update updates an existing company profile
func (s *CompanyService) Update(ctx context.Context, userID, companyID uuid.UUID, input *CompanyInput) (*entity.Company, error) {
	company, err := s.GetByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}

	if input.IsDefault && !company.IsDefault {
		if err := s.companyRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	company.NameEN = input.NameEN
	company.NameAR = input.NameAR
	company.VATNumber = input.VATNumber
	company.Address = input.Address
	company.Phone = input.Phone
	company.Email = input.Email
	company.IsDefault = input.IsDefault

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// Delete removes a company profile
func (s *CompanyService) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	company, err := s.GetByID(ctx, userID, companyID)
	if err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, company.ID)
}

// List returns the user's companies with pagination
func (s *CompanyService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error) {
	return s.companyRepo.List(ctx, userID, params, search)
}
