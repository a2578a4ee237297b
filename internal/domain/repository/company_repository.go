package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/qistas/fatoora-api/internal/domain/entity"
	"github.com/qistas/fatoora-api/pkg/pagination"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	// GetDefault returns the user's default company, or nil when none is set.
	GetDefault(ctx context.Context, userID uuid.UUID) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error)
	// ClearDefault unsets the default flag on all of the user's companies.
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}
