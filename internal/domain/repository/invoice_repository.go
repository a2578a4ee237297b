package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/qistas/fatoora-api/internal/domain/entity"
	"github.com/qistas/fatoora-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, userID uuid.UUID, number string) (*entity.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Invoice, int64, error)
}

// DraftRepository defines the interface for invoice draft operations
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Draft, error)
	// GetAutoSaved returns the user's auto-saved draft, or nil when none exists.
	GetAutoSaved(ctx context.Context, userID uuid.UUID) (*entity.Draft, error)
	Update(ctx context.Context, draft *entity.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Draft, int64, error)
}
