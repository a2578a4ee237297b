package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/qistas/fatoora-api/internal/domain/entity"
	"github.com/qistas/fatoora-api/internal/domain/repository"
	"github.com/qistas/fatoora-api/pkg/apperror"
	"github.com/qistas/fatoora-api/pkg/pagination"
	"gorm.io/datatypes"
)

// DraftService handles invoice draft operations
type DraftService struct {
	draftRepo repository.DraftRepository
}

// NewDraftService creates a new draft service
func NewDraftService(draftRepo repository.DraftRepository) *DraftService {
	return &DraftService{draftRepo: draftRepo}
}

// SaveDraftInput represents the save draft input
type SaveDraftInput struct {
	Name        string
	DraftData   datatypes.JSON
	IsAutoSaved bool
}

// Save stores a draft. Auto-saves overwrite the user's existing auto-saved
// draft instead of piling up new rows.
func (s *DraftService) Save(ctx context.Context, userID uuid.UUID, input *SaveDraftInput) (*entity.Draft, error) {
	if len(input.DraftData) == 0 {
		return nil, apperror.NewBadRequestError("Draft data is required")
	}

	name := input.Name
	if name == "" {
		name = "Untitled draft"
	}

	if input.IsAutoSaved {
		existing, err := s.draftRepo.GetAutoSaved(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Name = name
			existing.DraftData = input.DraftData
			if err := s.draftRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	draft := &entity.Draft{
		UserID:      userID,
		Name:        name,
		DraftData:   input.DraftData,
		IsAutoSaved: input.IsAutoSaved,
	}

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// GetByID returns the user's draft by ID
func (s *DraftService) GetByID(ctx context.Context, userID, draftID uuid.UUID) (*entity.Draft, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.UserID != userID {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return draft, nil
}

// GetLatest returns the user's most recent auto-saved draft
func (s *DraftService) GetLatest(ctx context.Context, userID uuid.UUID) (*entity.Draft, error) {
	draft, err := s.draftRepo.GetAutoSaved(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return draft, nil
}

// Delete removes a draft
func (s *DraftService) Delete(ctx context.Context, userID, draftID uuid.UUID) error {
	draft, err := s.GetByID(ctx, userID, draftID)
	if err != nil {
		return err
	}
	return s.draftRepo.Delete(ctx, draft.ID)
}

// List returns the user's drafts with pagination
func (s *DraftService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Draft, int64, error) {
	return s.draftRepo.List(ctx, userID, params)
}
