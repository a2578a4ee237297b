package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qistas/fatoora-api/pkg/apperror"
)

func validCompanyInput() *CompanyInput {
	return &CompanyInput{
		NameEN:    "Tech Trading Co",
		NameAR:    "شركة التقنية للتجارة",
		VATNumber: "310122393500003",
	}
}

func TestCompanyCreate(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)
	userID := uuid.New()

	company, err := svc.Create(context.Background(), userID, validCompanyInput())
	require.NoError(t, err)
	assert.Equal(t, userID, company.UserID)
	assert.NotEqual(t, uuid.Nil, company.ID)
}

func TestCompanyCreateRejectsBadVATNumber(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())
	input := validCompanyInput()
	input.VATNumber = "123456789012345" // does not start with 3

	_, err := svc.Create(context.Background(), uuid.New(), input)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "vat_number", appErr.Errors[0].Field)
}

func TestCompanyDefaultIsExclusive(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)
	userID := uuid.New()
	ctx := context.Background()

	first := validCompanyInput()
	first.IsDefault = true
	a, err := svc.Create(ctx, userID, first)
	require.NoError(t, err)

	second := validCompanyInput()
	second.IsDefault = true
	b, err := svc.Create(ctx, userID, second)
	require.NoError(t, err)

	def, err := svc.GetDefault(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, def.ID)
	assert.False(t, repo.companies[a.ID].IsDefault)
}

func TestCompanyGetDefaultNoneSet(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())

	_, err := svc.GetDefault(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCompanyForeignOwnerHidden(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)
	ctx := context.Background()

	company, err := svc.Create(ctx, uuid.New(), validCompanyInput())
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, uuid.New(), company.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	err = svc.Delete(ctx, uuid.New(), company.ID)
	require.Error(t, err)
	assert.Len(t, repo.companies, 1)
}

func TestCompanyUpdate(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)
	userID := uuid.New()
	ctx := context.Background()

	company, err := svc.Create(ctx, userID, validCompanyInput())
	require.NoError(t, err)

	input := validCompanyInput()
	input.NameEN = "Renamed Co"
	updated, err := svc.Update(ctx, userID, company.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Co", updated.NameEN)
	assert.Equal(t, "Renamed Co", repo.companies[company.ID].NameEN)
}
