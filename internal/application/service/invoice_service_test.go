package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qistas/fatoora-api/internal/domain/entity"
	"github.com/qistas/fatoora-api/pkg/apperror"
	"github.com/qistas/fatoora-api/pkg/invoicepdf"
	"github.com/qistas/fatoora-api/pkg/pagination"
	"github.com/qistas/fatoora-api/pkg/zatca"
)

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]*entity.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *entity.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) GetDefault(_ context.Context, userID uuid.UUID) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.UserID == userID && c.IsDefault {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, userID uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Company, int64, error) {
	var out []entity.Company
	for _, c := range r.companies {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCompanyRepo) ClearDefault(_ context.Context, userID uuid.UUID) error {
	for _, c := range r.companies {
		if c.UserID == userID {
			c.IsDefault = false
		}
	}
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetByNumber(_ context.Context, userID uuid.UUID, number string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.UserID == userID && inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, userID uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

type invoiceTestEnv struct {
	service     *InvoiceService
	invoiceRepo *fakeInvoiceRepo
	companyRepo *fakeCompanyRepo
	userID      uuid.UUID
	company     *entity.Company
}

func newInvoiceTestEnv(t *testing.T) *invoiceTestEnv {
	t.Helper()

	companyRepo := newFakeCompanyRepo()
	invoiceRepo := newFakeInvoiceRepo()

	userID := uuid.New()
	company := &entity.Company{
		UserID:    userID,
		NameEN:    "Tech Trading Co",
		NameAR:    "شركة التقنية للتجارة",
		VATNumber: "310122393500003",
	}
	require.NoError(t, companyRepo.Create(context.Background(), company))

	composer := invoicepdf.NewComposer(invoicepdf.FontConfig{})
	svc := NewInvoiceService(invoiceRepo, companyRepo, composer, zatca.DefaultQRSize)

	return &invoiceTestEnv{
		service:     svc,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		userID:      userID,
		company:     company,
	}
}

func validInvoiceInput(companyID uuid.UUID) *GenerateInvoiceInput {
	return &GenerateInvoiceInput{
		CompanyID:         companyID,
		InvoiceNumber:     "INV-001",
		CustomerNameAR:    "عميل تجريبي",
		CustomerAddressAR: "الرياض",
		LineItems: []LineItemInput{
			{
				Description: "خدمات استشارية",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromInt(500),
				VATRate:     decimal.NewFromInt(15),
			},
		},
	}
}

func TestGenerateComputesTotalsAndArtifacts(t *testing.T) {
	env := newInvoiceTestEnv(t)

	generated, err := env.service.Generate(env.company, validInvoiceInput(env.company.ID))
	require.NoError(t, err)

	assert.Equal(t, "5000.00", generated.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "750.00", generated.Totals.VATAmount.StringFixed(2))
	assert.Equal(t, "5750.00", generated.Totals.TotalAmount.StringFixed(2))

	assert.Equal(t, "%PDF-", string(generated.PDF[:5]))
	assert.False(t, generated.GeneratedAt.IsZero())
}

func TestGenerateQRPayloadCarriesSellerAndTotals(t *testing.T) {
	env := newInvoiceTestEnv(t)

	generated, err := env.service.Generate(env.company, validInvoiceInput(env.company.ID))
	require.NoError(t, err)

	fields, err := zatca.DecodeTLV(generated.QRData)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, env.company.NameAR, fields[0].Value)
	assert.Equal(t, env.company.VATNumber, fields[1].Value)
	assert.Equal(t, generated.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"), fields[2].Value)
	assert.Equal(t, "5750.00", fields[3].Value)
	assert.Equal(t, "750.00", fields[4].Value)
}

func TestGenerateRejectsDisallowedRate(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)
	input.LineItems[0].VATRate = decimal.NewFromInt(20)

	generated, err := env.service.Generate(env.company, input)
	require.Error(t, err)
	assert.Nil(t, generated)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestGenerateValidationErrors(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)
	input.CustomerNameAR = ""
	input.CustomerAddressAR = ""

	_, err := env.service.Generate(env.company, input)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "customer_name_ar", appErr.Errors[0].Field)
	assert.Equal(t, "customer_address_ar", appErr.Errors[1].Field)
}

func TestGenerateRejectsTooManyLineItems(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)

	item := input.LineItems[0]
	input.LineItems = make([]LineItemInput, MaxLineItems+1)
	for i := range input.LineItems {
		input.LineItems[i] = item
	}

	_, err := env.service.Generate(env.company, input)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "line_items", appErr.Errors[0].Field)
}

func TestGenerateRejectsFractionalDigitsBeyondTwo(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)
	input.LineItems[0].Quantity = decimal.RequireFromString("1.125")
	input.LineItems[0].UnitPrice = decimal.RequireFromString("9.999")

	_, err := env.service.Generate(env.company, input)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "line_items[0].quantity", appErr.Errors[0].Field)
	assert.Equal(t, "line_items[0].unit_price", appErr.Errors[1].Field)
}

func TestGenerateUsesSuppliedInvoiceDate(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)
	issued := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	input.InvoiceDate = &issued

	generated, err := env.service.Generate(env.company, input)
	require.NoError(t, err)
	assert.True(t, generated.GeneratedAt.Equal(issued))

	fields, err := zatca.DecodeTLV(generated.QRData)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15T09:00:00Z", fields[2].Value)
}

func TestCreateInvoicePinsSuppliedDate(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)
	issued := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	input.InvoiceDate = &issued

	invoice, _, err := env.service.CreateInvoice(context.Background(), env.userID, input)
	require.NoError(t, err)
	assert.True(t, invoice.IssuedAt.Equal(issued))
}

func TestGenerateRejectsInvalidCompanyVAT(t *testing.T) {
	env := newInvoiceTestEnv(t)
	env.company.VATNumber = "123"

	_, err := env.service.Generate(env.company, validInvoiceInput(env.company.ID))
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestCreateInvoicePersistsArtifact(t *testing.T) {
	env := newInvoiceTestEnv(t)
	ctx := context.Background()

	invoice, generated, err := env.service.CreateInvoice(ctx, env.userID, validInvoiceInput(env.company.ID))
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.Equal(t, entity.InvoiceStatusGenerated, invoice.Status)
	assert.Equal(t, "ar", invoice.Language)
	assert.Equal(t, generated.QRData, invoice.QRCodeData)
	assert.True(t, invoice.Total.Equal(generated.Totals.TotalAmount))
	assert.NotEmpty(t, invoice.PDFData)
	assert.Len(t, env.invoiceRepo.invoices, 1)

	// The stored PDF round-trips through GetPDF
	pdfBytes, err := env.service.GetPDF(ctx, env.userID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, generated.PDF, pdfBytes)
}

func TestCreateInvoiceStoresNothingOnFailure(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)
	input.LineItems[0].VATRate = decimal.NewFromInt(10)

	_, _, err := env.service.CreateInvoice(context.Background(), env.userID, input)
	require.Error(t, err)
	assert.Empty(t, env.invoiceRepo.invoices)
}

func TestCreateInvoiceUnknownCompany(t *testing.T) {
	env := newInvoiceTestEnv(t)

	_, _, err := env.service.CreateInvoice(context.Background(), env.userID, validInvoiceInput(uuid.New()))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceForeignCompanyHidden(t *testing.T) {
	env := newInvoiceTestEnv(t)

	_, _, err := env.service.CreateInvoice(context.Background(), uuid.New(), validInvoiceInput(env.company.ID))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	env := newInvoiceTestEnv(t)
	ctx := context.Background()

	_, _, err := env.service.CreateInvoice(ctx, env.userID, validInvoiceInput(env.company.ID))
	require.NoError(t, err)

	_, _, err = env.service.CreateInvoice(ctx, env.userID, validInvoiceInput(env.company.ID))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Len(t, env.invoiceRepo.invoices, 1)
}

func TestPreviewValidItems(t *testing.T) {
	env := newInvoiceTestEnv(t)

	result := env.service.Preview([]LineItemInput{
		{Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(500), VATRate: decimal.NewFromInt(15)},
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Totals)
	assert.Equal(t, "5750.00", result.Totals.TotalAmount.StringFixed(2))
}

func TestPreviewInvalidItemsStillReturnsTotals(t *testing.T) {
	env := newInvoiceTestEnv(t)

	result := env.service.Preview([]LineItemInput{
		{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), VATRate: decimal.NewFromInt(20)},
	})

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Item 1")
	assert.NotNil(t, result.Totals)
}

func TestPreviewMatchesGeneratedTotals(t *testing.T) {
	env := newInvoiceTestEnv(t)
	input := validInvoiceInput(env.company.ID)

	preview := env.service.Preview(input.LineItems)
	generated, err := env.service.Generate(env.company, input)
	require.NoError(t, err)

	assert.True(t, preview.Totals.Subtotal.Equal(generated.Totals.Subtotal))
	assert.True(t, preview.Totals.VATAmount.Equal(generated.Totals.VATAmount))
	assert.True(t, preview.Totals.TotalAmount.Equal(generated.Totals.TotalAmount))
}

func TestGetByNumberNotFound(t *testing.T) {
	env := newInvoiceTestEnv(t)

	_, err := env.service.GetByNumber(context.Background(), env.userID, "NOPE")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestDeleteRemovesInvoice(t *testing.T) {
	env := newInvoiceTestEnv(t)
	ctx := context.Background()

	invoice, _, err := env.service.CreateInvoice(ctx, env.userID, validInvoiceInput(env.company.ID))
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(ctx, env.userID, invoice.ID))
	assert.Empty(t, env.invoiceRepo.invoices)
}
