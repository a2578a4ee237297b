package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/qistas/fatoora-api/internal/domain/entity"
	"github.com/qistas/fatoora-api/internal/domain/repository"
	"github.com/qistas/fatoora-api/pkg/apperror"
	"github.com/qistas/fatoora-api/pkg/arabic"
	"github.com/qistas/fatoora-api/pkg/invoicepdf"
	"github.com/qistas/fatoora-api/pkg/pagination"
	"github.com/qistas/fatoora-api/pkg/vat"
	"github.com/qistas/fatoora-api/pkg/zatca"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceService orchestrates invoice generation: VAT calculation, ZATCA QR
// payload, and PDF composition, plus persistence of the finished artifact.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	composer    *invoicepdf.Composer
	qrSize      int
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	composer *invoicepdf.Composer,
	qrSize int,
) *InvoiceService {
	if qrSize <= 0 {
		qrSize = zatca.DefaultQRSize
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		composer:    composer,
		qrSize:      qrSize,
	}
}

// LineItemInput is one invoice line as submitted by the client
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// GenerateInvoiceInput represents the invoice generation input
type GenerateInvoiceInput struct {
	CompanyID         uuid.UUID
	InvoiceNumber     string
	CustomerNameAR    string
	CustomerNameEN    string
	CustomerAddressAR string
	CustomerAddressEN string
	CustomerVATNumber string
	// InvoiceDate is the issue date stamped into the document and the QR
	// payload. Nil means the moment of generation.
	InvoiceDate    *time.Time
	LineItems      []LineItemInput
	Language       invoicepdf.Language
	LabelOverrides *invoicepdf.LabelOverrides
	Notes          string
}

// MaxLineItems caps how many lines a single invoice may carry.
const MaxLineItems = 100

// GeneratedInvoice is the immutable result of a successful generation. The QR
// payload and totals are pinned here and never recomputed on later reads.
type GeneratedInvoice struct {
	InvoiceNumber string
	Totals        vat.Totals
	QRData        string
	PDF           []byte
	GeneratedAt   time.Time
}

func (s *InvoiceService) validateInput(company *entity.Company, input *GenerateInvoiceInput) error {
	var fieldErrors []apperror.FieldError

	if !zatca.ValidInvoiceNumber(input.InvoiceNumber) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "invoice_number",
			Message: "Invoice number must be 1-50 characters",
		})
	}
	if input.CustomerNameAR == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "customer_name_ar",
			Message: "Arabic customer name is required",
		})
	}
	if input.CustomerAddressAR == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "customer_address_ar",
			Message: "Arabic customer address is required",
		})
	}
	if input.CustomerVATNumber != "" && !zatca.ValidVATNumber(input.CustomerVATNumber) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "customer_vat_number",
			Message: "VAT number must be 15 digits starting with 3",
		})
	}
	if len(input.LineItems) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "line_items",
			Message: "At least one line item is required",
		})
	}
	if len(input.LineItems) > MaxLineItems {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "line_items",
			Message: fmt.Sprintf("At most %d line items are allowed", MaxLineItems),
		})
	}
	for i, item := range input.LineItems {
		if !zatca.ValidAmount(item.Quantity) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("line_items[%d].quantity", i),
				Message: "Quantity must be positive with at most 2 decimal places",
			})
		}
		if !zatca.ValidAmount(item.UnitPrice) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("line_items[%d].unit_price", i),
				Message: "Unit price must be positive with at most 2 decimal places",
			})
		}
	}
	if input.Language != "" && !input.Language.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "language",
			Message: "Language must be \"ar\" or \"en\"",
		})
	}
	if !zatca.ValidVATNumber(company.VATNumber) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "company.vat_number",
			Message: "Company VAT number must be 15 digits starting with 3",
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func toVATLines(items []LineItemInput) []vat.Line {
	lines := make([]vat.Line, len(items))
	for i, item := range items {
		lines[i] = vat.Line{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Rate:      item.VATRate,
		}
	}
	return lines
}

// Generate produces the complete invoice artifact without touching the
// database. The pipeline is all-or-nothing: calculation, QR payload, QR image
// and PDF either all succeed or the whole call fails with no side effects.
func (s *InvoiceService) Generate(company *entity.Company, input *GenerateInvoiceInput) (*GeneratedInvoice, error) {
	if err := s.validateInput(company, input); err != nil {
		return nil, err
	}

	lines := toVATLines(input.LineItems)
	totals, err := vat.Calculate(lines)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	generatedAt := time.Now().UTC()
	if input.InvoiceDate != nil {
		generatedAt = input.InvoiceDate.UTC()
	}
	payload, err := zatca.EncodeTLV(
		company.NameAR,
		company.VATNumber,
		generatedAt.Format(time.RFC3339),
		totals.TotalAmount,
		totals.VATAmount,
	)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	qrPNG, err := zatca.QRImage(payload, s.qrSize)
	if err != nil {
		log.Printf("Error: QR rendering failed for invoice %s: %v", input.InvoiceNumber, err)
		return nil, apperror.NewAppError(500, "Failed to generate invoice")
	}

	lang := input.Language
	if lang == "" {
		lang = invoicepdf.LanguageArabic
	}
	labels := invoicepdf.ResolveLabels(lang, input.LabelOverrides)

	doc := &invoicepdf.Document{
		Company: invoicepdf.Company{
			NameEN:    company.NameEN,
			NameAR:    company.NameAR,
			VATNumber: company.VATNumber,
		},
		Number:            input.InvoiceNumber,
		Date:              generatedAt,
		CustomerNameAR:    arabic.Normalize(input.CustomerNameAR),
		CustomerNameEN:    input.CustomerNameEN,
		CustomerAddressAR: arabic.Normalize(input.CustomerAddressAR),
		CustomerAddressEN: input.CustomerAddressEN,
		CustomerVATNumber: input.CustomerVATNumber,
		Lines:             toDocumentLines(input.LineItems, lines),
		Totals:            totals,
		QRPNG:             qrPNG,
		Notes:             input.Notes,
		Language:          lang,
		Labels:            labels,
	}
	if company.Address != nil {
		doc.Company.Address = *company.Address
	}
	if company.Phone != nil {
		doc.Company.Phone = *company.Phone
	}
	if company.Email != nil {
		doc.Company.Email = *company.Email
	}

	pdfBytes, err := s.composer.Render(doc)
	if err != nil {
		log.Printf("Error: PDF composition failed for invoice %s: %v", input.InvoiceNumber, err)
		return nil, apperror.NewAppError(500, "Failed to generate invoice")
	}

	return &GeneratedInvoice{
		InvoiceNumber: input.InvoiceNumber,
		Totals:        totals,
		QRData:        payload,
		PDF:           pdfBytes,
		GeneratedAt:   generatedAt,
	}, nil
}

func toDocumentLines(items []LineItemInput, lines []vat.Line) []invoicepdf.Line {
	docLines := make([]invoicepdf.Line, len(items))
	for i, item := range items {
		lineVAT := lines[i].VAT()
		subtotal := lines[i].Subtotal()
		docLines[i] = invoicepdf.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATAmount:   lineVAT.Round(2),
			Total:       subtotal.Add(lineVAT).Round(2),
		}
	}
	return docLines
}

// CreateInvoice generates the invoice and persists it. The repository is only
// touched after the whole artifact exists; a failed generation stores nothing.
func (s *InvoiceService) CreateInvoice(ctx context.Context, userID uuid.UUID, input *GenerateInvoiceInput) (*entity.Invoice, *GeneratedInvoice, error) {
	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil || company.UserID != userID {
		return nil, nil, apperror.NewNotFoundError("Company")
	}

	existing, err := s.invoiceRepo.GetByNumber(ctx, userID, input.InvoiceNumber)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperror.NewConflictError("Invoice number already used")
	}

	generated, err := s.Generate(company, input)
	if err != nil {
		return nil, nil, err
	}

	lineItemsJSON, err := json.Marshal(input.LineItems)
	if err != nil {
		return nil, nil, err
	}

	lang := input.Language
	if lang == "" {
		lang = invoicepdf.LanguageArabic
	}

	invoice := &entity.Invoice{
		UserID:            userID,
		CompanyID:         company.ID,
		InvoiceNumber:     generated.InvoiceNumber,
		Status:            entity.InvoiceStatusGenerated,
		CustomerNameAR:    input.CustomerNameAR,
		CustomerAddressAR: input.CustomerAddressAR,
		LineItems:         datatypes.JSON(lineItemsJSON),
		Subtotal:          generated.Totals.Subtotal,
		VATAmount:         generated.Totals.VATAmount,
		Total:             generated.Totals.TotalAmount,
		Language:          string(lang),
		QRCodeData:        generated.QRData,
		PDFData:           base64.StdEncoding.EncodeToString(generated.PDF),
		IssuedAt:          generated.GeneratedAt,
	}
	if input.CustomerNameEN != "" {
		invoice.CustomerNameEN = &input.CustomerNameEN
	}
	if input.CustomerAddressEN != "" {
		invoice.CustomerAddressEN = &input.CustomerAddressEN
	}
	if input.CustomerVATNumber != "" {
		invoice.CustomerVATNumber = &input.CustomerVATNumber
	}
	if input.Notes != "" {
		invoice.Notes = &input.Notes
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, nil, err
	}

	return invoice, generated, nil
}

// PreviewResult is the lenient calculator-only preview output
type PreviewResult struct {
	Valid  bool        `json:"valid"`
	Errors []string    `json:"errors,omitempty"`
	Totals *vat.Totals `json:"totals,omitempty"`
}

// Preview runs the calculator without generating QR or PDF and without
// touching the database. Invalid items produce messages, not failures; totals
// use the same summation as generation so a valid preview matches the
// generated invoice bit for bit.
func (s *InvoiceService) Preview(items []LineItemInput) *PreviewResult {
	lines := toVATLines(items)
	totals := vat.Sum(lines)

	if errs := vat.Check(lines); len(errs) > 0 {
		return &PreviewResult{Valid: false, Errors: errs, Totals: &totals}
	}

	return &PreviewResult{Valid: true, Totals: &totals}
}

// GetByID returns the user's invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.UserID != userID {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetByNumber returns the user's invoice by its invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, userID uuid.UUID, number string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByNumber(ctx, userID, number)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetPDF returns the stored PDF bytes for an invoice
func (s *InvoiceService) GetPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, error) {
	invoice, err := s.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := base64.StdEncoding.DecodeString(invoice.PDFData)
	if err != nil {
		log.Printf("Error: stored PDF for invoice %s is corrupt: %v", invoice.InvoiceNumber, err)
		return nil, apperror.NewAppError(500, "Stored PDF is unreadable")
	}
	return pdfBytes, nil
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	invoice, err := s.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, invoice.ID)
}

// List returns the user's invoices with pagination
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, userID, params, search)
}
