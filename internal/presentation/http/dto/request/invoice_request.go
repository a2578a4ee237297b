package request

import (
	"time"

	"github.com/qistas/fatoora-api/pkg/invoicepdf"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LineItemRequest is one invoice line in a generation or preview request
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// GenerateInvoiceRequest represents an invoice generation request
type GenerateInvoiceRequest struct {
	CompanyID         string                     `json:"company_id" binding:"required,uuid"`
	InvoiceNumber     string                     `json:"invoice_number" binding:"required,max=50"`
	CustomerNameAR    string                     `json:"customer_name_ar" binding:"required,max=200"`
	CustomerNameEN    string                     `json:"customer_name_en" binding:"omitempty,max=200"`
	CustomerAddressAR string                     `json:"customer_address_ar" binding:"required,max=500"`
	CustomerAddressEN string                     `json:"customer_address_en" binding:"omitempty,max=500"`
	CustomerVATNumber string                     `json:"customer_vat_number"`
	InvoiceDate       *time.Time                 `json:"invoice_date"`
	LineItems         []LineItemRequest          `json:"line_items" binding:"required,min=1,max=100,dive"`
	Language          string                     `json:"language" binding:"omitempty,oneof=ar en"`
	LabelOverrides    *invoicepdf.LabelOverrides `json:"label_overrides"`
	Notes             string                     `json:"notes" binding:"omitempty,max=1000"`
}

// PreviewRequest represents a totals preview request
type PreviewRequest struct {
	LineItems []LineItemRequest `json:"line_items" binding:"required,min=1,max=100,dive"`
}

// CompanyRequest represents a create/update company request
type CompanyRequest struct {
	NameEN    string  `json:"name_en" binding:"required,max=255"`
	NameAR    string  `json:"name_ar" binding:"required,max=255"`
	VATNumber string  `json:"vat_number" binding:"required,len=15"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	IsDefault bool    `json:"is_default"`
}

// SaveDraftRequest represents a save draft request
type SaveDraftRequest struct {
	Name        string         `json:"name" binding:"max=255"`
	DraftData   datatypes.JSON `json:"draft_data" binding:"required"`
	IsAutoSaved bool           `json:"is_auto_saved"`
}
