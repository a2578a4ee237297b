package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceStatus tracks the lifecycle of a generated invoice
type InvoiceStatus string

const (
	InvoiceStatusGenerated InvoiceStatus = "generated"
)

// Invoice is a fully generated ZATCA Phase-1 invoice. Rows only exist for
// invoices whose QR payload and PDF were both produced successfully; a failed
// generation never persists anything.
type Invoice struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	CompanyID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"company_id"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	Status        InvoiceStatus `gorm:"size:20;not null;default:'generated'" json:"status"`

	CustomerNameAR    string  `gorm:"size:255;not null" json:"customer_name_ar"`
	CustomerNameEN    *string `gorm:"size:255" json:"customer_name_en,omitempty"`
	CustomerAddressAR string  `gorm:"type:text;not null" json:"customer_address_ar"`
	CustomerAddressEN *string `gorm:"type:text" json:"customer_address_en,omitempty"`
	CustomerVATNumber *string `gorm:"size:15" json:"customer_vat_number,omitempty"`

	LineItems datatypes.JSON  `gorm:"type:jsonb;not null" json:"line_items"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	VATAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	Language   string         `gorm:"size:2;not null;default:'ar'" json:"language"`
	Notes      *string        `gorm:"type:text" json:"notes,omitempty"`
	QRCodeData string         `gorm:"type:text;not null" json:"qr_code_data"`
	PDFData    string         `gorm:"type:text;not null" json:"-"`
	IssuedAt   time.Time      `gorm:"not null" json:"issued_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
