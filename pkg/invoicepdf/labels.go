package invoicepdf

// Language selects which label set an invoice is rendered with.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// Valid reports whether l is a supported invoice language.
func (l Language) Valid() bool {
	return l == LanguageArabic || l == LanguageEnglish
}

// Labels maps the invoice's semantic label keys to display strings for one
// language.
type Labels struct {
	CompanyName   string `json:"company_name"`
	VATNumber     string `json:"vat_number"`
	InvoiceNumber string `json:"invoice_number"`
	Date          string `json:"date"`
	CustomerInfo  string `json:"customer_info"`
	Description   string `json:"description"`
	Quantity      string `json:"quantity"`
	Amount        string `json:"amount"`
	VAT           string `json:"vat"`
	Total         string `json:"total"`
	Subtotal      string `json:"subtotal"`
	VATTotal      string `json:"vat_total"`
	GrandTotal    string `json:"grand_total"`
	QRCode        string `json:"qr_code"`
	Notes         string `json:"notes"`
}

// LabelOverrides carries caller-supplied replacements for individual labels.
// Nil fields keep the language default.
type LabelOverrides struct {
	CompanyName   *string `json:"company_name"`
	VATNumber     *string `json:"vat_number"`
	InvoiceNumber *string `json:"invoice_number"`
	Date          *string `json:"date"`
	CustomerInfo  *string `json:"customer_info"`
	Description   *string `json:"description"`
	Quantity      *string `json:"quantity"`
	Amount        *string `json:"amount"`
	VAT           *string `json:"vat"`
	Total         *string `json:"total"`
	Subtotal      *string `json:"subtotal"`
	VATTotal      *string `json:"vat_total"`
	GrandTotal    *string `json:"grand_total"`
	QRCode        *string `json:"qr_code"`
	Notes         *string `json:"notes"`
}

var arabicLabels = Labels{
	CompanyName:   "اسم الشركة",
	VATNumber:     "الرقم الضريبي",
	InvoiceNumber: "رقم الفاتورة",
	Date:          "التاريخ",
	CustomerInfo:  "معلومات العميل",
	Description:   "الوصف",
	Quantity:      "الكمية",
	Amount:        "المبلغ",
	VAT:           "ض.ق.م",
	Total:         "الإجمالي",
	Subtotal:      "المجموع الفرعي",
	VATTotal:      "ضريبة القيمة المضافة",
	GrandTotal:    "الإجمالي",
	QRCode:        "رمز الاستجابة السريعة",
	Notes:         "ملاحظات",
}

var englishLabels = Labels{
	CompanyName:   "Company Name",
	VATNumber:     "VAT Number",
	InvoiceNumber: "Invoice Number",
	Date:          "Date",
	CustomerInfo:  "Customer Information",
	Description:   "Description",
	Quantity:      "Qty",
	Amount:        "Amount",
	VAT:           "VAT",
	Total:         "Total",
	Subtotal:      "Subtotal",
	VATTotal:      "VAT",
	GrandTotal:    "Total",
	QRCode:        "QR Code",
	Notes:         "Notes",
}

// DefaultLabels returns the complete default label set for the given language.
func DefaultLabels(lang Language) Labels {
	if lang == LanguageArabic {
		return arabicLabels
	}
	return englishLabels
}

// ResolveLabels merges caller overrides over the defaults for lang. Keys the
// caller does not override always fall back to lang's own default, never to
// the other language's.
func ResolveLabels(lang Language, overrides *LabelOverrides) Labels {
	labels := DefaultLabels(lang)
	if overrides == nil {
		return labels
	}

	apply := func(dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
		}
	}

	apply(&labels.CompanyName, overrides.CompanyName)
	apply(&labels.VATNumber, overrides.VATNumber)
	apply(&labels.InvoiceNumber, overrides.InvoiceNumber)
	apply(&labels.Date, overrides.Date)
	apply(&labels.CustomerInfo, overrides.CustomerInfo)
	apply(&labels.Description, overrides.Description)
	apply(&labels.Quantity, overrides.Quantity)
	apply(&labels.Amount, overrides.Amount)
	apply(&labels.VAT, overrides.VAT)
	apply(&labels.Total, overrides.Total)
	apply(&labels.Subtotal, overrides.Subtotal)
	apply(&labels.VATTotal, overrides.VATTotal)
	apply(&labels.GrandTotal, overrides.GrandTotal)
	apply(&labels.QRCode, overrides.QRCode)
	apply(&labels.Notes, overrides.Notes)

	return labels
}

// fillMissing unions labels with fallback so a blank key never renders empty.
func fillMissing(labels, fallback Labels) Labels {
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&labels.CompanyName, fallback.CompanyName)
	fill(&labels.VATNumber, fallback.VATNumber)
	fill(&labels.InvoiceNumber, fallback.InvoiceNumber)
	fill(&labels.Date, fallback.Date)
	fill(&labels.CustomerInfo, fallback.CustomerInfo)
	fill(&labels.Description, fallback.Description)
	fill(&labels.Quantity, fallback.Quantity)
	fill(&labels.Amount, fallback.Amount)
	fill(&labels.VAT, fallback.VAT)
	fill(&labels.Total, fallback.Total)
	fill(&labels.Subtotal, fallback.Subtotal)
	fill(&labels.VATTotal, fallback.VATTotal)
	fill(&labels.GrandTotal, fallback.GrandTotal)
	fill(&labels.QRCode, fallback.QRCode)
	fill(&labels.Notes, fallback.Notes)

	return labels
}
