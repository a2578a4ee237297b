// Package invoicepdf renders ZATCA-compliant bilingual invoice PDFs.
package invoicepdf

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/qistas/fatoora-api/pkg/arabic"
	"github.com/qistas/fatoora-api/pkg/vat"
)

const (
	arabicFontFamily = "ArabicUTF8"

	pageMargin  = 20.0 // mm
	lineHeight  = 7.0
	qrSideMM    = 50.0
	currencySAR = "SAR"
)

// Company identifies the invoice issuer.
type Company struct {
	NameEN    string
	NameAR    string
	VATNumber string
	Address   string
	Phone     string
	Email     string
}

// Line is one rendered invoice row; amounts are already computed.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATAmount   decimal.Decimal
	Total       decimal.Decimal
}

// Document is everything the composer needs to lay out one invoice.
type Document struct {
	Company Company

	Number string
	Date   time.Time

	CustomerNameAR    string
	CustomerNameEN    string // optional
	CustomerAddressAR string
	CustomerAddressEN string // optional
	CustomerVATNumber string // optional

	Lines  []Line
	Totals vat.Totals

	QRPNG []byte
	Notes string

	Language Language
	Labels   Labels
}

// FontConfig points the composer at a TTF with Arabic glyph coverage.
type FontConfig struct {
	ArabicFontPath string
}

// Composer turns Documents into paginated PDF bytes. Its configuration
// (including the Arabic font bytes) is loaded once at construction and never
// mutated, so a single Composer is safe for concurrent use.
type Composer struct {
	fontBytes []byte
}

// NewComposer loads the configured Arabic font. A missing or unreadable font
// is a degradation, not a failure: rendering falls back to the Helvetica core
// font and Arabic text will be legible only as far as that font allows.
func NewComposer(cfg FontConfig) *Composer {
	c := &Composer{}
	if cfg.ArabicFontPath == "" {
		log.Println("Warning: no Arabic font configured, falling back to core fonts")
		return c
	}

	data, err := os.ReadFile(cfg.ArabicFontPath)
	if err != nil {
		log.Printf("Warning: could not load Arabic font %s: %v", cfg.ArabicFontPath, err)
		return c
	}

	c.fontBytes = data
	return c
}

// ArabicFontLoaded reports whether Arabic glyph rendering is available.
func (c *Composer) ArabicFontLoaded() bool {
	return c.fontBytes != nil
}

// Render lays out the invoice and returns the PDF bytes. Any layout or
// encoding fault aborts the whole document; a partial PDF is never returned.
func (c *Composer) Render(doc *Document) ([]byte, error) {
	if len(doc.Lines) == 0 {
		return nil, errors.New("invoice has no line items")
	}

	// The resolved set covers the requested language; the opposite side of
	// the bilingual layout always uses that language's defaults. Union with
	// defaults so an unset key never renders blank.
	ar := DefaultLabels(LanguageArabic)
	en := DefaultLabels(LanguageEnglish)
	if doc.Language == LanguageEnglish {
		en = fillMissing(doc.Labels, en)
	} else {
		ar = fillMissing(doc.Labels, ar)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	if c.fontBytes != nil {
		pdf.AddUTF8FontFromBytes(arabicFontFamily, "", c.fontBytes)
		pdf.AddUTF8FontFromBytes(arabicFontFamily, "B", c.fontBytes)
	}

	pdf.AddPage()

	r := &renderer{pdf: pdf, arabicOK: c.fontBytes != nil, ar: ar, en: en}
	r.header(doc)
	r.customerBlock(doc)
	r.lineItemTable(doc)
	r.totalsBlock(doc)
	if err := r.qrBlock(doc); err != nil {
		return nil, err
	}
	r.notesBlock(doc)

	if pdf.Err() {
		return nil, fmt.Errorf("pdf composition failed: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// renderer holds per-document layout state.
type renderer struct {
	pdf      *gofpdf.Fpdf
	arabicOK bool
	ar       Labels
	en       Labels
}

func (r *renderer) contentWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w - 2*pageMargin
}

func (r *renderer) setFontEN(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	r.pdf.SetFont("Helvetica", style, size)
}

func (r *renderer) setFontAR(bold bool, size float64) {
	if !r.arabicOK {
		r.setFontEN(bold, size)
		return
	}
	style := ""
	if bold {
		style = "B"
	}
	r.pdf.SetFont(arabicFontFamily, style, size)
}

// shapeText runs Arabic-bearing strings through the shaper; failures keep the
// original text and are only logged.
func shapeText(s string) string {
	res := arabic.ShapeForDisplay(s)
	if !res.Shaped && arabic.ContainsArabic(s) {
		log.Printf("Warning: Arabic shaping fell back to raw text for %q", s)
	}
	return res.Text
}

// bilingualRow renders one header-style row: English cell on the left,
// Arabic cell (shaped, right-aligned) on the right.
func (r *renderer) bilingualRow(enText, arText string, bold bool, size float64) {
	half := r.contentWidth() / 2
	r.setFontEN(bold, size)
	r.pdf.CellFormat(half, lineHeight, enText, "", 0, "L", false, 0, "")
	r.setFontAR(bold, size)
	r.pdf.CellFormat(half, lineHeight, shapeText(arText), "", 1, "R", false, 0, "")
}

func (r *renderer) header(doc *Document) {
	r.bilingualRow(doc.Company.NameEN, doc.Company.NameAR, true, 14)
	r.bilingualRow(
		r.en.VATNumber+": "+doc.Company.VATNumber,
		r.ar.VATNumber+": "+doc.Company.VATNumber,
		false, 10,
	)
	r.bilingualRow(
		r.en.InvoiceNumber+": "+doc.Number,
		r.ar.InvoiceNumber+": "+doc.Number,
		false, 10,
	)
	date := doc.Date.Format("2006-01-02")
	r.bilingualRow(r.en.Date+": "+date, r.ar.Date+": "+date, false, 10)
	r.pdf.Ln(8)
}

func (r *renderer) customerBlock(doc *Document) {
	width := r.contentWidth()
	half := width / 2

	// Section title on a light background.
	r.pdf.SetFillColor(240, 240, 240)
	r.setFontEN(true, 10)
	r.pdf.CellFormat(half, lineHeight, r.en.CustomerInfo, "", 0, "L", true, 0, "")
	r.setFontAR(true, 10)
	r.pdf.CellFormat(half, lineHeight, shapeText(r.ar.CustomerInfo), "", 1, "R", true, 0, "")

	// Arabic identity is mandatory; English rows appear only when supplied,
	// never as blank placeholders.
	r.customerRow(doc.CustomerNameEN, doc.CustomerNameAR)
	r.customerRow(doc.CustomerAddressEN, doc.CustomerAddressAR)

	if doc.CustomerVATNumber != "" {
		r.bilingualRow(
			r.en.VATNumber+": "+doc.CustomerVATNumber,
			r.ar.VATNumber+": "+doc.CustomerVATNumber,
			false, 10,
		)
	}
	r.pdf.Ln(6)
}

func (r *renderer) customerRow(enText, arText string) {
	width := r.contentWidth()
	if enText == "" {
		r.setFontAR(false, 10)
		r.pdf.CellFormat(width, lineHeight, shapeText(arText), "", 1, "R", false, 0, "")
		return
	}
	r.bilingualRow(enText, arText, false, 10)
}

var itemColWidths = [5]float64{70, 20, 28, 24, 28}

func (r *renderer) lineItemTable(doc *Document) {
	headers := [5]string{
		shapeText(r.ar.Description) + " " + r.en.Description,
		shapeText(r.ar.Quantity) + " " + r.en.Quantity,
		shapeText(r.ar.Amount) + " " + r.en.Amount,
		shapeText(r.ar.VAT) + " " + r.en.VAT,
		shapeText(r.ar.Total) + " " + r.en.Total,
	}

	r.pdf.SetFillColor(44, 62, 80)
	r.pdf.SetTextColor(255, 255, 255)
	r.setFontAR(true, 9)
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		r.pdf.CellFormat(itemColWidths[i], lineHeight+1, h, "1", ln, "C", true, 0, "")
	}
	r.pdf.SetTextColor(0, 0, 0)

	for i, line := range doc.Lines {
		if i%2 == 0 {
			r.pdf.SetFillColor(255, 255, 255)
		} else {
			r.pdf.SetFillColor(249, 249, 249)
		}

		descAlign := "L"
		if arabic.ContainsArabic(line.Description) {
			descAlign = "R"
		}
		r.setFontAR(false, 9)
		r.pdf.CellFormat(itemColWidths[0], lineHeight, shapeText(line.Description), "1", 0, descAlign, true, 0, "")

		r.setFontEN(false, 9)
		r.pdf.CellFormat(itemColWidths[1], lineHeight, line.Quantity.StringFixed(2), "1", 0, "C", true, 0, "")
		r.pdf.CellFormat(itemColWidths[2], lineHeight, moneySAR(line.UnitPrice), "1", 0, "R", true, 0, "")
		r.pdf.CellFormat(itemColWidths[3], lineHeight, moneySAR(line.VATAmount), "1", 0, "R", true, 0, "")
		r.pdf.CellFormat(itemColWidths[4], lineHeight, moneySAR(line.Total), "1", 1, "R", true, 0, "")
	}
	r.pdf.Ln(6)
}

func (r *renderer) totalsBlock(doc *Document) {
	labelW := r.contentWidth() - 50
	valueW := 50.0

	row := func(enLabel, arLabel string, amount decimal.Decimal, emphasized bool) {
		if emphasized {
			r.pdf.SetFillColor(240, 240, 240)
		}
		r.setFontAR(emphasized, 10)
		label := enLabel + " | " + shapeText(arLabel)
		r.pdf.CellFormat(labelW, lineHeight+1, label, "T", 0, "R", emphasized, 0, "")
		r.setFontEN(emphasized, 10)
		r.pdf.CellFormat(valueW, lineHeight+1, moneySAR(amount), "T", 1, "R", emphasized, 0, "")
	}

	row(r.en.Subtotal, r.ar.Subtotal, doc.Totals.Subtotal, false)
	row(r.en.VATTotal, r.ar.VATTotal, doc.Totals.VATAmount, false)
	row(r.en.GrandTotal, r.ar.GrandTotal, doc.Totals.TotalAmount, true)
	r.pdf.Ln(8)
}

func (r *renderer) qrBlock(doc *Document) error {
	if len(doc.QRPNG) == 0 {
		return errors.New("missing qr image")
	}

	// Keep the caption and image on one page.
	_, pageH := r.pdf.GetPageSize()
	if r.pdf.GetY()+qrSideMM+2*lineHeight > pageH-pageMargin {
		r.pdf.AddPage()
	}

	r.setFontAR(true, 10)
	caption := r.en.QRCode + " | " + shapeText(r.ar.QRCode)
	r.pdf.CellFormat(r.contentWidth(), lineHeight, caption, "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	r.pdf.RegisterImageOptionsReader("zatca-qr", opts, bytes.NewReader(doc.QRPNG))
	y := r.pdf.GetY()
	r.pdf.ImageOptions("zatca-qr", pageMargin, y, qrSideMM, qrSideMM, false, opts, 0, "")
	r.pdf.SetY(y + qrSideMM + 4)

	if r.pdf.Err() {
		return fmt.Errorf("qr image placement failed: %w", r.pdf.Error())
	}
	return nil
}

func (r *renderer) notesBlock(doc *Document) {
	if doc.Notes == "" {
		return
	}
	r.setFontAR(true, 10)
	title := r.en.Notes + " | " + shapeText(r.ar.Notes) + ":"
	r.pdf.CellFormat(r.contentWidth(), lineHeight, title, "", 1, "L", false, 0, "")

	align := "L"
	if arabic.ContainsArabic(doc.Notes) {
		align = "R"
	}
	r.setFontAR(false, 10)
	r.pdf.MultiCell(r.contentWidth(), 6, shapeText(doc.Notes), "", align, false)
}

func moneySAR(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + currencySAR
}
