package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qistas/fatoora-api/internal/application/service"
	"github.com/qistas/fatoora-api/internal/presentation/http/dto/request"
	"github.com/qistas/fatoora-api/internal/presentation/http/dto/response"
	"github.com/qistas/fatoora-api/pkg/invoicepdf"
	"github.com/qistas/fatoora-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func toLineItemInputs(items []request.LineItemRequest) []service.LineItemInput {
	inputs := make([]service.LineItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATRate:     item.VATRate,
		}
	}
	return inputs
}

// Generate handles invoice generation
// @Summary Generate Invoice
// @Description Generate a ZATCA Phase-1 invoice with QR code and PDF
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.GenerateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	invoice, generated, err := h.invoiceService.CreateInvoice(c.Request.Context(), *userID, &service.GenerateInvoiceInput{
		CompanyID:         companyID,
		InvoiceNumber:     req.InvoiceNumber,
		CustomerNameAR:    req.CustomerNameAR,
		CustomerNameEN:    req.CustomerNameEN,
		CustomerAddressAR: req.CustomerAddressAR,
		CustomerAddressEN: req.CustomerAddressEN,
		CustomerVATNumber: req.CustomerVATNumber,
		InvoiceDate:       req.InvoiceDate,
		LineItems:         toLineItemInputs(req.LineItems),
		Language:          invoicepdf.Language(req.Language),
		LabelOverrides:    req.LabelOverrides,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice generated successfully", gin.H{
		"invoice":      invoice,
		"qr_data":      generated.QRData,
		"subtotal":     generated.Totals.Subtotal,
		"vat_amount":   generated.Totals.VATAmount,
		"total":        generated.Totals.TotalAmount,
		"generated_at": generated.GeneratedAt,
	})
}

// Preview handles calculator-only totals preview
// @Summary Preview Totals
// @Description Calculate invoice totals without generating QR or PDF
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.PreviewRequest true "Line items"
// @Success 200 {object} response.APIResponse
// @Router /preview/calculate [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req request.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result := h.invoiceService.Preview(toLineItemInputs(req.LineItems))
	response.OK(c, "Preview calculated", result)
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), *userID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// GetByNumber handles getting an invoice by its invoice number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	number := c.Param("number")
	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), *userID, number)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// DownloadPDF handles downloading the stored invoice PDF
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	pdfBytes, err := h.invoiceService.GetPDF(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice.pdf"`)
	c.Data(200, "application/pdf", pdfBytes)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
