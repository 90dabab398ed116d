package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"invoice-service/internal/models"
	"invoice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService services.IInvoiceService
	exportService  services.IExportService
}

func NewInvoiceHandler(invoiceService services.IInvoiceService, exportService services.IExportService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, exportService: exportService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoiceGr := router.Group("/invoices")
	invoiceGr.POST("", h.CreateInvoice)
	invoiceGr.GET("", h.GetAllInvoices)
	invoiceGr.GET("/export", h.ExportInvoices)
	invoiceGr.GET("/:id", h.GetInvoiceByID)
	invoiceGr.PUT("/:id", h.UpdateInvoice)
	invoiceGr.DELETE("/:id", h.DeleteInvoice)
	invoiceGr.POST("/:id/email", h.EmailInvoice)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetAllInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.GetAllInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, invoice)
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, resp)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Invoice deleted successfully")
}

func (h *InvoiceHandler) EmailInvoice(c *gin.Context) {
	to, err := h.invoiceService.EmailInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Invoice sent to "+to)
}

// ExportInvoices buffers the workbook so a failure can still produce a JSON error.
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.ExportInvoices(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, services.ExportContentType, buf.Bytes())
}
