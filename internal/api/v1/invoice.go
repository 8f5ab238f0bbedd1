package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/techsolutions/billing-service/internal/api/dto"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/logger"
	"github.com/techsolutions/billing-service/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice godoc
// @Summary Create a new invoice
// @Description Create a new invoice with the provided details
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoice godoc
// @Summary Get an invoice by ID
// @Description Get detailed information about an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// ListInvoicesByClient godoc
// @Summary List all invoices for a specific client
// @Description List every invoice billed to the given client
// @Tags Invoices
// @Accept json
// @Produce json
// @Param clientId path int true "Client ID"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients/{clientId}/invoices [get]
func (h *InvoiceHandler) ListInvoicesByClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "clientId")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.ListInvoicesByClient(c.Request.Context(), clientID)
	if err != nil {
		h.logger.Errorw("failed to list invoices", "error", err, "client_id", clientID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PayInvoice godoc
// @Summary Mark an invoice as PAID
// @Description Pay a pending invoice; paying an already paid invoice fails with a conflict
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/pay [put]
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	invoice, err := h.invoiceService.PayInvoice(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to pay invoice", "error", err, "invoice_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetClientTotal godoc
// @Summary Calculate total amount billed to a client
// @Description Sum of all invoice amounts for the client, pending invoices included
// @Tags Invoices
// @Accept json
// @Produce json
// @Param clientId path int true "Client ID"
// @Success 200 {object} dto.ClientTotalResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /clients/{clientId}/total [get]
func (h *InvoiceHandler) GetClientTotal(c *gin.Context) {
	clientID, err := parseIDParam(c, "clientId")
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.GetClientTotal(c.Request.Context(), clientID)
	if err != nil {
		h.logger.Errorw("failed to get client total", "error", err, "client_id", clientID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ierr.NewError("invalid identifier").
			WithHintf("%s must be a positive integer", name).
			WithReportableDetails(map[string]any{
				name: raw,
			}).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}
