package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for owner-side invoice operations.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List handles GET /v1/invoices.
//
// @Summary      List the caller's invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Invoice
// @Failure      401  {object}  errorResponse
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	invoices, err := h.service.ListInvoices(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// Get handles GET /v1/invoices/:id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  errorResponse
// @Router       /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	inv, err := h.service.GetInvoice(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// Create handles POST /v1/invoices. The billing totals are computed from the
// selected tasks' unbilled logs and frozen into the new draft.
//
// @Summary      Create a draft invoice from a task selection
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inv, err := h.service.CreateInvoice(c.Request().Context(), ports.CreateInvoiceInput{
		UserID:      userID,
		TaskIDs:     req.TaskIDs,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inv)
}

// Update handles PUT /v1/invoices/:id. Only the descriptive fields are
// editable; totals and the task set were frozen at creation.
//
// @Summary      Update an invoice's client and description fields
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Invoice id"
// @Param        body  body      updateInvoiceRequest  true  "Invoice details"
// @Success      200   {object}  domain.Invoice
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inv, err := h.service.UpdateInvoice(c.Request().Context(), ports.UpdateInvoiceInput{
		InvoiceID:   c.Param("id"),
		UserID:      userID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// Delete handles DELETE /v1/invoices/:id. The deleted invoice's tasks become
// unbilled again.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Invoice id"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteInvoice(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Preview handles POST /v1/invoices/preview. Runs the billing calculator
// without creating anything.
//
// @Summary      Preview billing totals for a task selection
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      previewInvoiceRequest  true  "Task selection"
// @Success      200   {object}  previewInvoiceResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/invoices/preview [post]
func (h *InvoiceHandler) Preview(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req previewInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Preview(c.Request().Context(), userID, req.TaskIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, previewInvoiceResponse{
		TotalHours:  result.TotalHours,
		TotalAmount: result.TotalAmount,
		LogCount:    len(result.IncludedLogs),
	})
}

// Send handles POST /v1/invoices/:id/send. Marks the draft as sent without
// opening an approval session.
//
// @Summary      Mark a draft invoice as sent
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	inv, err := h.service.Send(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// SendForApproval handles POST /v1/invoices/:id/send-approval. Generates the
// shareable approval link and emails it to the client.
//
// @Summary      Send an invoice for client approval
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  sendApprovalResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/invoices/{id}/send-approval [post]
func (h *InvoiceHandler) SendForApproval(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.SendForApproval(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sendApprovalResponse{
		Invoice:      result.Invoice,
		ApprovalLink: result.ApprovalLink,
	})
}

// SetupPayment handles POST /v1/invoices/:id/payment.
//
// @Summary      Configure payment for an approved invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Invoice id"
// @Param        body  body      setupPaymentRequest  true  "Payment details"
// @Success      200   {object}  domain.Invoice
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/invoices/{id}/payment [post]
func (h *InvoiceHandler) SetupPayment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req setupPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inv, err := h.service.SetupPayment(c.Request().Context(), ports.SetupPaymentInput{
		InvoiceID:    c.Param("id"),
		UserID:       userID,
		Method:       req.Method,
		Instructions: req.Instructions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// MarkPaid handles POST /v1/invoices/:id/mark-paid.
//
// @Summary      Mark an approved invoice as paid
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	inv, err := h.service.MarkPaid(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// Email handles POST /v1/invoices/:id/email. Falls back to a mailto link
// when no mail provider is configured.
//
// @Summary      Email the invoice to the client
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Invoice id"
// @Param        body  body      emailInvoiceRequest  true  "Email subject and body"
// @Success      200   {object}  emailInvoiceResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/invoices/{id}/email [post]
func (h *InvoiceHandler) Email(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req emailInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	mailto, err := h.service.EmailInvoice(c.Request().Context(), c.Param("id"), userID, req.Subject, req.Body)
	if err != nil {
		return err
	}

	resp := emailInvoiceResponse{Delivery: "smtp"}
	if mailto != "" {
		resp.Delivery = "mailto"
		resp.Mailto = mailto
	}
	return c.JSON(http.StatusOK, resp)
}
