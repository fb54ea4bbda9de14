package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/dto"
)

// DocumentHandler maneja las peticiones HTTP de facturas y notas crédito.
type DocumentHandler struct {
	uc  *billing.DocumentUseCase
	pdf *billing.PDFUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *billing.DocumentUseCase, pdf *billing.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdf: pdf}
}

// CreateInvoice godoc
// @Summary      Crear factura
// @Description  Descuenta inventario línea por línea y asigna el consecutivo
//
//	compartido en una sola transacción. La factura nace pending.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "customer_id y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/invoices [post]
func (h *DocumentHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.CreateInvoice(c.Context(), billing.CreateInvoiceInput{
		CustomerID:    in.CustomerID,
		Lines:         toLineInputs(in.Lines),
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
		Notes:         in.Notes,
		Actor:         GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResult(result))
}

// CreateCreditNote godoc
// @Summary      Crear nota crédito contra una factura
// @Description  Restaura inventario, toma el consecutivo compartido y acredita
//
//	el total al saldo a favor del cliente. Nace validated. El precio
//	unitario siempre es el facturado originalmente.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.CreateCreditNoteRequest  true  "líneas a devolver y reason (mínimo 10 caracteres)"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/invoices/{id}/credit-notes [post]
func (h *DocumentHandler) CreateCreditNote(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.CreateCreditNote(c.Context(), billing.CreateCreditNoteInput{
		InvoiceID: c.Params("id"),
		Lines:     toLineInputs(in.Lines),
		Reason:    in.Reason,
		Actor:     GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResult(result))
}

// GetByID godoc
// @Summary      Obtener documento con líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	result, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResult(result))
}

// Edit godoc
// @Summary      Editar factura pendiente
// @Description  Solo método de pago y descuento; cada cambio queda en la
//
//	bitácora de notas del documento con actor y motivo.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.EditDocumentRequest  true  "payment_method y/o discount más reason"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [patch]
func (h *DocumentHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.Edit(c.Context(), billing.EditInput{
		DocumentID:    c.Params("id"),
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
		Reason:        in.Reason,
		Actor:         GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc, nil))
}

// Delete godoc
// @Summary      Eliminar factura pendiente
// @Description  Registra un reverso compensatorio de inventario por cada
//
//	línea; el libro nunca se reescribe.
//
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUsername(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "documento eliminado"})
}

// Validate godoc
// @Summary      Validar factura pendiente
// @Description  Transición terminal pending → validated: cierra ediciones y borrado.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/validate [post]
func (h *DocumentHandler) Validate(c *fiber.Ctx) error {
	doc, err := h.uc.Validate(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc, nil))
}

// DownloadPDF godoc
// @Summary      Descargar PDF del documento
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadDocumentPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func toLineInputs(lines []dto.DocumentLineRequest) []billing.LineInput {
	out := make([]billing.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, billing.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}
