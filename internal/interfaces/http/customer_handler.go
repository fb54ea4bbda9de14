package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes, incluida la
// aplicación del saldo a favor.
type CustomerHandler struct {
	uc         *billing.CustomerUseCase
	documents  *billing.DocumentUseCase
	settlement *billing.SettlementUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, documents *billing.DocumentUseCase, settlement *billing.SettlementUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, documents: documents, settlement: settlement}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "name y document obligatorios"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filtro por nombre o documento"
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  El saldo a favor no se edita por aquí: lo mutan las notas
//
//	crédito y la aplicación de crédito.
//
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "datos de contacto"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// ListDocuments godoc
// @Summary      Documentos del cliente (facturas y notas crédito)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}   dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/documents [get]
func (h *CustomerHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.documents.ListByCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc, nil))
	}
	return c.JSON(out)
}

// ApplyCredit godoc
// @Summary      Aplicar saldo a favor contra una factura
// @Description  Consume las notas crédito del cliente en orden de creación
//
//	(FIFO). Shortfall > 0 en la respuesta indica que el crédito no
//	cubrió el monto solicitado; no es un error.
//
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ApplyCreditRequest  true  "invoice_id y amount"
// @Success      200   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/credit/apply [post]
func (h *CustomerHandler) ApplyCredit(c *fiber.Ctx) error {
	var in dto.ApplyCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.settlement.ApplyCredit(c.Context(), billing.ApplyCreditInput{
		CustomerID: c.Params("id"),
		InvoiceID:  in.InvoiceID,
		Amount:     in.Amount,
		Actor:      GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettlementResponse(result))
}
