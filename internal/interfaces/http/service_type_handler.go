package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petverde/green-pos/internal/application/dto"
	"github.com/petverde/green-pos/internal/application/scheduling"
)

// ServiceTypeHandler maneja las peticiones HTTP de tipos de servicio.
type ServiceTypeHandler struct {
	uc *scheduling.ServiceTypeUseCase
}

// NewServiceTypeHandler construye el handler.
func NewServiceTypeHandler(uc *scheduling.ServiceTypeUseCase) *ServiceTypeHandler {
	return &ServiceTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de servicio
// @Tags         service-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceTypeRequest  true  "code, name, pricing_mode (fixed|variable)"
// @Success      201   {object}  dto.ServiceTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-types [post]
func (h *ServiceTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	st, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

// List godoc
// @Summary      Listar tipos de servicio
// @Tags         service-types
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Success      200  {array}  dto.ServiceTypeResponse
// @Router       /api/service-types [get]
func (h *ServiceTypeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.QueryBool("active"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Actualizar tipo de servicio
// @Tags         service-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del tipo de servicio"
// @Param        body  body  dto.UpdateServiceTypeRequest  true  "datos a actualizar"
// @Success      200   {object}  dto.ServiceTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-types/{code} [put]
func (h *ServiceTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	st, err := h.uc.Update(c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}
