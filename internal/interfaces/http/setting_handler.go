package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/dto"
)

// SettingHandler maneja las peticiones HTTP de configuración del negocio.
type SettingHandler struct {
	uc *billing.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *billing.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener configuración del negocio
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingResponse
// @Router       /api/settings [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	setting, err := h.uc.Get()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(setting)
}

// Update godoc
// @Summary      Actualizar configuración del negocio
// @Description  El consecutivo de documentos no es editable por esta vía.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingRequest  true  "datos del negocio y política de impuestos"
// @Success      200   {object}  dto.SettingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	setting, err := h.uc.Update(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(setting)
}
