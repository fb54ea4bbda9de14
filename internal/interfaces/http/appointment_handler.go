package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/petverde/green-pos/internal/application/dto"
	"github.com/petverde/green-pos/internal/application/scheduling"
)

// AppointmentHandler maneja las peticiones HTTP de citas de grooming.
type AppointmentHandler struct {
	uc *scheduling.UseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *scheduling.UseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cita con servicios
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "customer_id y servicios (mínimo uno)"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var scheduledAt *time.Time
	if in.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, in.ScheduledAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "scheduled_at debe ser RFC 3339"})
		}
		scheduledAt = &t
	}
	result, err := h.uc.CreateAppointment(c.Context(), scheduling.CreateAppointmentInput{
		CustomerID:  in.CustomerID,
		PetID:       in.PetID,
		Description: in.Description,
		Technician:  in.Technician,
		ScheduledAt: scheduledAt,
		Services:    toServiceInputs(in.Services),
		Actor:       GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAppointmentResponse(result))
}

// List godoc
// @Summary      Listar citas con estado derivado
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	results, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.AppointmentResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toAppointmentResponse(r))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cita
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	result, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(result))
}

// AddService godoc
// @Summary      Agregar servicio a una cita no facturada
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.ServiceLineRequest  true  "code del tipo de servicio; price obligatorio si es variable"
// @Success      201   {object}  dto.ServiceLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/services [post]
func (h *AppointmentHandler) AddService(c *fiber.Ctx) error {
	var in dto.ServiceLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddService(c.Context(), c.Params("id"), scheduling.ServiceInput{
		Code:        in.Code,
		Price:       in.Price,
		Description: in.Description,
	}, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toServiceLineResponse(line))
}

// UpdateServiceStatus godoc
// @Summary      Cambiar el estado de una línea de servicio
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID de la cita"
// @Param        line_id  path  string  true  "ID de la línea"
// @Param        body     body  object{status=string}  true  "pending | done | cancelled"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/services/{line_id}/status [patch]
func (h *AppointmentHandler) UpdateServiceStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.UpdateServiceStatus(c.Context(), c.Params("id"), c.Params("line_id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(result))
}

// Finish godoc
// @Summary      Cerrar cita y facturar
// @Description  Marca como done las líneas no canceladas y genera exactamente
//
//	una factura con ellas. Un segundo cierre es idempotente: solo
//	sincroniza estados y responde already_billed=true.
//
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.FinishAppointmentRequest  false  "payment_method y discount opcionales"
// @Success      200   {object}  dto.FinishAppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/finish [post]
func (h *AppointmentHandler) Finish(c *fiber.Ctx) error {
	var in dto.FinishAppointmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	result, err := h.uc.Finish(c.Context(), scheduling.FinishInput{
		AppointmentID: c.Params("id"),
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
		Actor:         GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.FinishAppointmentResponse{
		Appointment: *toAppointmentResponse(&scheduling.AppointmentResult{
			Appointment: result.Appointment,
			Lines:       result.Lines,
			Status:      result.Status,
		}),
		AlreadyBilled: result.AlreadyBilled,
	}
	if result.Document != nil {
		resp.Document = toDocumentResponse(result.Document, result.DocumentLines)
	}
	return c.JSON(resp)
}

// Cancel godoc
// @Summary      Cancelar cita
// @Description  Cancela toda línea aún no realizada. Las líneas done se
//
//	conservan y la factura enlazada nunca se toca.
//
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	result, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(result))
}

func toServiceInputs(services []dto.ServiceLineRequest) []scheduling.ServiceInput {
	out := make([]scheduling.ServiceInput, 0, len(services))
	for _, s := range services {
		out = append(out, scheduling.ServiceInput{
			Code:        s.Code,
			Price:       s.Price,
			Description: s.Description,
		})
	}
	return out
}
