package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
)

// LocationHandler maneja las peticiones HTTP para Location.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos de la ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ubicación por ID
// @Tags         locations
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ubicación
// @Description  El ID es inmutable; solo se actualizan los campos enviados.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la ubicación"
// @Param        body  body  dto.UpdateLocationRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ubicación
// @Description  Falla con 409 si algún movimiento la referencia.
// @Tags         locations
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Movimientos que tocan una ubicación
// @Tags         locations
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/movements [get]
func (h *LocationHandler) Movements(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.Movements(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
