package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Sin from_location es una entrada; sin to_location una salida; con ambos un traslado.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
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
// @Summary      Obtener movimiento
// @Tags         movements
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Orden: más recientes primero. since/until en RFC3339, ambos inclusivos.
// @Tags         movements
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        since        query  string  false  "Desde (RFC3339)"
// @Param        until        query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.MovementListResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Reemplaza producto, ubicaciones y cantidad; conserva el timestamp original.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Param        id   path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func movementID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de movimiento inválido"})
}
