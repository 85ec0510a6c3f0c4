package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/utils"
	"github.com/terrain-analyst/internal/pkg/validator"
	"github.com/terrain-analyst/internal/usecase"
	"github.com/terrain-analyst/internal/usecase/dto"
)

// StatusHandler - статус миссии аналитика
type StatusHandler struct {
	terrainUC *usecase.TerrainUseCase
}

func NewStatusHandler(terrainUC *usecase.TerrainUseCase) *StatusHandler {
	return &StatusHandler{terrainUC: terrainUC}
}

// GetStatus godoc
// @Summary Текущий статус миссии
// @Tags Status
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=map[string]string}
// @Router /api/v1/status [get]
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{"status": h.terrainUC.Status()}, nil)
}

// UpdateStatus godoc
// @Summary Смена статуса миссии
// @Tags Status
// @Accept json
// @Produce json
// @Param request body dto.StatusRequest true "Новый статус"
// @Success 200 {object} utils.SuccessResponse{data=domain.StatusUpdate}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/status [put]
func (h *StatusHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}
	return utils.SendSuccess(c, h.terrainUC.UpdateStatus(req.Status), nil)
}
