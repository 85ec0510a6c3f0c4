package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/export"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/utils"
	"github.com/terrain-analyst/internal/pkg/validator"
	"github.com/terrain-analyst/internal/usecase"
	"github.com/terrain-analyst/internal/usecase/dto"
)

const mimeGeoJSON = "application/geo+json"

// TerrainHandler - REST-обёртка над операциями аналитика
type TerrainHandler struct {
	terrainUC  *usecase.TerrainUseCase
	dispatcher *usecase.Dispatcher
	logger     *zap.Logger
}

func NewTerrainHandler(terrainUC *usecase.TerrainUseCase, dispatcher *usecase.Dispatcher, logger *zap.Logger) *TerrainHandler {
	return &TerrainHandler{
		terrainUC:  terrainUC,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Dispatch godoc
// @Summary Единая точка входа аналитика
// @Description Маршрутизирует запрос по полю "type" или по ключу операции. Ошибки возвращаются в теле как {"error": "..."}.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Param request body object true "Запрос с дискриминантом операции"
// @Success 200 {object} object
// @Router /api/v1/requests [post]
func (h *TerrainHandler) Dispatch(c *fiber.Ctx) error {
	start := time.Now()
	result := h.dispatcher.Dispatch(c.Context(), c.Body())
	h.logger.Debug("Request dispatched", zap.Duration("elapsed", time.Since(start)))
	return utils.SendRaw(c, result)
}

// AnalyzeTerrain godoc
// @Summary Анализ местности
// @Tags Terrain
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeTerrainRequest true "Локация и параметры анализа"
// @Success 200 {object} utils.SuccessResponse{data=domain.TerrainSnapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/terrain/analyze [post]
func (h *TerrainHandler) AnalyzeTerrain(c *fiber.Ctx) error {
	var req dto.AnalyzeTerrainRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	result, err := h.terrainUC.AnalyzeTerrain(c.Context(), req.Location, req.Resolution, dto.WeatherFlag(req.IncludeWeather))
	if err != nil {
		return utils.SendError(c, toAppError(err))
	}
	return utils.SendSuccess(c, result, meta(dto.OpAnalyzeTerrain, start))
}

// IdentifyObstacles godoc
// @Summary Поиск препятствий
// @Tags Terrain
// @Accept json
// @Produce json
// @Param request body dto.IdentifyObstaclesRequest true "Локация"
// @Success 200 {object} utils.SuccessResponse{data=domain.ObstacleReport}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/terrain/obstacles [post]
func (h *TerrainHandler) IdentifyObstacles(c *fiber.Ctx) error {
	var req dto.IdentifyObstaclesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	result, err := h.terrainUC.IdentifyObstacles(c.Context(), req.Location, dto.WeatherFlag(req.IncludeWeather))
	if err != nil {
		return utils.SendError(c, toAppError(err))
	}
	return utils.SendSuccess(c, result, meta(dto.OpIdentifyObstacles, start))
}

// GeneratePath godoc
// @Summary Построение маршрута
// @Tags Paths
// @Accept json
// @Produce json
// @Param request body dto.GeneratePathRequest true "Начало, конец и сложность"
// @Success 200 {object} utils.SuccessResponse{data=domain.PathPlan}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/paths [post]
func (h *TerrainHandler) GeneratePath(c *fiber.Ctx) error {
	var req dto.GeneratePathRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	result, err := h.terrainUC.GeneratePath(c.Context(), req.Start, req.End, req.Difficulty, dto.WeatherFlag(req.IncludeWeather))
	if err != nil {
		return utils.SendError(c, toAppError(err))
	}
	return utils.SendSuccess(c, result, meta(dto.OpGeneratePath, start))
}

// GetTerrainMap godoc
// @Summary Карта местности в GeoJSON
// @Description Возвращает FeatureCollection без обёртки
// @Tags Terrain
// @Produce json
// @Param location path string true "Локация"
// @Param format query string false "Формат экспорта" default(geojson)
// @Param include_weather query bool false "Слой погоды" default(true)
// @Success 200 {object} domain.FeatureCollection
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/terrain/{location}/map [get]
func (h *TerrainHandler) GetTerrainMap(c *fiber.Ctx) error {
	req := dto.TerrainMapRequest{
		Location: c.Params("location"),
		Format:   c.Query("format", export.FormatGeoJSON),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	fc, err := h.terrainUC.GetTerrainMap(c.Context(), req.Location, req.Format, c.QueryBool("include_weather", true))
	if err != nil {
		return utils.SendError(c, toAppError(err))
	}
	if utils.WantsMsgpack(c) {
		return utils.SendRaw(c, fc)
	}
	return c.JSON(fc, mimeGeoJSON)
}

// MonitorTerrainChanges godoc
// @Summary Изменения местности с момента анализа
// @Tags Terrain
// @Produce json
// @Param location path string true "Локация"
// @Success 200 {object} utils.SuccessResponse{data=domain.ChangeReport}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/terrain/{location}/changes [get]
func (h *TerrainHandler) MonitorTerrainChanges(c *fiber.Ctx) error {
	req := dto.MonitorChangesRequest{Location: c.Params("location")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	result, err := h.terrainUC.MonitorTerrainChanges(c.Context(), req.Location)
	if err != nil {
		return utils.SendError(c, toAppError(err))
	}
	return utils.SendSuccess(c, result, meta(dto.OpMonitorTerrainChanges, start))
}

// EvaluateCrossing godoc
// @Summary Оценка сложности пересечения препятствия
// @Tags Terrain
// @Produce json
// @Param location path string true "Локация"
// @Param obstacle_type query string true "Тип препятствия"
// @Success 200 {object} utils.SuccessResponse{data=domain.CrossingReport}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/terrain/{location}/crossing [get]
func (h *TerrainHandler) EvaluateCrossing(c *fiber.Ctx) error {
	req := dto.CrossingRequest{
		Location:     c.Params("location"),
		ObstacleType: domain.ObstacleType(c.Query("obstacle_type")),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	result, err := h.terrainUC.EvaluateCrossingDifficulty(c.Context(), req.Location, req.ObstacleType)
	if err != nil {
		return utils.SendError(c, toAppError(err))
	}
	return utils.SendSuccess(c, result, meta(dto.OpEvaluateCrossingDifficulty, start))
}

func meta(op dto.Operation, start time.Time) *utils.Meta {
	return &utils.Meta{
		Operation: string(op),
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
	}
}

// TerrainHistory godoc
// @Summary История анализов локации
// @Description Требует базу знаний postgres, иначе 501
// @Tags Knowledge
// @Produce json
// @Param location path string true "Локация"
// @Param limit query int false "Сколько снимков вернуть" default(10)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TerrainSnapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 501 {object} utils.ErrorResponse
// @Router /api/v1/terrain/{location}/history [get]
func (h *TerrainHandler) TerrainHistory(c *fiber.Ctx) error {
	req := dto.HistoryRequest{
		Location: c.Params("location"),
		Limit:    c.QueryInt("limit", usecase.DefaultHistoryLimit),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	history, err := h.terrainUC.TerrainHistory(c.Context(), req.Location, req.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, history, meta("terrain_history", start))
}

// LocationsWithTerrain godoc
// @Summary Локации с заданным типом местности
// @Tags Knowledge
// @Produce json
// @Param terrain_type query string true "Тип местности"
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 501 {object} utils.ErrorResponse
// @Router /api/v1/terrain/locations [get]
func (h *TerrainHandler) LocationsWithTerrain(c *fiber.Ctx) error {
	req := dto.TerrainLookupRequest{TerrainType: domain.TerrainType(c.Query("terrain_type"))}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalid(err))
	}

	start := time.Now()
	locations, err := h.terrainUC.LocationsWithTerrain(c.Context(), req.TerrainType)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, locations, meta("terrain_locations", start))
}
