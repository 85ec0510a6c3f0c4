// Package docs Terrain Analyst API.
//
// Сервис аналитика местности для планирования поисково-спасательных операций.
// Строит синтетический анализ местности, находит препятствия, оценивает
// сложность их пересечения с учётом погоды и строит маршруты между локациями.
//
// Основные возможности:
// - Анализ местности и взаимодействий местность/погода
// - Поиск препятствий и оценка сложности пересечения
// - Построение маршрутов с оценкой времени и снаряжения
// - Экспорт карты в GeoJSON
// - Мониторинг изменений местности после смены погоды
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//	- application/msgpack
//
// swagger:meta
package docs
