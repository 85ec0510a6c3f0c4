package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS открывает /api/v1 для операторских UI; пустой список означает "*"
func CORS(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		AllowHeaders:  "Content-Type,Accept",
		ExposeHeaders: "Content-Type",
		MaxAge:        600,
	})
}
