package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

var metricsHandler = adaptor.HTTPHandler(promhttp.Handler())

func (handler *Handler) Metrics(c *fiber.Ctx) error {
	return metricsHandler(c)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return handler.respondNotFound(c)
	}
	return c.Status(fiber.StatusNotFound).SendString(handler.translate(c, "api.not_found"))
}
