package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/i18n"
	"github.com/terraincognita07/nibble/internal/services"
)

const maxWeightTrendPoints = 365

type periodStatsResponse struct {
	Summary services.PeriodSummary `json:"summary"`
	Series  []services.SeriesPoint `json:"series"`
}

func (handler *Handler) TodayStats(c *fiber.Ctx) error {
	summary, err := handler.services.Analytics.DailySummary()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	label := summary.Date
	if day, err := dates.ParseISO(summary.Date, handler.location); err == nil {
		label = i18n.FormatLongDate(handler.currentLanguage(c), day)
	}
	return c.JSON(fiber.Map{
		"summary": summary,
		"label":   label,
	})
}

func (handler *Handler) WeeklyStats(c *fiber.Ctx) error {
	summary, err := handler.services.Analytics.WeeklySummary()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	series, err := handler.services.Analytics.WeeklySeries(handler.labeler(handler.currentLanguage(c)))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(periodStatsResponse{Summary: summary, Series: series})
}

func (handler *Handler) MonthlyStats(c *fiber.Ctx) error {
	summary, err := handler.services.Analytics.MonthlySummary()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	series, err := handler.services.Analytics.MonthlySeries(handler.labeler(handler.currentLanguage(c)))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(periodStatsResponse{Summary: summary, Series: series})
}

// WeightStats returns the weight trend; ?points caps how many recent entries are charted.
func (handler *Handler) WeightStats(c *fiber.Ctx) error {
	points := 0
	if raw := c.Query("points"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxWeightTrendPoints {
			return handler.respondInvalidInput(c)
		}
		points = parsed
	}

	trend, err := handler.services.Analytics.WeightTrend(points)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(trend)
}
