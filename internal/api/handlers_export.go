package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/services"
)

const importFileField = "file"

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	backup, err := handler.services.Export.BuildBackup()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	serialized, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return handler.respondServiceError(c, fmt.Errorf("%w: %v", services.ErrExportFailed, err))
	}

	setAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(time.Now().In(handler.location), "json"))
	return c.Send(serialized)
}

// ExportCSV writes the food log for the optional ?from&to range.
func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	rows, err := handler.services.Export.BuildCSVRows(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	var output bytes.Buffer
	if err := services.WriteCSV(&output, rows); err != nil {
		return handler.respondServiceError(c, err)
	}

	setAttachmentHeaders(c, "text/csv", buildExportFilename(time.Now().In(handler.location), "csv"))
	return c.Send(output.Bytes())
}

// ImportBackup replaces all data with a backup sent as the JSON body or a multipart "file".
func (handler *Handler) ImportBackup(c *fiber.Ctx) error {
	payload, err := readImportPayload(c)
	if err != nil {
		return handler.respondInvalidInput(c)
	}

	backup := services.Backup{}
	if err := json.Unmarshal(payload, &backup); err != nil {
		return handler.respondServiceError(c, fmt.Errorf("%w: %v", services.ErrInvalidBackup, err))
	}

	summary, err := handler.services.Export.ImportBackup(backup)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.logger.Info("backup imported",
		"food_entries", summary.FoodEntries,
		"weight_entries", summary.WeightEntries,
		"recipes", summary.Recipes,
	)
	return c.JSON(summary)
}

func readImportPayload(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return c.Body(), nil
	}

	header, err := c.FormFile(importFileField)
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("nibble-export-%s.%s", dates.FormatISO(now), extension)
}
