// utils/http.go - JSON response helpers
package utils

import (
	"errors"

	"codequest/store"

	"github.com/gofiber/fiber/v2"
)

// Success sends {"success": true} merged with data.
func Success(c *fiber.Ctx, data fiber.Map) error {
	response := fiber.Map{"success": true}
	for k, v := range data {
		response[k] = v
	}
	return c.JSON(response)
}

// Error sends a JSON error response with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// StoreError maps a store-layer error to the right HTTP response.
func StoreError(c *fiber.Ctx, err error) error {
	var validation *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Error(c, fiber.StatusNotFound, "Record not found")
	case errors.Is(err, store.ErrConflict):
		return Error(c, fiber.StatusConflict, "Record already in that state")
	case errors.As(err, &validation):
		return Error(c, fiber.StatusBadRequest, validation.Error())
	default:
		return Error(c, fiber.StatusInternalServerError, "Storage failure")
	}
}
