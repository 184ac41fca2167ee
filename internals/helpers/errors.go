package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Service-level error kinds. Controllers translate them with HTTPError;
// everything else is treated as an upstream failure and kept verbatim.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInsufficientParams = errors.New("insufficient parameters")
)

// HTTPError maps a service error onto a fiber error, preserving the
// original message. Upstream failures surface as 500 with the wrapped
// message intact, never swallowed.
func HTTPError(err error) *fiber.Error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInsufficientParams):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
