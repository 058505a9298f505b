package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/domain"
)

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}
