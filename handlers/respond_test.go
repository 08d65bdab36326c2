package handlers

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"predictplay/services"

	"github.com/gofiber/fiber/v2"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	app := fiber.New()
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return respondServiceError(c, fmt.Errorf("only the creator can do this: %w", services.ErrForbidden))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return respondServiceError(c, fmt.Errorf("no such row: %w", services.ErrNotFound))
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return respondServiceError(c, errors.New("name is required"))
	})

	cases := []struct {
		path string
		want int
	}{
		{"/forbidden", fiber.StatusForbidden},
		{"/missing", fiber.StatusNotFound},
		{"/invalid", fiber.StatusBadRequest},
	}
	for _, c := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", c.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", c.path, err)
		}
		if resp.StatusCode != c.want {
			t.Errorf("%s status = %d, want %d", c.path, resp.StatusCode, c.want)
		}
	}
}
