package presenter

import "github.com/gofiber/fiber/v2"

// LogDetails is the generic pointer carried by every error body. Internal
// detail stays in server logs and never reaches the client.
const LogDetails = "Check the server logs for more details."

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Error: message, Details: LogDetails})
}
