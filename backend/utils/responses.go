package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"langbridge/backend/config"
	"langbridge/backend/observability"
)

// SuccessResponse структура для успешных ответов
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse структура для ошибок. Error содержит диагностику и
// заполняется только в режиме разработки.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Success создает успешный JSON ответ
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Created отправляет ответ 201 Created
func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

// Message отправляет успешный ответ без данных
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Message: message,
	})
}

// Fail преобразует ошибку в JSON ответ. Незнакомые ошибки считаются
// ошибками хранилища и отдаются как 500 со стабильным сообщением.
func Fail(c *fiber.Ctx, cfg *config.Config, err error) error {
	var app *AppError
	if !errors.As(err, &app) {
		app = StoreError("Internal server error", err)
	}

	if app.Kind == KindStore {
		observability.CaptureErr(app)
	}

	response := ErrorResponse{
		Success: false,
		Message: app.Message,
	}
	if cfg.IsDevelopment() && app.Err != nil {
		response.Error = app.Err.Error()
	}

	return c.Status(app.Status()).JSON(response)
}
