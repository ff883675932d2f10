package middleware

import (
	"errors"

	"outlet_admin/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse xử lý và trả về error response cho client theo envelope
// {success:false, message, code}. Tách riêng để tránh import cycle với handler package.
func HandleErrorResponse(c fiber.Ctx, err error) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		JSONResponse(c, customErr.StatusCode, fiber.Map{
			"success": false,
			"message": customErr.Message,
			"code":    customErr.Code.Code,
		})
		return
	}
	JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"success": false,
		"message": err.Error(),
		"code":    common.ErrCodeInternalServer.Code,
	})
}
