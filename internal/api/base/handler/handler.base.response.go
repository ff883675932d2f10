package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"outlet_admin/internal/api/base/models"
	"outlet_admin/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse trả về envelope lỗi chuẩn {success:false, message, code}.
// Dùng được cả từ middleware và ErrorHandler của Fiber, không cần BaseHandler.
func ErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		body := fiber.Map{
			"success": false,
			"message": customErr.Message,
			"code":    customErr.Code.Code,
		}
		if customErr.Details != nil {
			body["details"] = fmt.Sprintf("%v", customErr.Details)
		}
		return JSONResponse(c, customErr.StatusCode, body)
	}
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"success": false,
		"message": err.Error(),
		"code":    common.ErrCodeInternalServer.Code,
	})
}

// SuccessResponse trả về envelope thành công {success:true, data?, message}
func SuccessResponse(c fiber.Ctx, data interface{}, message string) error {
	if message == "" {
		message = common.MsgSuccess
	}
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return JSONResponse(c, common.StatusOK, body)
}

// SafeHandler bọc handler với recover để server luôn trả về response, kể cả khi panic
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Thành công: {success:true, data, message}. Lỗi: {success:false, message, code}.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, data, "")
}

// HandlePaginatedResponse trả về envelope có total/pages cho kết quả phân trang.
// data là danh sách item của trang hiện tại, total/pages lấy từ PaginateResult.
func HandlePaginatedResponse[T any](c fiber.Ctx, result *models.PaginateResult[T], err error) error {
	if err != nil {
		return ErrorResponse(c, err)
	}
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"success": true,
		"message": common.MsgSuccess,
		"data":    result.Items,
		"total":   result.Total,
		"pages":   result.TotalPage,
	})
}
