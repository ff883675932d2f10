package basehdl

import (
	"fmt"
	"reflect"
	"strings"

	basesvc "outlet_admin/internal/api/base/service"
	"outlet_admin/internal/common"
	"outlet_admin/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// logAudit ghi audit log cho một thao tác ghi thành công trên resource.
// Tên resource lấy từ tên type của Model (ví dụ: Category → "category_create").
func (h *BaseHandler[T, CreateInput, UpdateInput]) logAudit(c fiber.Ctx, action string, resourceID string) {
	resource := strings.ToLower(reflect.TypeOf(*new(T)).Name())
	logger.LogAction(resource+"_"+action, c, map[string]interface{}{
		"resource_type": resource,
		"resource_id":   resourceID,
	})
}

// InsertOne thêm mới một document vào database.
// Dữ liệu được parse từ request body (DTO CreateInput), validate bằng struct tag
// và transform sang Model (struct tag `transform`) trước khi thêm vào DB.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Lỗi transform dữ liệu: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		if err == nil {
			h.logAudit(c, "create", "")
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Find tìm nhiều document theo filter (query string, JSON). Luôn trả về mảng.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts, err := h.ProcessFindOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Find(c.Context(), filter, opts)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if data == nil {
			data = []T{}
		}
		h.HandleResponse(c, data, nil)
		return nil
	})
}

// FindOneById tìm một document theo ID trong URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneById(c.Context(), id)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination tìm nhiều document với phân trang (?page=&limit=).
// Response có total và pages theo envelope phân trang.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts, err := h.ProcessFindOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		result, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, opts)
		return HandlePaginatedResponse(c, result, err)
	})
}

// UpdateById cập nhật một document theo ID.
// Chỉ update các trường non-zero có trong input (partial update), giữ nguyên các trường khác.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu cập nhật không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Lỗi transform dữ liệu: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		set, err := ModelToSetMap(model)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi convert model sang map: %v", err),
				common.StatusInternalServerError,
				err,
			))
			return nil
		}
		// ModelToSetMap bỏ qua giá trị zero nên bool false bị rơi mất;
		// lấy lại các field bool trực tiếp từ body để client tắt/bật được cờ active.
		h.applyBodyBoolFields(c, set)

		data, err := h.BaseService.UpdateById(c.Context(), id, &basesvc.UpdateData{Set: set})
		if err == nil {
			h.logAudit(c, "update", id.Hex())
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DeleteById xóa một document theo ID.
// Quan hệ chặn trả về 409 kèm số lượng record đang tham chiếu; quan hệ cascade
// xóa con trước khi xóa cha (xem base service).
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.BaseService.DeleteById(c.Context(), id)
		if err == nil {
			h.logAudit(c, "delete", id.Hex())
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// CountDocuments đếm số document theo filter (query string, JSON)
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// CascadeInfo trả về số bản ghi con sẽ bị xóa theo nếu xóa document id.
// Client dùng cho màn hình xác nhận xóa (cảnh báo xóa sub-category theo category).
func (h *BaseHandler[T, CreateInput, UpdateInput]) CascadeInfo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		counts, err := h.BaseService.CountCascadeChildren(c.Context(), id)
		h.HandleResponse(c, counts, err)
		return nil
	})
}
