// Package outlethdl - handler cho domain outlet.
package outlethdl

import (
	"fmt"

	basehdl "outlet_admin/internal/api/base/handler"
	outletdto "outlet_admin/internal/api/outlet/dto"
	models "outlet_admin/internal/api/outlet/models"
	outletsvc "outlet_admin/internal/api/outlet/service"
	"outlet_admin/internal/common"
	"outlet_admin/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutletTypeHandler xử lý các route /outlet-types
type OutletTypeHandler struct {
	*basehdl.BaseHandler[models.OutletType, outletdto.OutletTypeCreateInput, outletdto.OutletTypeUpdateInput]
	outletTypeService *outletsvc.OutletTypeService
}

// NewOutletTypeHandler tạo mới OutletTypeHandler
func NewOutletTypeHandler() (*OutletTypeHandler, error) {
	svc, err := outletsvc.NewOutletTypeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create outlet type service: %v", err)
	}
	return &OutletTypeHandler{
		BaseHandler:       basehdl.NewBaseHandler[models.OutletType, outletdto.OutletTypeCreateInput, outletdto.OutletTypeUpdateInput](svc),
		outletTypeService: svc,
	}, nil
}

// Find xử lý GET /outlet-types?categoryId=: danh sách loại outlet.
// categoryId rỗng hoặc "all" trả về toàn bộ; ObjectID hợp lệ lọc theo category;
// giá trị khác trả về 400.
func (h *OutletTypeHandler) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		categoryID := c.Query("categoryId", "")
		if categoryID == "" || categoryID == "all" {
			items, err := h.BaseService.Find(c.Context(), bson.M{}, nil)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			if items == nil {
				items = []models.OutletType{}
			}
			h.HandleResponse(c, items, nil)
			return nil
		}

		if !primitive.IsValidObjectID(categoryID) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("categoryId '%s' không hợp lệ (phải là ObjectID hoặc 'all')", categoryID),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		objID, _ := primitive.ObjectIDFromHex(categoryID)
		items, err := h.outletTypeService.FindByCategory(c.Context(), objID)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// FindByCategory xử lý GET /outlet-types/category/:categoryId
func (h *OutletTypeHandler) FindByCategory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		categoryID, err := h.ParseObjectID(c, "categoryId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		items, err := h.outletTypeService.FindByCategory(c.Context(), categoryID)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// Stats xử lý GET /outlet-types/stats: tổng số, số active và phân bố theo category
func (h *OutletTypeHandler) Stats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		stats, err := h.outletTypeService.Stats(c.Context())
		h.HandleResponse(c, stats, err)
		return nil
	})
}

// OutletHandler xử lý các route /outlets.
// Không có InsertOne: outlet đăng ký từ kênh riêng, dashboard chỉ quản trị.
type OutletHandler struct {
	*basehdl.BaseHandler[models.Outlet, struct{}, outletdto.OutletUpdateInput]
}

// NewOutletHandler tạo mới OutletHandler
func NewOutletHandler() (*OutletHandler, error) {
	svc, err := outletsvc.NewOutletService()
	if err != nil {
		return nil, fmt.Errorf("failed to create outlet service: %v", err)
	}
	return &OutletHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Outlet, struct{}, outletdto.OutletUpdateInput](svc),
	}, nil
}

// FindWithPagination xử lý GET /outlets?page=&limit=&search=: danh sách outlet
// phân trang, search khớp name hoặc phone (regex, không phân biệt hoa thường).
func (h *OutletHandler) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter := utility.BuildSearchFilter(c.Query("search", ""), "name", "phone")

		page, limit := h.ParsePagination(c)
		result, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, nil)
		return basehdl.HandlePaginatedResponse(c, result, err)
	})
}
