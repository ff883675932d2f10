// Package cataloghdl - handler cho domain catalog.
package cataloghdl

import (
	"fmt"

	basehdl "outlet_admin/internal/api/base/handler"
	catalogdto "outlet_admin/internal/api/catalog/dto"
	models "outlet_admin/internal/api/catalog/models"
	catalogsvc "outlet_admin/internal/api/catalog/service"

	"github.com/gofiber/fiber/v3"
)

// CategoryHandler xử lý các route /categories
type CategoryHandler struct {
	*basehdl.BaseHandler[models.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput]
}

// NewCategoryHandler tạo mới CategoryHandler
func NewCategoryHandler() (*CategoryHandler, error) {
	svc, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	return &CategoryHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput](svc),
	}, nil
}

// SubCategoryHandler xử lý các route /subcategories
type SubCategoryHandler struct {
	*basehdl.BaseHandler[models.SubCategory, catalogdto.SubCategoryCreateInput, catalogdto.SubCategoryUpdateInput]
	subCategoryService *catalogsvc.SubCategoryService
}

// NewSubCategoryHandler tạo mới SubCategoryHandler
func NewSubCategoryHandler() (*SubCategoryHandler, error) {
	svc, err := catalogsvc.NewSubCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create sub category service: %v", err)
	}
	return &SubCategoryHandler{
		BaseHandler:        basehdl.NewBaseHandler[models.SubCategory, catalogdto.SubCategoryCreateInput, catalogdto.SubCategoryUpdateInput](svc),
		subCategoryService: svc,
	}, nil
}

// FindByCategory xử lý GET /subcategories/category/:categoryId:
// danh sách danh mục con của một category (mảng rỗng khi chưa có con).
func (h *SubCategoryHandler) FindByCategory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		categoryID, err := h.ParseObjectID(c, "categoryId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		items, err := h.subCategoryService.FindByCategory(c.Context(), categoryID)
		h.HandleResponse(c, items, err)
		return nil
	})
}
