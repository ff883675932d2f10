// Package router đăng ký các route thuộc domain catalog:
// /categories (CRUD + cascade info) và /subcategories (CRUD + theo category).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "outlet_admin/internal/api/catalog/handler"
	"outlet_admin/internal/api/middleware"
	apirouter "outlet_admin/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("create category handler: %w", err)
	}
	subCategoryHandler, err := cataloghdl.NewSubCategoryHandler()
	if err != nil {
		return fmt.Errorf("create sub category handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	sessionChain := []fiber.Handler{authMiddleware}

	// Xóa category cần màn hình xác nhận phía client => có route cascade info.
	r.RegisterCRUDRoutes(v1, "/categories", categoryHandler, apirouter.ReadWriteCascadeConfig)

	// Route theo category phải đăng ký TRƯỚC CRUD chung để "/:id" không nuốt mất.
	apirouter.RegisterRouteWithMiddleware(v1, "/subcategories", "GET", "/category/:categoryId", sessionChain, subCategoryHandler.FindByCategory)
	r.RegisterCRUDRoutes(v1, "/subcategories", subCategoryHandler, apirouter.ReadWriteConfig)

	return nil
}
