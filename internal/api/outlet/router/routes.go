// Package router đăng ký các route thuộc domain outlet:
// /outlet-types (CRUD + stats + theo category) và /outlets (chỉ quản trị, không tạo).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"outlet_admin/internal/api/middleware"
	outlethdl "outlet_admin/internal/api/outlet/handler"
	apirouter "outlet_admin/internal/api/router"
)

// Register đăng ký tất cả route outlet lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	outletTypeHandler, err := outlethdl.NewOutletTypeHandler()
	if err != nil {
		return fmt.Errorf("create outlet type handler: %w", err)
	}
	outletHandler, err := outlethdl.NewOutletHandler()
	if err != nil {
		return fmt.Errorf("create outlet handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	sessionChain := []fiber.Handler{authMiddleware}

	// Route tĩnh đăng ký TRƯỚC CRUD chung để "/:id" không nuốt mất.
	apirouter.RegisterRouteWithMiddleware(v1, "/outlet-types", "GET", "/stats", sessionChain, outletTypeHandler.Stats)
	apirouter.RegisterRouteWithMiddleware(v1, "/outlet-types", "GET", "/category/:categoryId", sessionChain, outletTypeHandler.FindByCategory)
	r.RegisterCRUDRoutes(v1, "/outlet-types", outletTypeHandler, apirouter.ReadWriteConfig)

	// Outlet: không có POST — đăng ký từ kênh riêng, dashboard chỉ xem/sửa/xóa.
	r.RegisterCRUDRoutes(v1, "/outlets", outletHandler, apirouter.PagedNoCreateConfig)

	return nil
}
