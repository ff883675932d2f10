// Package router đăng ký các route thuộc domain auth: phiên đăng nhập (/auth)
// và quản trị người dùng (/users).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "outlet_admin/internal/api/auth/handler"
	"outlet_admin/internal/api/middleware"
	apirouter "outlet_admin/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("create auth handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.RequireAdmin()

	// Route công khai (không cần token)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, authHandler.Login)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/register", nil, authHandler.Register)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/refresh", nil, authHandler.Refresh)

	// Route cần phiên đăng nhập
	sessionChain := []fiber.Handler{authMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout", sessionChain, authHandler.Logout)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me", sessionChain, authHandler.Me)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/verify-admin", sessionChain, authHandler.VerifyAdmin)

	// Quản trị người dùng — chỉ admin được mutation, list có search + phân trang.
	// Route tĩnh/đặc thù đăng ký trước "/:id".
	adminChain := []fiber.Handler{authMiddleware, adminMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "", sessionChain, authHandler.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/:id/block", adminChain, authHandler.Block)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/:id/unblock", adminChain, authHandler.UnBlock)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:id", sessionChain, authHandler.FindOneById)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/:id", adminChain, authHandler.UpdateById)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "DELETE", "/:id", adminChain, authHandler.DeleteById)

	return nil
}
