// Package router đăng ký route dashboard: /admin/dashboard/stats.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	dashboardhdl "outlet_admin/internal/api/dashboard/handler"
	"outlet_admin/internal/api/middleware"
	apirouter "outlet_admin/internal/api/router"
)

// Register đăng ký route dashboard lên v1. Chỉ admin được xem thống kê.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	dashboardHandler, err := dashboardhdl.NewDashboardHandler()
	if err != nil {
		return fmt.Errorf("create dashboard handler: %w", err)
	}

	adminChain := []fiber.Handler{middleware.AuthMiddleware(), middleware.RequireAdmin()}
	apirouter.RegisterRouteWithMiddleware(v1, "/admin", "GET", "/dashboard/stats", adminChain, dashboardHandler.Stats)

	return nil
}
