// Package router đăng ký các route thuộc domain template: /templates.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "outlet_admin/internal/api/router"
	templatehdl "outlet_admin/internal/api/template/handler"
)

// Register đăng ký route template lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	templateHandler, err := templatehdl.NewTemplateHandler()
	if err != nil {
		return fmt.Errorf("create template handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/templates", templateHandler, apirouter.ReadWriteConfig)
	return nil
}
