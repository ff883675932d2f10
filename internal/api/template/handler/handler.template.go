// Package templatehdl - handler cho domain template.
package templatehdl

import (
	"fmt"

	basehdl "outlet_admin/internal/api/base/handler"
	templatedto "outlet_admin/internal/api/template/dto"
	models "outlet_admin/internal/api/template/models"
	templatesvc "outlet_admin/internal/api/template/service"
	"outlet_admin/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// TemplateHandler xử lý các route /templates
type TemplateHandler struct {
	*basehdl.BaseHandler[models.Template, templatedto.TemplateCreateInput, templatedto.TemplateUpdateInput]
}

// NewTemplateHandler tạo mới TemplateHandler
func NewTemplateHandler() (*TemplateHandler, error) {
	svc, err := templatesvc.NewTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create template service: %v", err)
	}
	return &TemplateHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Template, templatedto.TemplateCreateInput, templatedto.TemplateUpdateInput](svc),
	}, nil
}

// InsertOne ghi thêm người upload (user của phiên hiện tại) vào metadata
func (h *TemplateHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input templatedto.TemplateCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if userID, ok := c.Locals("userID").(string); ok && userID != "" {
			model.UploadedBy = utility.String2ObjectID(userID)
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}
