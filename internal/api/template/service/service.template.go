// Package templatesvc - service cho domain template.
package templatesvc

import (
	"fmt"

	basesvc "outlet_admin/internal/api/base/service"
	models "outlet_admin/internal/api/template/models"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"
)

// TemplateService quản lý metadata template
type TemplateService struct {
	*basesvc.BaseServiceMongoImpl[models.Template]
}

// NewTemplateService tạo mới TemplateService
func NewTemplateService() (*TemplateService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Templates)
	if !exist {
		return nil, fmt.Errorf("failed to get templates collection: %v", common.ErrNotFound)
	}
	return &TemplateService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Template](col),
	}, nil
}
