// Package catalogsvc - service cho domain catalog (Category, SubCategory).
package catalogsvc

import (
	"context"
	"fmt"

	basesvc "outlet_admin/internal/api/base/service"
	models "outlet_admin/internal/api/catalog/models"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryService quản lý danh mục gốc
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Category]
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Category](col),
	}, nil
}

// SubCategoryService quản lý danh mục con
type SubCategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.SubCategory]
}

// NewSubCategoryService tạo mới SubCategoryService
func NewSubCategoryService() (*SubCategoryService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SubCategories)
	if !exist {
		return nil, fmt.Errorf("failed to get sub_categories collection: %v", common.ErrNotFound)
	}
	return &SubCategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.SubCategory](col),
	}, nil
}

// FindByCategory trả về toàn bộ danh mục con thuộc một category, sort theo tên.
// Category không có con trả về mảng rỗng (không lỗi).
func (s *SubCategoryService) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.SubCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	items, err := s.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.SubCategory{}
	}
	return items, nil
}
