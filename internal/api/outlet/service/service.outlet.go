// Package outletsvc - service cho domain outlet (OutletType, Outlet).
package outletsvc

import (
	"context"
	"fmt"

	basesvc "outlet_admin/internal/api/base/service"
	models "outlet_admin/internal/api/outlet/models"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutletTypeService quản lý loại outlet
type OutletTypeService struct {
	*basesvc.BaseServiceMongoImpl[models.OutletType]
	collection *mongo.Collection
}

// NewOutletTypeService tạo mới OutletTypeService
func NewOutletTypeService() (*OutletTypeService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OutletTypes)
	if !exist {
		return nil, fmt.Errorf("failed to get outlet_types collection: %v", common.ErrNotFound)
	}
	return &OutletTypeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.OutletType](col),
		collection:           col,
	}, nil
}

// FindByCategory trả về các loại outlet thuộc một category,
// sort theo displayOrder rồi tới tên.
func (s *OutletTypeService) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.OutletType, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "name", Value: 1},
	})
	items, err := s.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.OutletType{}
	}
	return items, nil
}

// CategoryTypeCount là số loại outlet theo từng category (kèm tên category)
type CategoryTypeCount struct {
	CategoryID   primitive.ObjectID `json:"categoryId" bson:"_id"`
	CategoryName string             `json:"categoryName" bson:"categoryName"`
	Count        int64              `json:"count" bson:"count"`
}

// OutletTypeStats là thống kê tổng quan về loại outlet
type OutletTypeStats struct {
	Total       int64               `json:"total"`
	Active      int64               `json:"active"`
	PerCategory []CategoryTypeCount `json:"perCategory"`
}

// Stats tính thống kê loại outlet: tổng số, số đang active
// và phân bố theo category (join tên category qua $lookup).
func (s *OutletTypeService) Stats(ctx context.Context) (*OutletTypeStats, error) {
	total, err := s.CountDocuments(ctx, nil)
	if err != nil {
		return nil, err
	}
	active, err := s.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$categoryId",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Categories,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"categoryName": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$category.name", 0}},
				"",
			}},
		}}},
		{{Key: "$project", Value: bson.M{"category": 0}}},
		{{Key: "$sort", Value: bson.M{"categoryName": 1}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	perCategory := []CategoryTypeCount{}
	if err := cursor.All(ctx, &perCategory); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return &OutletTypeStats{
		Total:       total,
		Active:      active,
		PerCategory: perCategory,
	}, nil
}

// OutletService quản lý outlet (chỉ xem/sửa/xóa qua dashboard)
type OutletService struct {
	*basesvc.BaseServiceMongoImpl[models.Outlet]
}

// NewOutletService tạo mới OutletService
func NewOutletService() (*OutletService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Outlets)
	if !exist {
		return nil, fmt.Errorf("failed to get outlets collection: %v", common.ErrNotFound)
	}
	return &OutletService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Outlet](col),
	}, nil
}
