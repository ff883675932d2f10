// Package dashboardhdl - handler thống kê tổng quan cho màn hình dashboard admin.
package dashboardhdl

import (
	"context"
	"fmt"

	authsvc "outlet_admin/internal/api/auth/service"
	basehdl "outlet_admin/internal/api/base/handler"
	catalogsvc "outlet_admin/internal/api/catalog/service"
	outletmodels "outlet_admin/internal/api/outlet/models"
	outletsvc "outlet_admin/internal/api/outlet/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DashboardStats là số liệu tổng quan hiển thị trên dashboard
type DashboardStats struct {
	TotalUsers         int64                 `json:"totalUsers"`
	TotalCategories    int64                 `json:"totalCategories"`
	TotalSubCategories int64                 `json:"totalSubCategories"`
	TotalOutletTypes   int64                 `json:"totalOutletTypes"`
	TotalOutlets       int64                 `json:"totalOutlets"`
	ActiveOutlets      int64                 `json:"activeOutlets"`
	RecentOutlets      []outletmodels.Outlet `json:"recentOutlets"`
}

// DashboardHandler xử lý GET /admin/dashboard/stats
type DashboardHandler struct {
	userService        *authsvc.UserService
	categoryService    *catalogsvc.CategoryService
	subCategoryService *catalogsvc.SubCategoryService
	outletTypeService  *outletsvc.OutletTypeService
	outletService      *outletsvc.OutletService
}

// NewDashboardHandler tạo mới DashboardHandler
func NewDashboardHandler() (*DashboardHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	categoryService, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	subCategoryService, err := catalogsvc.NewSubCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create sub category service: %v", err)
	}
	outletTypeService, err := outletsvc.NewOutletTypeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create outlet type service: %v", err)
	}
	outletService, err := outletsvc.NewOutletService()
	if err != nil {
		return nil, fmt.Errorf("failed to create outlet service: %v", err)
	}
	return &DashboardHandler{
		userService:        userService,
		categoryService:    categoryService,
		subCategoryService: subCategoryService,
		outletTypeService:  outletTypeService,
		outletService:      outletService,
	}, nil
}

// collectStats đếm trên từng collection và lấy 5 outlet mới nhất
func (h *DashboardHandler) collectStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{RecentOutlets: []outletmodels.Outlet{}}

	var err error
	if stats.TotalUsers, err = h.userService.CountDocuments(ctx, nil); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = h.categoryService.CountDocuments(ctx, nil); err != nil {
		return nil, err
	}
	if stats.TotalSubCategories, err = h.subCategoryService.CountDocuments(ctx, nil); err != nil {
		return nil, err
	}
	if stats.TotalOutletTypes, err = h.outletTypeService.CountDocuments(ctx, nil); err != nil {
		return nil, err
	}
	if stats.TotalOutlets, err = h.outletService.CountDocuments(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ActiveOutlets, err = h.outletService.CountDocuments(ctx, bson.M{"active": true}); err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5)
	recent, err := h.outletService.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	if recent != nil {
		stats.RecentOutlets = recent
	}
	return stats, nil
}

// Stats xử lý GET /admin/dashboard/stats
func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	stats, err := h.collectStats(c.Context())
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}
	return basehdl.SuccessResponse(c, stats, "")
}
