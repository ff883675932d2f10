package main

import (
	"context"
	"time"

	authmodels "outlet_admin/internal/api/auth/models"
	authsvc "outlet_admin/internal/api/auth/service"
	catalogmodels "outlet_admin/internal/api/catalog/models"
	catalogsvc "outlet_admin/internal/api/catalog/service"
	outletmodels "outlet_admin/internal/api/outlet/models"
	outletsvc "outlet_admin/internal/api/outlet/service"
	"outlet_admin/internal/global"
	"outlet_admin/internal/logger"
	"outlet_admin/internal/utility"
)

// InitDefaultData khởi tạo dữ liệu mặc định: admin từ config và catalog mẫu
func InitDefaultData() {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := initAdminUser(ctx); err != nil {
		log.Fatalf("Failed to initialize admin user: %v", err)
	}
	if err := initSampleCatalog(ctx); err != nil {
		log.Warnf("Failed to initialize sample catalog: %v", err)
	}
}

// initAdminUser tạo admin mặc định từ config khi hệ thống chưa có user nào.
// Không cấu hình ADMIN_EMAIL/ADMIN_PASSWORD thì user đầu tiên đăng ký sẽ là admin.
func initAdminUser(ctx context.Context) error {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	userService, err := authsvc.NewUserService()
	if err != nil {
		return err
	}

	count, err := userService.CountDocuments(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD chưa cấu hình, user đầu tiên đăng ký sẽ trở thành admin")
		return nil
	}

	hash, err := utility.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := authmodels.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		Role:         authmodels.RoleAdmin,
		PasswordHash: hash,
	}
	created, err := userService.InsertOne(ctx, admin)
	if err != nil {
		return err
	}

	log.Infof("✅ [INIT] Đã tạo admin mặc định: %s (%s)", created.Email, created.ID.Hex())
	return nil
}

// initSampleCatalog tạo catalog mẫu khi database còn trống,
// giúp dashboard có dữ liệu để thao tác ngay sau lần chạy đầu.
func initSampleCatalog(ctx context.Context) error {
	log := logger.GetAppLogger()

	categoryService, err := catalogsvc.NewCategoryService()
	if err != nil {
		return err
	}
	subCategoryService, err := catalogsvc.NewSubCategoryService()
	if err != nil {
		return err
	}
	outletTypeService, err := outletsvc.NewOutletTypeService()
	if err != nil {
		return err
	}

	count, err := categoryService.CountDocuments(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		category      catalogmodels.Category
		subCategories []string
		outletTypes   []string
	}{
		{
			category:      catalogmodels.Category{Name: "Ăn uống", Description: "Quán ăn, nhà hàng, cà phê"},
			subCategories: []string{"Đồ uống", "Món chính"},
			outletTypes:   []string{"Quán cà phê", "Nhà hàng"},
		},
		{
			category:      catalogmodels.Category{Name: "Bán lẻ", Description: "Cửa hàng bán lẻ các loại"},
			subCategories: []string{"Tạp hóa", "Thời trang"},
			outletTypes:   []string{"Cửa hàng tiện lợi"},
		},
	}

	for _, sample := range samples {
		category, err := categoryService.InsertOne(ctx, sample.category)
		if err != nil {
			return err
		}
		for _, name := range sample.subCategories {
			if _, err := subCategoryService.InsertOne(ctx, catalogmodels.SubCategory{
				CategoryID: category.ID,
				Name:       name,
			}); err != nil {
				return err
			}
		}
		for i, name := range sample.outletTypes {
			if _, err := outletTypeService.InsertOne(ctx, outletmodels.OutletType{
				CategoryID:   category.ID,
				Name:         name,
				DisplayOrder: int64(i + 1),
			}); err != nil {
				return err
			}
		}
	}

	log.Info("✅ [INIT] Đã tạo catalog mẫu")
	return nil
}
