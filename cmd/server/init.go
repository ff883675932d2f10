package main

import (
	"context"

	"outlet_admin/config"
	authmodels "outlet_admin/internal/api/auth/models"
	catalogmodels "outlet_admin/internal/api/catalog/models"
	outletmodels "outlet_admin/internal/api/outlet/models"
	templatemodels "outlet_admin/internal/api/template/models"
	"outlet_admin/internal/database"
	"outlet_admin/internal/global"

	"github.com/sirupsen/logrus"
)

// serverConfig trả về cấu hình server hiện tại
func serverConfig() *config.Configuration {
	return global.MongoDB_ServerConfig
}

// InitGlobal khởi tạo các biến toàn cục của ứng dụng
func InitGlobal() {
	initColNames()         // Tên các collection trong database
	initValidator()        // Validator với các rule custom
	initConfig()           // Cấu hình server từ env
	initDatabase_MongoDB() // Kết nối database + index
}

// initColNames khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Categories = "categories"
	global.MongoDB_ColNames.SubCategories = "sub_categories"
	global.MongoDB_ColNames.OutletTypes = "outlet_types"
	global.MongoDB_ColNames.Outlets = "outlets"
	global.MongoDB_ColNames.Templates = "templates"

	logrus.Info("Initialized collection names")
}

// initValidator khởi tạo validator (đăng ký custom validators: no_xss, strong_password, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB khởi tạo kết nối database, đảm bảo collection và index
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Auth
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Categories), catalogmodels.Category{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.SubCategories), catalogmodels.SubCategory{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.OutletTypes), outletmodels.OutletType{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Outlets), outletmodels.Outlet{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Templates), templatemodels.Template{})
}
