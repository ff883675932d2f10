package main

import (
	"outlet_admin/config"
	"outlet_admin/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry đăng ký các collection vào registry toàn cục
func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName_Auth)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.SubCategories,
		global.MongoDB_ColNames.OutletTypes,
		global.MongoDB_ColNames.Outlets,
		global.MongoDB_ColNames.Templates,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Warnf("Collection %s already registered", name)
		}
	}

	return nil
}
