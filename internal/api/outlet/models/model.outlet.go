// Package models - các model thuộc domain outlet: OutletType và Outlet.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutletType là loại hình outlet, luôn thuộc về đúng một Category.
// Xóa outlet type bị chặn khi còn outlet đang gán loại này.
type OutletType struct {
	_Relationships struct{}           `relationship:"collection:outlets,field:outletTypeId,message:Không thể xóa loại outlet vì có %d outlet đang sử dụng. Vui lòng chuyển các outlet sang loại khác trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CategoryID     primitive.ObjectID `json:"categoryId" bson:"categoryId" index:"compound:category_type_name_unique"`
	Name           string             `json:"name" bson:"name" index:"compound:category_type_name_unique"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	DisplayOrder   int64              `json:"displayOrder" bson:"displayOrder" default:"1"`
	Active         bool               `json:"active" bson:"active" default:"true"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// Outlet là điểm bán do chủ outlet đăng ký từ kênh riêng.
// Admin chỉ xem/sửa/xóa, không tạo mới qua dashboard.
type Outlet struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string              `json:"name" bson:"name" index:"text"`
	OwnerName    string              `json:"ownerName,omitempty" bson:"ownerName,omitempty"`
	Phone        string              `json:"phone,omitempty" bson:"phone,omitempty" index:"single"`
	Address      string              `json:"address,omitempty" bson:"address,omitempty"`
	OutletTypeID *primitive.ObjectID `json:"outletTypeId,omitempty" bson:"outletTypeId,omitempty" index:"single"`
	Active       bool                `json:"active" bson:"active" default:"true"`
	CreatedAt    int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64               `json:"updatedAt" bson:"updatedAt"`
}
