// Package models - các model thuộc domain catalog: Category và SubCategory.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category là danh mục gốc của cây phân loại.
// Xóa category sẽ xóa theo toàn bộ sub-category trực thuộc (cascade).
type Category struct {
	_Relationships struct{}           `relationship:"collection:sub_categories,field:categoryId,cascade:true|collection:outlet_types,field:categoryId,message:Không thể xóa danh mục vì có %d loại outlet đang tham chiếu tới. Vui lòng xóa hoặc chuyển các loại outlet trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"unique"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Active         bool               `json:"active" bson:"active" default:"true"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// SubCategory là danh mục con, luôn thuộc về đúng một Category.
type SubCategory struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CategoryID  primitive.ObjectID `json:"categoryId" bson:"categoryId" index:"compound:category_name_unique"`
	Name        string             `json:"name" bson:"name" index:"compound:category_name_unique"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Active      bool               `json:"active" bson:"active" default:"true"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
