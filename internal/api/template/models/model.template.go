// Package models - model Template: metadata file mẫu (import/export) của hệ thống.
// Nội dung file lưu ở storage ngoài; hệ thống chỉ giữ metadata.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại template được hỗ trợ
const (
	TemplateKindImport = "import"
	TemplateKindExport = "export"
	TemplateKindReport = "report"
)

// Template là metadata của một file mẫu
type Template struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" index:"unique"`
	Kind       string             `json:"kind" bson:"kind" index:"single" default:"import"`
	FileName   string             `json:"fileName" bson:"fileName"`
	Size       int64              `json:"size,omitempty" bson:"size,omitempty"`
	UploadedBy primitive.ObjectID `json:"uploadedBy,omitempty" bson:"uploadedBy,omitempty"`
	Active     bool               `json:"active" bson:"active" default:"true"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
