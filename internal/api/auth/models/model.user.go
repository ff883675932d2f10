// Package models - model người dùng quản trị (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role của người dùng quản trị
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User định nghĩa mô hình người dùng quản trị.
// Token chứa access token mới nhất; RefreshToken chứa refresh token còn hiệu lực.
// Tokens giữ các access token cũ chưa hết hạn (đăng nhập từ nhiều thiết bị).
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	Role         string             `json:"role" bson:"role" default:"staff"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Token        string             `json:"-" bson:"token,omitempty"`
	RefreshToken string             `json:"-" bson:"refreshToken,omitempty"`
	Tokens       []Token            `json:"-" bson:"tokens,omitempty"`
	IsBlock      bool               `json:"-" bson:"isBlock"`
	BlockNote    string             `json:"-" bson:"blockNote,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// Token là một access token đã phát hành cho user (mỗi lần đăng nhập một bản ghi)
type Token struct {
	JwtToken string `json:"jwtToken,omitempty" bson:"jwtToken,omitempty"`
	IssuedAt int64  `json:"issuedAt" bson:"issuedAt"`
}
