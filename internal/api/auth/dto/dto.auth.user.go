// Package authdto - các DTO đầu vào của domain auth.
package authdto

// LoginInput đầu vào đăng nhập bằng email + mật khẩu.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput đầu vào đăng ký người dùng mới.
// Người dùng đầu tiên của hệ thống được gán role admin.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

// RefreshInput đầu vào cấp lại access token từ refresh token.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UserUpdateInput đầu vào cập nhật người dùng (admin).
type UserUpdateInput struct {
	Name string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Role string `json:"role,omitempty" validate:"omitempty,oneof=admin staff"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Note string `json:"note" validate:"required"`
}
