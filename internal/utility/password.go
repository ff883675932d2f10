package utility

import (
	"outlet_admin/internal/common"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword so sánh mật khẩu với hash đã lưu.
// Trả về ErrInvalidCredentials nếu không khớp.
func ComparePassword(hash string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}
