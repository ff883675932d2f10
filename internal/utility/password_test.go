package utility

import (
	"errors"
	"testing"

	"outlet_admin/internal/common"
)

func TestHashComparePassword(t *testing.T) {
	hash, err := HashPassword("matkhau123")
	if err != nil {
		t.Fatalf("HashPassword lỗi: %v", err)
	}
	if hash == "matkhau123" {
		t.Fatal("hash không được trùng với mật khẩu gốc")
	}

	if err := ComparePassword(hash, "matkhau123"); err != nil {
		t.Errorf("mật khẩu đúng phải khớp: %v", err)
	}
	if err := ComparePassword(hash, "saimatkhau"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Errorf("mật khẩu sai phải trả về ErrInvalidCredentials, got: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("admin@example.com"); err != nil {
		t.Errorf("email hợp lệ bị từ chối: %v", err)
	}
	for _, email := range []string{"", "khong-phai-email", "a@b", "@example.com"} {
		if err := ValidateEmail(email); !errors.Is(err, common.ErrInvalidEmail) {
			t.Errorf("email %q phải bị từ chối", email)
		}
	}
}
