package utility

import (
	"errors"
	"testing"

	"outlet_admin/internal/common"
)

const testSecret = "test-secret-key"

func TestCreateParseTokenRoundTrip(t *testing.T) {
	signed, err := CreateToken(testSecret, "64f0c1a2b3d4e5f6a7b8c9d0", TokenTypeAccess, 3600)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	if signed == "" {
		t.Fatal("CreateToken trả về chuỗi rỗng")
	}

	userID, tokenType, err := ParseToken(testSecret, signed)
	if err != nil {
		t.Fatalf("ParseToken lỗi: %v", err)
	}
	if userID != "64f0c1a2b3d4e5f6a7b8c9d0" {
		t.Errorf("userID sai: %s", userID)
	}
	if tokenType != TokenTypeAccess {
		t.Errorf("tokenType sai: %s", tokenType)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, err := CreateToken(testSecret, "u1", TokenTypeRefresh, 3600)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	_, _, err = ParseToken("secret-khác", signed)
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("sai secret phải trả về ErrTokenInvalid, got: %v", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	signed, err := CreateToken(testSecret, "u1", TokenTypeAccess, -10)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	_, _, err = ParseToken(testSecret, signed)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Errorf("token hết hạn phải trả về ErrTokenExpired, got: %v", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, _, err := ParseToken(testSecret, "không-phải-jwt"); !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("chuỗi rác phải trả về ErrTokenInvalid, got: %v", err)
	}
}
