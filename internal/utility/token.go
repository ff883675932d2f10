package utility

import (
	"fmt"
	"time"

	"outlet_admin/internal/common"

	"github.com/dgrijalva/jwt-go"
)

// Các loại token được phát hành
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// CreateToken tạo JWT token (HS256) cho userID với loại và thời gian sống cho trước.
func CreateToken(secret string, userID string, tokenType string, ttlSeconds int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"type":   tokenType,
		"iat":    now.Unix(),
		"exp":    now.Add(time.Duration(ttlSeconds) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("không thể ký token: %w", err)
	}
	return signed, nil
}

// ParseToken xác thực chữ ký và hạn của token, trả về userID và loại token.
func ParseToken(secret string, tokenString string) (userID string, tokenType string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không hợp lệ: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", "", common.ErrTokenExpired
		}
		return "", "", common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", common.ErrTokenInvalid
	}

	userID, _ = claims["userId"].(string)
	tokenType, _ = claims["type"].(string)
	if userID == "" {
		return "", "", common.ErrTokenInvalid
	}

	return userID, tokenType, nil
}
