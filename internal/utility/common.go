// Package utility chứa các hàm tiện ích dùng chung: bảo vệ goroutine,
// chuyển đổi định dạng, transform dữ liệu, token và mật khẩu.
package utility

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"outlet_admin/internal/common"
	"outlet_admin/internal/logger"
)

// GoProtect là một hàm bao bọc (wrapper) giúp bảo vệ một hàm khác khỏi bị panic.
// Nếu xảy ra panic trong hàm f(), GoProtect sẽ bắt lại và in ra lỗi thay vì làm chương trình dừng hẳn.
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Printf("Đã bắt lỗi panic: %v\n", err)
		}
	}()

	f()
}

// PrettyPrint in đẹp một interface dưới dạng JSON
func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}

// UnixMilli dùng để lấy mili giây của thời gian cho trước
func UnixMilli(t time.Time) int64 {
	return t.Round(time.Millisecond).UnixNano() / (int64(time.Millisecond) / int64(time.Nanosecond))
}

// CurrentTimeInMilli dùng để lấy thời gian hiện tại tính bằng mili giây
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}

// LogWarning ghi log cảnh báo với các cặp key/value bổ sung
func LogWarning(msg string, args ...interface{}) {
	fields := make(map[string]interface{})
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				fields[key] = args[i+1]
			}
		}
	}
	logger.GetAppLogger().WithFields(fields).Warn(msg)
}

// ValidateEmail kiểm tra định dạng email
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return common.ErrInvalidEmail
	}
	return nil
}
