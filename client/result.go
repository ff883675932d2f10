// Package client là SDK phía dashboard: transport, phiên đăng nhập,
// service theo collection và state machine cho màn hình quản lý danh mục.
package client

import "fmt"

// Result là kết quả có phân nhánh Ok/Err của một lời gọi service.
// Mọi call site phải kiểm tra IsOk() trước khi dùng Data().
type Result[T any] struct {
	ok      bool
	data    T
	message string
}

// Ok tạo Result thành công kèm dữ liệu
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Err tạo Result thất bại kèm thông điệp lỗi
func Err[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// Errf tạo Result thất bại với thông điệp định dạng
func Errf[T any](format string, args ...interface{}) Result[T] {
	return Result[T]{message: fmt.Sprintf(format, args...)}
}

// IsOk cho biết lời gọi có thành công hay không
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Data trả về dữ liệu khi thành công (zero value khi thất bại)
func (r Result[T]) Data() T {
	return r.data
}

// Message trả về thông điệp lỗi khi thất bại
func (r Result[T]) Message() string {
	return r.message
}
