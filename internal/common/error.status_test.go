package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("lớp ngoài: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is phải xuyên qua wrap")
	}
	if errors.Is(wrapped, ErrDuplicate) {
		t.Error("ErrNotFound không được khớp với ErrDuplicate")
	}
}

func TestErrorStatusCode(t *testing.T) {
	var appErr *Error
	if !errors.As(ErrNotAdmin, &appErr) {
		t.Fatal("ErrNotAdmin phải là *Error")
	}
	if appErr.StatusCode != StatusForbidden {
		t.Errorf("ErrNotAdmin phải là 403, got: %d", appErr.StatusCode)
	}
	if appErr.Code.Code != ErrCodeAuthRole.Code {
		t.Errorf("mã lỗi sai: %s", appErr.Code.Code)
	}
}

func TestConvertMongoErrorNil(t *testing.T) {
	if ConvertMongoError(nil) != nil {
		t.Error("nil phải trả về nil")
	}
}

func TestConvertMongoErrorKeepsNotFound(t *testing.T) {
	if !errors.Is(ConvertMongoError(ErrNotFound), ErrNotFound) {
		t.Error("ErrNotFound đã map sẵn phải được giữ nguyên")
	}
}

func TestConvertMongoErrorDuplicateKey(t *testing.T) {
	err := ConvertMongoError(mongo.WriteException{WriteErrors: mongo.WriteErrors{
		{Code: 11000, Message: "E11000 duplicate key"},
	}})
	if !errors.Is(err, ErrMongoDuplicate) {
		t.Errorf("duplicate key phải map sang ErrMongoDuplicate, got: %v", err)
	}
}

func TestConvertMongoErrorCommandError(t *testing.T) {
	err := ConvertMongoError(mongo.CommandError{Code: 150, Message: "host unreachable"})
	if !errors.Is(err, ErrMongoConnection) {
		t.Errorf("command error 1xx phải map sang ErrMongoConnection, got: %v", err)
	}
}

func TestConvertMongoErrorUnknown(t *testing.T) {
	err := ConvertMongoError(errors.New("lỗi lạ"))
	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatal("lỗi không nhận diện được vẫn phải bọc thành *Error")
	}
	if appErr.StatusCode != StatusInternalServerError {
		t.Errorf("lỗi không nhận diện được phải là 500, got: %d", appErr.StatusCode)
	}
}
