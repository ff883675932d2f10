package utility

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTransformTag(t *testing.T) {
	config, err := ParseTransformTag("str_objectid,required,map=CategoryID")
	if err != nil {
		t.Fatalf("ParseTransformTag lỗi: %v", err)
	}
	if config.Type != "str_objectid" {
		t.Errorf("Type sai: %s", config.Type)
	}
	if !config.Required {
		t.Error("thiếu flag required")
	}
	if config.MapTo != "CategoryID" {
		t.Errorf("MapTo sai: %s", config.MapTo)
	}
}

func TestParseTransformTagDefaults(t *testing.T) {
	config, err := ParseTransformTag("str_time,format=2006-01-02,default=2024-01-01,optional")
	if err != nil {
		t.Fatalf("ParseTransformTag lỗi: %v", err)
	}
	if config.Format != "2006-01-02" {
		t.Errorf("Format sai: %s", config.Format)
	}
	if config.Default != "2024-01-01" {
		t.Errorf("Default sai: %s", config.Default)
	}
	if !config.Optional {
		t.Error("thiếu flag optional")
	}

	// Tag rỗng: không transform
	empty, err := ParseTransformTag("")
	if err != nil {
		t.Fatalf("tag rỗng không được lỗi: %v", err)
	}
	if empty.Type != "" {
		t.Errorf("tag rỗng phải có Type rỗng, got: %s", empty.Type)
	}
}

func TestTransformFieldValueObjectID(t *testing.T) {
	hex := "64f0c1a2b3d4e5f6a7b8c9d0"
	config := &TransformTagConfig{Type: "str_objectid", Required: true}
	objIDType := reflect.TypeOf(primitive.ObjectID{})

	value, err := TransformFieldValue(hex, config, objIDType)
	if err != nil {
		t.Fatalf("TransformFieldValue lỗi: %v", err)
	}
	objID, ok := value.(primitive.ObjectID)
	if !ok {
		t.Fatalf("kết quả không phải ObjectID: %T", value)
	}
	if objID.Hex() != hex {
		t.Errorf("ObjectID sai: %s", objID.Hex())
	}

	if _, err := TransformFieldValue("không-phải-hex", config, objIDType); err == nil {
		t.Error("hex không hợp lệ phải lỗi")
	}
}

func TestTransformFieldValueRequiredEmpty(t *testing.T) {
	config := &TransformTagConfig{Type: "str_objectid", Required: true}
	objIDType := reflect.TypeOf(primitive.ObjectID{})

	if _, err := TransformFieldValue("", config, objIDType); err == nil {
		t.Error("required với giá trị rỗng phải lỗi")
	}
	if _, err := TransformFieldValue(nil, config, objIDType); err == nil {
		t.Error("required với nil phải lỗi")
	}
}

func TestTransformFieldValueOptionalEmpty(t *testing.T) {
	config := &TransformTagConfig{Type: "str_objectid_ptr", Optional: true}
	ptrType := reflect.TypeOf((*primitive.ObjectID)(nil))

	value, err := TransformFieldValue("", config, ptrType)
	if err != nil {
		t.Fatalf("optional với giá trị rỗng không được lỗi: %v", err)
	}
	if value != nil {
		t.Errorf("optional rỗng phải trả về nil, got: %v", value)
	}
}

func TestTransformFieldValueBoolAndInt64(t *testing.T) {
	boolConfig := &TransformTagConfig{Type: "str_bool"}
	value, err := TransformFieldValue("true", boolConfig, reflect.TypeOf(true))
	if err != nil {
		t.Fatalf("str_bool lỗi: %v", err)
	}
	if value != true {
		t.Errorf("str_bool sai: %v", value)
	}

	intConfig := &TransformTagConfig{Type: "str_int64"}
	value, err = TransformFieldValue("42", intConfig, reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("str_int64 lỗi: %v", err)
	}
	if value != int64(42) {
		t.Errorf("str_int64 sai: %v", value)
	}
}

func TestString2ObjectID(t *testing.T) {
	hex := "64f0c1a2b3d4e5f6a7b8c9d0"
	if String2ObjectID(hex).Hex() != hex {
		t.Error("round trip hex thất bại")
	}
	if !String2ObjectID("xxx").IsZero() {
		t.Error("chuỗi không hợp lệ phải trả về NilObjectID")
	}
}

func TestP2Int64(t *testing.T) {
	if P2Int64("123") != 123 {
		t.Error("parse số hợp lệ thất bại")
	}
	if P2Int64("abc") != 0 {
		t.Error("chuỗi không phải số phải trả về 0")
	}
	if P2Int64("") != 0 {
		t.Error("chuỗi rỗng phải trả về 0")
	}
}
