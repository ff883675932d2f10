package basesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateDataFromStruct(t *testing.T) {
	type doc struct {
		Name   string `bson:"name"`
		Active bool   `bson:"active"`
	}

	update, err := ToUpdateData(doc{Name: "Ăn uống", Active: true})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update.Set == nil {
		t.Fatal("struct phải được đưa vào $set")
	}
	if update.Set["name"] != "Ăn uống" {
		t.Errorf("$set.name sai: %v", update.Set["name"])
	}
}

func TestToUpdateDataFromPlainMap(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"name": "Bán lẻ",
		"_id":  "phải-bị-loại",
	})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update.Set["name"] != "Bán lẻ" {
		t.Errorf("$set.name sai: %v", update.Set["name"])
	}
	if _, ok := update.Set["_id"]; ok {
		t.Error("_id không được xuất hiện trong $set")
	}
}

func TestToUpdateDataFromOperatorMap(t *testing.T) {
	update, err := ToUpdateData(bson.M{
		"$set":   bson.M{"name": "Bán lẻ"},
		"$unset": bson.M{"description": ""},
	})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update.Set["name"] != "Bán lẻ" {
		t.Errorf("$set.name sai: %v", update.Set["name"])
	}
	if update.Unset == nil {
		t.Error("thiếu $unset")
	}
}

func TestToUpdateDataUnsupportedOperator(t *testing.T) {
	if _, err := ToUpdateData(bson.M{"$rename": bson.M{"a": "b"}}); err == nil {
		t.Error("toán tử chưa hỗ trợ phải trả về lỗi")
	}
	if _, err := ToUpdateData(bson.M{"$set": "không-phải-map"}); err == nil {
		t.Error("giá trị toán tử không phải map phải trả về lỗi")
	}
}

func TestToUpdateDataNil(t *testing.T) {
	update, err := ToUpdateData(nil)
	if err != nil {
		t.Fatalf("nil không được lỗi: %v", err)
	}
	if update == nil || update.Set != nil {
		t.Error("nil phải trả về UpdateData rỗng")
	}
}
