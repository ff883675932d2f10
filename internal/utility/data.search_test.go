package utility

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilterEmpty(t *testing.T) {
	filter := BuildSearchFilter("", "name", "phone")
	if len(filter) != 0 {
		t.Errorf("search rỗng phải trả về filter rỗng, nhận %v", filter)
	}
}

func TestBuildSearchFilterFields(t *testing.T) {
	filter := BuildSearchFilter("quán", "name", "phone")

	conditions, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("filter phải có $or là []bson.M, nhận %v", filter)
	}
	if len(conditions) != 2 {
		t.Fatalf("phải có 2 điều kiện cho 2 field, nhận %d", len(conditions))
	}

	nameCond, ok := conditions[0]["name"].(bson.M)
	if !ok {
		t.Fatalf("điều kiện đầu phải trên field name, nhận %v", conditions[0])
	}
	if nameCond["$regex"] != "quán" {
		t.Errorf("$regex = %v, muốn 'quán'", nameCond["$regex"])
	}
	if nameCond["$options"] != "i" {
		t.Errorf("$options = %v, muốn 'i' (không phân biệt hoa thường)", nameCond["$options"])
	}
}

func TestBuildSearchFilterEscapesRegexMeta(t *testing.T) {
	// Ký tự regex trong chuỗi người dùng nhập phải được escape,
	// ".*" là tìm đúng chuỗi ".*" chứ không phải match tất cả
	filter := BuildSearchFilter("a.*(b)", "name")

	conditions := filter["$or"].([]bson.M)
	nameCond := conditions[0]["name"].(bson.M)
	got := nameCond["$regex"].(string)
	want := `a\.\*\(b\)`
	if got != want {
		t.Errorf("$regex = %q, muốn %q", got, want)
	}
}
