package basesvc

import (
	"reflect"
	"strings"
	"testing"

	catalogmodels "outlet_admin/internal/api/catalog/models"
)

func TestParseRelationshipTagCategory(t *testing.T) {
	relationships := ParseRelationshipTag(reflect.TypeOf(catalogmodels.Category{}))
	if len(relationships) != 2 {
		t.Fatalf("Category phải có 2 quan hệ, got: %d", len(relationships))
	}

	byCollection := map[string]RelationshipDefinition{}
	for _, rel := range relationships {
		byCollection[rel.CollectionName] = rel
	}

	subs, ok := byCollection["sub_categories"]
	if !ok {
		t.Fatal("thiếu quan hệ tới sub_categories")
	}
	if !subs.Cascade {
		t.Error("quan hệ sub_categories phải là cascade")
	}
	if subs.FieldName != "categoryId" {
		t.Errorf("FieldName sai: %s", subs.FieldName)
	}

	types, ok := byCollection["outlet_types"]
	if !ok {
		t.Fatal("thiếu quan hệ tới outlet_types")
	}
	if types.Cascade {
		t.Error("quan hệ outlet_types phải chặn xóa, không cascade")
	}
	if !strings.Contains(types.ErrorMessage, "%d") {
		t.Errorf("message phải chứa placeholder %%d: %s", types.ErrorMessage)
	}
}

func TestParseRelationshipTagValue(t *testing.T) {
	type withTags struct {
		_Relationships struct{} `relationship:"collection:outlets,field:outletTypeId,optional:true|collection:orders,field:typeId,cascade:1,msg:Còn %d đơn"`
	}

	relationships := ParseRelationshipTag(reflect.TypeOf(withTags{}))
	if len(relationships) != 2 {
		t.Fatalf("phải parse được 2 quan hệ, got: %d", len(relationships))
	}
	if !relationships[0].Optional {
		t.Error("optional:true không được parse")
	}
	if !relationships[1].Cascade {
		t.Error("cascade:1 phải được hiểu là true")
	}
	if relationships[1].ErrorMessage != "Còn %d đơn" {
		t.Errorf("msg alias không được parse: %s", relationships[1].ErrorMessage)
	}
}

func TestParseRelationshipTagIncomplete(t *testing.T) {
	type missing struct {
		_Relationships struct{} `relationship:"collection:outlets"`
	}
	if got := ParseRelationshipTag(reflect.TypeOf(missing{})); len(got) != 0 {
		t.Errorf("quan hệ thiếu field phải bị bỏ qua, got: %d", len(got))
	}

	type none struct {
		Name string
	}
	if got := ParseRelationshipTag(reflect.TypeOf(none{})); len(got) != 0 {
		t.Errorf("struct không có tag phải trả về rỗng, got: %d", len(got))
	}
}

func TestParseRelationshipTagDefaultMessage(t *testing.T) {
	type noMessage struct {
		_Relationships struct{} `relationship:"collection:outlets,field:outletTypeId"`
	}
	relationships := ParseRelationshipTag(reflect.TypeOf(noMessage{}))
	if len(relationships) != 1 {
		t.Fatalf("phải parse được 1 quan hệ, got: %d", len(relationships))
	}
	if !strings.Contains(relationships[0].ErrorMessage, "outlets") {
		t.Errorf("message mặc định phải nêu tên collection: %s", relationships[0].ErrorMessage)
	}
}
