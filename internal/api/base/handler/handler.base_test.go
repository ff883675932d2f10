package basehdl

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestModelToSetMapSkipsZeroValues(t *testing.T) {
	type doc struct {
		ID          primitive.ObjectID `bson:"_id,omitempty"`
		Name        string             `bson:"name"`
		Description string             `bson:"description,omitempty"`
		Active      bool               `bson:"active"`
		CreatedAt   int64              `bson:"createdAt"`
	}

	set, err := ModelToSetMap(doc{ID: primitive.NewObjectID(), Name: "Ăn uống"})
	if err != nil {
		t.Fatalf("ModelToSetMap lỗi: %v", err)
	}

	if set["name"] != "Ăn uống" {
		t.Errorf("$set.name sai: %v", set["name"])
	}
	if _, ok := set["_id"]; ok {
		t.Error("_id không được xuất hiện trong $set")
	}
	if _, ok := set["createdAt"]; ok {
		t.Error("giá trị zero phải bị bỏ qua (partial update)")
	}
	// Bool false là zero value nên cũng bị bỏ — applyBodyBoolFields bù lại từ body
	if _, ok := set["active"]; ok {
		t.Error("bool false phải bị bỏ qua ở bước này")
	}
}

func TestParseSortMap(t *testing.T) {
	// Số từ JSON decode là float64; giá trị ngoài 1/-1 hoặc không phải số bị bỏ qua
	sort := parseSortMap(map[string]interface{}{
		"displayOrder": float64(1),
		"createdAt":    float64(-1),
		"name":         float64(5),
		"active":       "1",
	})

	if len(sort) != 2 {
		t.Fatalf("chỉ 2 field hợp lệ được giữ lại, got: %d", len(sort))
	}
	for _, e := range sort {
		switch e.Key {
		case "displayOrder":
			if e.Value != 1 {
				t.Errorf("displayOrder phải là 1, got: %v", e.Value)
			}
		case "createdAt":
			if e.Value != -1 {
				t.Errorf("createdAt phải là -1, got: %v", e.Value)
			}
		default:
			t.Errorf("field không hợp lệ lọt qua: %s", e.Key)
		}
	}
}

func TestTransformInputToModel(t *testing.T) {
	type input struct {
		CategoryID  string `transform:"str_objectid,required,map=CategoryID"`
		Name        string
		Description string
	}
	type model struct {
		CategoryID  primitive.ObjectID
		Name        string
		Description string
	}

	hex := "64f0c1a2b3d4e5f6a7b8c9d0"
	out, err := transformInputToModel[model](&input{CategoryID: hex, Name: "Quán cà phê"})
	if err != nil {
		t.Fatalf("transformInputToModel lỗi: %v", err)
	}
	if out.CategoryID.Hex() != hex {
		t.Errorf("CategoryID không được transform: %s", out.CategoryID.Hex())
	}
	if out.Name != "Quán cà phê" {
		t.Errorf("field không tag phải được copy thẳng: %s", out.Name)
	}

	// required nhưng rỗng: lỗi
	if _, err := transformInputToModel[model](&input{Name: "Thiếu danh mục"}); err == nil {
		t.Error("CategoryID required rỗng phải lỗi")
	}
}

func TestTransformInputToModelOptionalPtr(t *testing.T) {
	type input struct {
		OutletTypeID string `transform:"str_objectid_ptr,optional,map=OutletTypeID"`
	}
	type model struct {
		OutletTypeID *primitive.ObjectID
	}

	out, err := transformInputToModel[model](&input{})
	if err != nil {
		t.Fatalf("optional rỗng không được lỗi: %v", err)
	}
	if out.OutletTypeID != nil {
		t.Error("optional rỗng phải để nil")
	}

	hex := "64f0c1a2b3d4e5f6a7b8c9d0"
	out, err = transformInputToModel[model](&input{OutletTypeID: hex})
	if err != nil {
		t.Fatalf("transformInputToModel lỗi: %v", err)
	}
	if out.OutletTypeID == nil || out.OutletTypeID.Hex() != hex {
		t.Errorf("OutletTypeID sai: %v", out.OutletTypeID)
	}
}
