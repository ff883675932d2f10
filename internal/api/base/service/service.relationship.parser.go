package basesvc

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"outlet_admin/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipDefinition định nghĩa một quan hệ từ struct tag
type RelationshipDefinition struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
	Cascade        bool
}

// ParseRelationshipTag phân tích struct tag relationship để lấy các định nghĩa quan hệ.
// Tag khai báo trên field _Relationships hoặc bất kỳ field nào của model:
//
//	_Relationships any `relationship:"collection:sub_categories,field:categoryId,cascade:true"`
//
// Nhiều quan hệ ngăn cách bằng dấu "|".
func ParseRelationshipTag(structType reflect.Type) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	if field, ok := structType.FieldByName("_Relationships"); ok {
		if tag := field.Tag.Get("relationship"); tag != "" {
			relationships = append(relationships, parseRelationshipTagValue(tag)...)
		}
	}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Name == "_Relationships" {
			continue
		}
		tag := field.Tag.Get("relationship")
		if tag == "" {
			continue
		}
		relationships = append(relationships, parseRelationshipTagValue(tag)...)
	}
	return relationships
}

func parseRelationshipTagValue(tagValue string) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	parts := strings.Split(tagValue, "|")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rel := RelationshipDefinition{}
		pairs := strings.Split(part, ",")
		for _, pair := range pairs {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "collection":
				rel.CollectionName = value
			case "field":
				rel.FieldName = value
			case "message", "msg":
				rel.ErrorMessage = value
			case "optional":
				rel.Optional = value == "true" || value == "1"
			case "cascade":
				rel.Cascade = value == "true" || value == "1"
			}
		}
		if rel.CollectionName != "" && rel.FieldName != "" {
			if rel.ErrorMessage == "" {
				rel.ErrorMessage = fmt.Sprintf("Không thể xóa record vì có %%d record trong collection '%s' đang tham chiếu tới.", rel.CollectionName)
			}
			relationships = append(relationships, rel)
		}
	}
	return relationships
}

// ValidateRelationships kiểm tra các quan hệ KHÔNG cascade được định nghĩa trong struct tag.
// Quan hệ cascade:true không chặn xóa — con sẽ được xóa theo bằng CascadeDeleteRelationships.
func ValidateRelationships(ctx context.Context, recordID primitive.ObjectID, structType reflect.Type) error {
	relationships := ParseRelationshipTag(structType)
	if len(relationships) == 0 {
		return nil
	}
	checks := make([]RelationshipCheck, 0, len(relationships))
	for _, rel := range relationships {
		if rel.Cascade {
			continue
		}
		checks = append(checks, RelationshipCheck{
			CollectionName: rel.CollectionName,
			FieldName:      rel.FieldName,
			ErrorMessage:   rel.ErrorMessage,
			Optional:       rel.Optional,
		})
	}
	if len(checks) > 0 {
		return CheckRelationshipExists(ctx, recordID, checks)
	}
	return nil
}

// ValidateRelationshipsFromValue kiểm tra quan hệ từ một giá trị struct
func ValidateRelationshipsFromValue(ctx context.Context, record interface{}, structType reflect.Type) error {
	recordID, ok := getIDFromModel(record)
	if !ok {
		return common.NewError(common.ErrCodeValidation, "Record không có field ID", common.StatusBadRequest, nil)
	}
	if structType == nil {
		val := reflect.ValueOf(record)
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}
		structType = val.Type()
	}
	return ValidateRelationships(ctx, recordID, structType)
}

// GetRelationshipDefinitions lấy danh sách các quan hệ được định nghĩa trong struct
func GetRelationshipDefinitions(structType reflect.Type) []RelationshipDefinition {
	return ParseRelationshipTag(structType)
}
