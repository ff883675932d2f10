package basesvc

import (
	"context"
	"fmt"

	"outlet_admin/internal/common"
	"outlet_admin/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipCheck định nghĩa một quan hệ cần kiểm tra
type RelationshipCheck struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// CheckRelationshipExists kiểm tra có record nào trong collection khác đang trỏ tới record này không
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để kiểm tra quan hệ", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}
		filter := bson.M{check.FieldName: recordID}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Không thể xóa record vì có %d record trong collection '%s' đang tham chiếu tới record này", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// GetRelationshipCount trả về số lượng record đang tham chiếu tới record này.
// Handler dùng hàm này để báo cho client biết số lượng con sẽ bị xóa theo (màn hình xác nhận xóa).
func GetRelationshipCount(ctx context.Context, recordID primitive.ObjectID, collectionName, fieldName string) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Không tìm thấy collection '%s'", collectionName), common.StatusInternalServerError, nil)
	}
	filter := bson.M{fieldName: recordID}
	return collection.CountDocuments(ctx, filter)
}

// CascadeDeleteRelationships xóa tất cả record con của các quan hệ cascade:true.
// Gọi sau khi record cha đã pass validate và TRƯỚC khi xóa cha, để con không bị mồ côi
// nếu xóa con fail giữa chừng.
// Trả về tổng số record con đã xóa.
func CascadeDeleteRelationships(ctx context.Context, recordID primitive.ObjectID, relationships []RelationshipDefinition) (int64, error) {
	var total int64
	for _, rel := range relationships {
		if !rel.Cascade {
			continue
		}
		collection, exists := global.RegistryCollections.Get(rel.CollectionName)
		if !exists {
			if rel.Optional {
				continue
			}
			return total, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để xóa cascade", rel.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}
		result, err := collection.DeleteMany(ctx, bson.M{rel.FieldName: recordID})
		if err != nil {
			return total, common.ConvertMongoError(err)
		}
		total += result.DeletedCount
	}
	return total, nil
}
