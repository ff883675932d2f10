package utility

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// BuildSearchFilter tạo filter $or tìm kiếm không phân biệt hoa thường trên các field.
// Chuỗi search do người dùng nhập được escape (QuoteMeta) để các ký tự regex
// như ( ) . * không bị diễn giải — tìm "(" là tìm đúng ký tự "(".
// Trả về bson.M rỗng khi search rỗng.
func BuildSearchFilter(search string, fields ...string) bson.M {
	if search == "" {
		return bson.M{}
	}
	quoted := regexp.QuoteMeta(search)
	conditions := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, bson.M{field: bson.M{"$regex": quoted, "$options": "i"}})
	}
	return bson.M{"$or": conditions}
}
