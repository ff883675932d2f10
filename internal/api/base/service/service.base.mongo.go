// Package basesvc cung cấp base service generic cho mọi collection MongoDB.
// Các service domain (category, outlet, user, ...) embed BaseServiceMongoImpl
// để có sẵn CRUD chuẩn: timestamps tự động, map lỗi Mongo về common.Error,
// kiểm tra/cascade quan hệ khi xóa và phát event sau mỗi thay đổi dữ liệu.
package basesvc

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"outlet_admin/internal/api/base/models"
	"outlet_admin/internal/api/events"
	"outlet_admin/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ====================================
// UPDATE DATA
// ====================================

// UpdateData chứa các toán tử update MongoDB thường dùng.
// Service chỉ cần khai báo Set/Unset/..., base service lo phần còn lại
// (updatedAt, marshal về bson.M).
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"`
	Unset       map[string]interface{} `bson:"$unset,omitempty"`
	Push        map[string]interface{} `bson:"$push,omitempty"`
	AddToSet    map[string]interface{} `bson:"$addToSet,omitempty"`
}

// ToUpdateData chuyển data bất kỳ (struct, map, *UpdateData) thành *UpdateData.
// Struct và map được coi là nội dung của $set.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	if data == nil {
		return &UpdateData{}, nil
	}

	switch v := data.(type) {
	case *UpdateData:
		return v, nil
	case UpdateData:
		return &v, nil
	case bson.M:
		return updateDataFromMap(map[string]interface{}(v))
	case map[string]interface{}:
		return updateDataFromMap(v)
	}

	// Struct: marshal qua bson để tôn trọng bson tags, rồi đưa vào $set
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("không thể chuyển data thành UpdateData: %w", err)
	}
	var m map[string]interface{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("không thể chuyển data thành UpdateData: %w", err)
	}
	delete(m, "_id")
	return &UpdateData{Set: m}, nil
}

// updateDataFromMap xử lý map: nếu đã có toán tử $ thì map thẳng, nếu không thì coi là $set.
func updateDataFromMap(m map[string]interface{}) (*UpdateData, error) {
	hasOperator := false
	for key := range m {
		if strings.HasPrefix(key, "$") {
			hasOperator = true
			break
		}
	}
	if !hasOperator {
		set := make(map[string]interface{}, len(m))
		for k, v := range m {
			if k == "_id" {
				continue
			}
			set[k] = v
		}
		return &UpdateData{Set: set}, nil
	}

	out := &UpdateData{}
	for key, value := range m {
		sub, ok := toStringMap(value)
		if !ok {
			return nil, fmt.Errorf("giá trị của toán tử '%s' phải là map", key)
		}
		switch key {
		case "$set":
			out.Set = sub
		case "$setOnInsert":
			out.SetOnInsert = sub
		case "$unset":
			out.Unset = sub
		case "$push":
			out.Push = sub
		case "$addToSet":
			out.AddToSet = sub
		default:
			return nil, fmt.Errorf("toán tử '%s' chưa được hỗ trợ", key)
		}
	}
	return out, nil
}

func toStringMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case bson.M:
		return map[string]interface{}(v), true
	}
	return nil, false
}

// ====================================
// INTERFACE VÀ STRUCT
// ====================================

// BaseServiceMongo định nghĩa interface chứa các phương thức cơ bản cho việc tương tác với MongoDB
// Type Parameters:
//   - Model: Kiểu dữ liệu của model
type BaseServiceMongo[Model any] interface {
	// NHÓM 1: CÁC HÀM CHUẨN MONGODB DRIVER
	// ====================================

	// 1.1 Thao tác Insert
	InsertOne(ctx context.Context, data Model) (Model, error)
	InsertMany(ctx context.Context, data []Model) ([]Model, error)

	// 1.2 Thao tác Find
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)

	// 1.3 Thao tác Update
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (Model, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (int64, error)

	// 1.4 Thao tác Delete
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)

	// 1.5 Các thao tác khác
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)

	// NHÓM 2: CÁC HÀM TIỆN ÍCH MỞ RỘNG
	// ================================

	// 2.1 Các hàm Find mở rộng
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*models.PaginateResult[Model], error)

	// 2.2 Các hàm Update/Delete mở rộng
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (Model, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error

	// 2.3 Upsert
	Upsert(ctx context.Context, filter interface{}, data interface{}) (Model, error)

	// 2.4 Các hàm kiểm tra
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	CountCascadeChildren(ctx context.Context, id primitive.ObjectID) (map[string]int64, error)
}

// BaseServiceMongoImpl định nghĩa struct triển khai các phương thức cơ bản cho service
// Type Parameters:
//   - Model: Kiểu dữ liệu của model
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection // Collection MongoDB
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection MongoDB (dùng bởi service domain khi cần aggregate trực tiếp)
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// ====================================
// NHÓM 1: CÁC HÀM CHUẨN MONGODB DRIVER
// ====================================

// 1.1 Thao tác Insert
// -------------------

// InsertOne tạo mới một bản ghi trong database.
// Tự động: loại bỏ field string rỗng (tránh đụng unique sparse index),
// áp default từ struct tag, set createdAt/updatedAt (unix milli) và refetch
// bản ghi sau khi insert để trả về đúng dữ liệu đã lưu.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	applyInsertDefaultsToModel(&data)

	doc, err := modelToDocument(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	stripEmptyStrings(doc)

	now := time.Now().UnixMilli()
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = now
	}
	doc["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var inserted T
	err = s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&inserted)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpInsert,
		Document:       inserted,
	})
	return inserted, nil
}

// InsertMany tạo mới nhiều bản ghi trong database
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	now := time.Now().UnixMilli()
	docs := make([]interface{}, 0, len(data))
	for i := range data {
		applyInsertDefaultsToModel(&data[i])
		doc, err := modelToDocument(data[i])
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		stripEmptyStrings(doc)
		if _, ok := doc["createdAt"]; !ok {
			doc["createdAt"] = now
		}
		doc["updatedAt"] = now
		docs = append(docs, doc)
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	inserted, err := s.Find(ctx, bson.M{"_id": bson.M{"$in": result.InsertedIDs}}, nil)
	if err != nil {
		return nil, err
	}

	for _, doc := range inserted {
		events.EmitDataChanged(ctx, events.DataChangeEvent{
			CollectionName: s.collection.Name(),
			Operation:      events.OpInsert,
			Document:       doc,
		})
	}
	return inserted, nil
}

// 1.2 Thao tác Find
// -----------------

// FindOne tìm một bản ghi theo filter.
// Trả về common.ErrNotFound nếu không có bản ghi nào khớp.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}

	var result T
	var err error
	if opts != nil {
		err = s.collection.FindOne(ctx, filter, opts).Decode(&result)
	} else {
		err = s.collection.FindOne(ctx, filter).Decode(&result)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// Find tìm nhiều bản ghi theo filter. Luôn trả về slice khác nil.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = s.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// 1.3 Thao tác Update
// -------------------

// UpdateOne cập nhật một bản ghi theo filter và trả về bản ghi sau cập nhật.
// Tự động set updatedAt. Trả về common.ErrNotFound nếu không khớp bản ghi nào.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}

	updateData, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = time.Now().UnixMilli()

	var result *mongo.UpdateResult
	if opts != nil {
		result, err = s.collection.UpdateOne(ctx, filter, updateData, opts)
	} else {
		result, err = s.collection.UpdateOne(ctx, filter, updateData)
	}
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return zero, common.ErrNotFound
	}

	updated, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return zero, err
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		Document:       updated,
	})
	return updated, nil
}

// UpdateMany cập nhật nhiều bản ghi theo filter, trả về số lượng đã cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	updateData, err := ToUpdateData(update)
	if err != nil {
		return 0, common.ErrInvalidFormat
	}
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = time.Now().UnixMilli()

	var result *mongo.UpdateResult
	if opts != nil {
		result, err = s.collection.UpdateMany(ctx, filter, updateData, opts)
	} else {
		result, err = s.collection.UpdateMany(ctx, filter, updateData)
	}
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		Document:       nil,
	})
	return result.ModifiedCount, nil
}

// 1.4 Thao tác Delete
// -------------------

// DeleteOne xóa một bản ghi theo filter.
// Trước khi xóa: kiểm tra các quan hệ chặn (relationship tag không cascade),
// sau đó xóa cascade các bản ghi con (relationship tag cascade:true).
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	if filter == nil {
		filter = bson.D{}
	}

	var existing T
	err := s.collection.FindOne(ctx, filter).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.ErrNotFound
		}
		return common.ConvertMongoError(err)
	}

	if err := s.deleteWithRelationships(ctx, existing); err != nil {
		return err
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpDelete,
		Document:       nil,
	})
	return nil
}

// deleteWithRelationships thực hiện trình tự xóa chuẩn cho một bản ghi đã tồn tại:
// validate quan hệ chặn → cascade delete con → xóa bản ghi.
func (s *BaseServiceMongoImpl[T]) deleteWithRelationships(ctx context.Context, existing T) error {
	structType := reflect.TypeOf(existing)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	recordID, hasID := getIDFromModel(existing)
	if hasID && structType.Kind() == reflect.Struct {
		if err := ValidateRelationships(ctx, recordID, structType); err != nil {
			return err
		}
		relationships := ParseRelationshipTag(structType)
		if _, err := CascadeDeleteRelationships(ctx, recordID, relationships); err != nil {
			return err
		}
	}

	var delFilter interface{} = bson.M{"_id": recordID}
	if !hasID {
		return common.NewError(common.ErrCodeValidation, "Record khong co field ID", common.StatusBadRequest, nil)
	}
	result, err := s.collection.DeleteOne(ctx, delFilter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany xóa nhiều bản ghi theo filter, trả về số lượng đã xóa.
// Từng bản ghi đi qua trình tự validate/cascade như DeleteOne.
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	existing, err := s.Find(ctx, filter, nil)
	if err != nil {
		return 0, err
	}

	var deleted int64
	for _, doc := range existing {
		if err := s.deleteWithRelationships(ctx, doc); err != nil {
			return deleted, err
		}
		deleted++
	}

	if deleted > 0 {
		events.EmitDataChanged(ctx, events.DataChangeEvent{
			CollectionName: s.collection.Name(),
			Operation:      events.OpDelete,
			Document:       nil,
		})
	}
	return deleted, nil
}

// 1.5 Các thao tác khác
// ---------------------

// CountDocuments đếm số lượng document theo filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct lấy danh sách giá trị duy nhất của một field
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	if filter == nil {
		filter = bson.D{}
	}
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// ====================================
// NHÓM 2: CÁC HÀM TIỆN ÍCH MỞ RỘNG
// ====================================

// 2.1 Các hàm Find mở rộng
// ------------------------

// FindOneById tìm một bản ghi theo ObjectID
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindManyByIds tìm nhiều bản ghi theo danh sách ObjectID
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// FindWithPagination tìm bản ghi có phân trang.
// page bắt đầu từ 1; page/limit không hợp lệ được đưa về mặc định.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*models.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.D{}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	skip := (page - 1) * limit
	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip(skip)
	opts.SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	totalPage := total / limit
	if total%limit != 0 {
		totalPage++
	}

	return &models.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// 2.2 Các hàm Update/Delete mở rộng
// ---------------------------------

// UpdateById cập nhật một bản ghi theo ObjectID
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, data, nil)
}

// DeleteById xóa một bản ghi theo ObjectID
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// 2.3 Upsert
// ----------

// Upsert cập nhật bản ghi khớp filter hoặc tạo mới nếu chưa có.
// Khi tạo mới: set createdAt qua $setOnInsert cùng các default từ struct tag.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data interface{}) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}

	updateData, err := ToUpdateData(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	now := time.Now().UnixMilli()
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = now
	if updateData.SetOnInsert == nil {
		updateData.SetOnInsert = make(map[string]interface{})
	}
	updateData.SetOnInsert["createdAt"] = now
	var model T
	for key, value := range getInsertDefaultsFromModelType(reflect.TypeOf(model)) {
		if _, inSet := updateData.Set[key]; inSet {
			continue
		}
		if _, ok := updateData.SetOnInsert[key]; !ok {
			updateData.SetOnInsert[key] = value
		}
	}

	existed, err := s.DocumentExists(ctx, filter)
	if err != nil {
		return zero, err
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, filter, updateData, opts); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	result, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return zero, err
	}

	op := events.OpUpsert
	if existed {
		op = events.OpUpdate
	}
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      op,
		Document:       result,
	})
	return result, nil
}

// 2.4 Các hàm kiểm tra
// --------------------

// DocumentExists kiểm tra có bản ghi nào khớp filter không
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// CountCascadeChildren đếm số bản ghi con sẽ bị xóa theo (quan hệ cascade:true)
// nếu xóa bản ghi id. Key của map là tên collection con.
// Handler dùng kết quả này cho màn hình xác nhận xóa phía client.
func (s *BaseServiceMongoImpl[T]) CountCascadeChildren(ctx context.Context, id primitive.ObjectID) (map[string]int64, error) {
	var model T
	structType := reflect.TypeOf(model)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	counts := make(map[string]int64)
	if structType.Kind() != reflect.Struct {
		return counts, nil
	}
	for _, rel := range ParseRelationshipTag(structType) {
		if !rel.Cascade {
			continue
		}
		count, err := GetRelationshipCount(ctx, id, rel.CollectionName, rel.FieldName)
		if err != nil {
			return nil, err
		}
		counts[rel.CollectionName] = count
	}
	return counts, nil
}

// ====================================
// HELPERS
// ====================================

// modelToDocument chuyển model thành bson.M qua marshal/unmarshal để tôn trọng bson tags
func modelToDocument(data interface{}) (bson.M, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// stripEmptyStrings loại bỏ field string rỗng và ObjectID zero khỏi document
// trước khi insert, để không đụng unique sparse index trên field không bắt buộc.
func stripEmptyStrings(doc bson.M) {
	for key, value := range doc {
		switch v := value.(type) {
		case string:
			if v == "" {
				delete(doc, key)
			}
		case primitive.ObjectID:
			if v.IsZero() && key != "_id" {
				delete(doc, key)
			}
		}
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok && id.IsZero() {
		delete(doc, "_id")
	}
}

// getIDFromModel lấy ObjectID từ field ID của model bằng reflection
func getIDFromModel(data interface{}) (primitive.ObjectID, bool) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return primitive.NilObjectID, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return primitive.NilObjectID, false
	}

	field := v.FieldByName("ID")
	if !field.IsValid() || !field.CanInterface() {
		return primitive.NilObjectID, false
	}
	if id, ok := field.Interface().(primitive.ObjectID); ok {
		return id, true
	}
	return primitive.NilObjectID, false
}

// applyInsertDefaultsToModel áp dụng giá trị default từ struct tag lên model (chỉ set field đang zero).
// ptr phải là con trỏ tới struct (ví dụ &data).
func applyInsertDefaultsToModel(ptr interface{}) {
	if ptr == nil {
		return
	}
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr {
		return
	}
	struc := v.Elem()
	if struc.Kind() != reflect.Struct {
		return
	}
	rt := struc.Type()
	defaults := getInsertDefaultsFromModelType(rt)
	if len(defaults) == 0 {
		return
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		bsonKey := bsonKeyOfField(f)
		if bsonKey == "" {
			continue
		}
		defaultVal, ok := defaults[bsonKey]
		if !ok {
			continue
		}
		fieldVal := struc.Field(i)
		if !fieldVal.CanSet() || !fieldVal.IsZero() {
			continue
		}
		rv := reflect.ValueOf(defaultVal)
		if rv.Type().AssignableTo(fieldVal.Type()) {
			fieldVal.Set(rv)
		} else if rv.Type().ConvertibleTo(fieldVal.Type()) {
			fieldVal.Set(rv.Convert(fieldVal.Type()))
		}
	}
}

// getInsertDefaultsFromModelType đọc struct tag default trên model và trả về map[bsonKey]giá trị.
// Hỗ trợ: bool, int64, float64, string.
func getInsertDefaultsFromModelType(rt reflect.Type) map[string]interface{} {
	if rt == nil {
		return nil
	}
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}
	out := make(map[string]interface{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		defaultStr := f.Tag.Get("default")
		if defaultStr == "" {
			continue
		}
		bsonKey := bsonKeyOfField(f)
		if bsonKey == "" {
			continue
		}
		if val := parseDefaultValue(defaultStr, f.Type); val != nil {
			out[bsonKey] = val
		}
	}
	return out
}

// bsonKeyOfField trả về key bson của field (bỏ ",omitempty"), "" nếu field không được lưu
func bsonKeyOfField(f reflect.StructField) string {
	bsonTag := f.Tag.Get("bson")
	if bsonTag == "" || bsonTag == "-" {
		return ""
	}
	return strings.TrimSpace(strings.Split(bsonTag, ",")[0])
}

// parseDefaultValue parse chuỗi default theo kiểu của field
func parseDefaultValue(s string, t reflect.Type) interface{} {
	switch t.Kind() {
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case reflect.String:
		return s
	}
	return nil
}
