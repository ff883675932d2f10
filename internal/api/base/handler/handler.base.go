// Package basehdl chứa base handler generic cho các Fiber handler.
// Package này cung cấp các chức năng CRUD cơ bản và các tiện ích để xử lý request/response:
// parse body, validate struct tag, transform DTO → Model, build filter/options MongoDB.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	basesvc "outlet_admin/internal/api/base/service"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"
	"outlet_admin/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// FilterOptions cấu hình cho việc validate filter từ query string
type FilterOptions struct {
	DeniedFields     []string // Các trường bị cấm filter
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số lượng field tối đa trong một filter
}

// BaseHandler là base handler cho các Fiber handler, cung cấp các chức năng CRUD cơ bản.
// Struct này sử dụng Generic Type để tái sử dụng cho nhiều loại model khác nhau.
//
// Type parameters:
// - T: Kiểu dữ liệu của model
// - CreateInput: Kiểu dữ liệu của input khi tạo mới
// - UpdateInput: Kiểu dữ liệu của input khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // Service xử lý logic nghiệp vụ với MongoDB
	filterOptions FilterOptions               // Cấu hình validate filter
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"passwordHash",
				"token",
				"tokens",
				"secret",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
				"$regex",
			},
			MaxFields: 10,
		},
	}
}

// ValidateInput validate dữ liệu đầu vào với validator từ global (struct tag validate)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestBody parse dữ liệu từ request body vào input.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseObjectID lấy và validate một ObjectID từ URI params.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseObjectID(c fiber.Ctx, paramName string) (primitive.ObjectID, error) {
	id := c.Params(paramName)
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Tham số '%s' không được để trống trong URL", paramName),
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// ParsePagination parse page/limit từ query string (mặc định page=1, limit=10)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}

// ProcessFilter parse và validate filter JSON từ query string.
// String có dạng ObjectID trong các field *Id được normalize về primitive.ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// normalizeFilter chuyển đổi các string có format ObjectID thành ObjectID trong filter.
// Áp dụng cho các field có tên kết thúc bằng "Id"/"ID" và key "_id".
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}
	normalized := make(map[string]interface{})
	for field, value := range filter {
		fieldLower := strings.ToLower(field)
		isIDField := field == "_id" || (strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2)
		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}
	return normalized
}

// normalizeFilterValue chuyển đổi giá trị trong filter, hỗ trợ nested structures
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	if value == nil {
		return value
	}

	if strValue, ok := value.(string); ok && isIDField {
		if primitive.IsValidObjectID(strValue) {
			if objID, err := primitive.ObjectIDFromHex(strValue); err == nil {
				return objID
			}
		}
		return strValue
	}

	if arrValue, ok := value.([]interface{}); ok {
		normalizedArr := make([]interface{}, len(arrValue))
		for i, item := range arrValue {
			normalizedArr[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalizedArr
	}

	// Map (các operator như $in, $eq, ...) xử lý đệ quy
	if mapValue, ok := value.(map[string]interface{}); ok {
		normalizedMap := make(map[string]interface{})
		for key, val := range mapValue {
			normalizedMap[key] = h.normalizeFilterValue(val, isIDField)
		}
		return normalizedMap
	}

	return value
}

// validateFilter kiểm tra tính hợp lệ của filter theo filterOptions
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	maxFields := h.filterOptions.MaxFields
	if maxFields == 0 {
		maxFields = 10
	}
	if len(filter) > maxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter vượt quá số lượng trường cho phép. Tối đa %d trường, hiện tại có %d trường.", maxFields, len(filter)),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(h.filterOptions.DeniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật.", field),
				common.StatusBadRequest,
				nil,
			)
		}
		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(h.filterOptions.AllowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Toán tử MongoDB '%s' không được phép sử dụng. Các toán tử được phép: %v", op, h.filterOptions.AllowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}
	return nil
}

// ProcessFindOptions parse options JSON (projection, sort) từ query string cho Find/FindOne
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFindOptions(c fiber.Ctx) (*mongoopts.FindOptions, error) {
	rawOptions, err := h.parseRawOptions(c)
	if err != nil {
		return nil, err
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
		opts.SetSort(parseSortMap(sort))
	}
	if limit, ok := rawOptions["limit"].(float64); ok && limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok && skip >= 0 {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// parseRawOptions parse và validate options JSON từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) parseRawOptions(c fiber.Ctx) (map[string]interface{}, error) {
	var rawOptions map[string]interface{}
	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị options nhận được: %s", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}
	for key := range rawOptions {
		if !allowedOptions[key] {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Option '%s' không được hỗ trợ. Các options được phép: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(h.filterOptions.DeniedFields, field) {
				return nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong projection vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}
	return rawOptions, nil
}

// parseSortMap chuyển sort map thành bson.D, chỉ chấp nhận giá trị 1/-1
func parseSortMap(sortMap map[string]interface{}) bson.D {
	sortBson := bson.D{}
	for field, value := range sortMap {
		var sortValue int
		switch v := value.(type) {
		case float64:
			sortValue = int(v)
		case int:
			sortValue = v
		default:
			continue
		}
		if sortValue != 1 && sortValue != -1 {
			continue
		}
		sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
	}
	return sortBson
}

// TransformCreateInputToModel transform CreateInput (DTO) sang Model (T)
// sử dụng struct tag `transform` (ví dụ: string → ObjectID, map=<Field>).
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	return transformInputToModel[T](input)
}

// TransformUpdateInputToModel transform UpdateInput (DTO) sang Model (T)
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	return transformInputToModel[T](input)
}

// transformInputToModel duyệt các field của DTO, áp struct tag `transform` nếu có,
// copy trực tiếp nếu không. Field không có bản sao bên Model bị bỏ qua.
func transformInputToModel[T any](input interface{}) (*T, error) {
	model := new(T)

	inputVal := reflect.ValueOf(input)
	if inputVal.Kind() == reflect.Ptr {
		inputVal = inputVal.Elem()
	}
	if inputVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input phải là struct hoặc pointer đến struct")
	}

	modelVal := reflect.ValueOf(model).Elem()
	if modelVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model phải là struct")
	}

	inputType := inputVal.Type()
	modelType := modelVal.Type()

	for i := 0; i < inputVal.NumField(); i++ {
		inputField := inputVal.Field(i)
		inputFieldType := inputType.Field(i)

		if !inputField.CanInterface() {
			continue
		}
		fieldValue := inputField.Interface()

		transformTag := inputFieldType.Tag.Get("transform")
		if transformTag == "" {
			// Copy trực tiếp nếu field cùng tên và type tương thích
			targetName := inputFieldType.Name
			if _, found := modelType.FieldByName(targetName); !found {
				continue
			}
			modelFieldVal := modelVal.FieldByName(targetName)
			if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
				continue
			}
			rv := reflect.ValueOf(fieldValue)
			if rv.Type().AssignableTo(modelFieldVal.Type()) {
				modelFieldVal.Set(rv)
			} else if rv.Type().ConvertibleTo(modelFieldVal.Type()) {
				modelFieldVal.Set(rv.Convert(modelFieldVal.Type()))
			}
			continue
		}

		transformConfig, err := utility.ParseTransformTag(transformTag)
		if err != nil {
			return nil, fmt.Errorf("lỗi parse transform tag cho field %s: %w", inputFieldType.Name, err)
		}

		targetFieldName := inputFieldType.Name
		if transformConfig.MapTo != "" {
			targetFieldName = transformConfig.MapTo
		}

		modelField, found := modelType.FieldByName(targetFieldName)
		if !found {
			if transformConfig.Optional {
				continue
			}
			return nil, fmt.Errorf("không tìm thấy field '%s' trong Model (map từ field '%s' trong DTO)", targetFieldName, inputFieldType.Name)
		}

		transformedValue, err := utility.TransformFieldValue(fieldValue, transformConfig, modelField.Type)
		if err != nil {
			if transformConfig.Optional {
				continue
			}
			return nil, fmt.Errorf("lỗi transform field '%s' sang '%s': %w", inputFieldType.Name, targetFieldName, err)
		}

		modelFieldVal := modelVal.FieldByName(targetFieldName)
		if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
			return nil, fmt.Errorf("không thể set giá trị vào field '%s' trong Model", targetFieldName)
		}

		if transformedValue == nil {
			continue
		}
		transformedVal := reflect.ValueOf(transformedValue)
		if transformedVal.Type().AssignableTo(modelFieldVal.Type()) {
			modelFieldVal.Set(transformedVal)
		} else if transformedVal.Type().ConvertibleTo(modelFieldVal.Type()) {
			modelFieldVal.Set(transformedVal.Convert(modelFieldVal.Type()))
		} else {
			return nil, fmt.Errorf("không thể convert giá trị từ type %v sang type %v cho field '%s'", transformedVal.Type(), modelFieldVal.Type(), targetFieldName)
		}
	}

	return model, nil
}

// applyBodyBoolFields đọc các field bool trong request body và đưa thẳng vào map $set.
// Bổ trợ cho ModelToSetMap vốn bỏ qua giá trị zero (false).
func (h *BaseHandler[T, CreateInput, UpdateInput]) applyBodyBoolFields(c fiber.Ctx, set map[string]interface{}) {
	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return
	}
	for key, value := range raw {
		boolValue, ok := value.(bool)
		if !ok {
			continue
		}
		if key == "_id" || utility.Contains(h.filterOptions.DeniedFields, key) {
			continue
		}
		set[key] = boolValue
	}
}

// ModelToSetMap chuyển model thành map $set chỉ chứa các field non-zero (partial update)
func ModelToSetMap(model interface{}) (map[string]interface{}, error) {
	modelMap, err := utility.ToMap(model)
	if err != nil {
		return nil, err
	}
	set := make(map[string]interface{})
	for k, v := range modelMap {
		if k == "_id" {
			continue
		}
		if rv := reflect.ValueOf(v); rv.IsValid() && !rv.IsZero() {
			set[k] = v
		}
	}
	return set, nil
}
