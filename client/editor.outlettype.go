package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// OutletTypeForm là form add/edit dùng chung của màn hình loại outlet.
// ID rỗng nghĩa là đang thêm mới, khác rỗng là đang sửa.
type OutletTypeForm struct {
	ID           string
	Name         string
	CategoryID   string
	Description  string
	DisplayOrder int64
	Active       bool
}

// OutletTypeEditor là state machine của màn hình loại outlet: danh sách phẳng
// lọc theo danh mục, một form add/edit dùng chung theo kỷ luật single-focus.
type OutletTypeEditor struct {
	mu      sync.Mutex
	service *OutletTypeService

	filter   string // FilterAll hoặc một categoryId
	items    []OutletType
	form     OutletTypeForm
	formOpen bool
	inFlight bool

	notify  func(message string)
	confirm func(message string) bool
}

// NewOutletTypeEditor tạo editor với bộ lọc mặc định "tất cả danh mục"
func NewOutletTypeEditor(service *OutletTypeService, notify func(string), confirm func(string) bool) *OutletTypeEditor {
	if notify == nil {
		notify = func(string) {}
	}
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &OutletTypeEditor{
		service: service,
		filter:  FilterAll,
		notify:  notify,
		confirm: confirm,
	}
}

// Load nạp danh sách loại outlet theo bộ lọc hiện tại
func (e *OutletTypeEditor) Load(ctx context.Context) Result[struct{}] {
	e.mu.Lock()
	filter := e.filter
	e.mu.Unlock()

	listResult := e.service.List(ctx, filter)
	if !listResult.IsOk() {
		return Err[struct{}](listResult.Message())
	}

	e.mu.Lock()
	e.items = listResult.Data()
	if e.items == nil {
		e.items = []OutletType{}
	}
	e.mu.Unlock()
	return Ok(struct{}{})
}

// SetFilter đổi bộ lọc danh mục rồi nạp lại danh sách.
// FilterAll (hoặc chuỗi rỗng) nghĩa là không lọc.
func (e *OutletTypeEditor) SetFilter(ctx context.Context, categoryID string) Result[struct{}] {
	if categoryID == "" {
		categoryID = FilterAll
	}
	e.mu.Lock()
	e.filter = categoryID
	e.mu.Unlock()
	return e.Load(ctx)
}

// Filter trả về bộ lọc hiện tại
func (e *OutletTypeEditor) Filter() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// Items trả về snapshot danh sách hiện tại
func (e *OutletTypeEditor) Items() []OutletType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]OutletType, len(e.items))
	copy(out, e.items)
	return out
}

// OpenAdd mở form thêm mới (đóng form sửa nếu đang mở).
// Danh mục mặc định lấy theo bộ lọc hiện tại khi đang lọc cụ thể.
func (e *OutletTypeEditor) OpenAdd() {
	e.mu.Lock()
	defer e.mu.Unlock()

	categoryID := ""
	if e.filter != FilterAll {
		categoryID = e.filter
	}
	e.form = OutletTypeForm{CategoryID: categoryID, DisplayOrder: 1, Active: true}
	e.formOpen = true
}

// OpenEdit mở form sửa, pre-populate từ entity được chọn
// (đóng form thêm mới nếu đang mở — cùng kỷ luật single-focus).
func (e *OutletTypeEditor) OpenEdit(item OutletType) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.form = OutletTypeForm{
		ID:           item.ID,
		Name:         item.Name,
		CategoryID:   item.CategoryID,
		Description:  item.Description,
		DisplayOrder: item.DisplayOrder,
		Active:       item.Active,
	}
	e.formOpen = true
}

// CloseForm đóng form đang mở
func (e *OutletTypeEditor) CloseForm() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = OutletTypeForm{}
	e.formOpen = false
}

// FormOpen cho biết form có đang mở không
func (e *OutletTypeEditor) FormOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formOpen
}

// Form trả về bản sao form hiện tại
func (e *OutletTypeEditor) Form() OutletTypeForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetForm cập nhật nội dung form (giữ nguyên trạng thái mở/đóng)
func (e *OutletTypeEditor) SetForm(form OutletTypeForm) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.form.ID
	e.form = form
	e.form.ID = id
}

// Save validate tên + danh mục rồi tạo hoặc cập nhật theo form.ID.
// Validate thất bại: thông báo chặn, không có lời gọi mạng.
// Thành công: reset form và nạp lại danh sách theo bộ lọc hiện tại.
func (e *OutletTypeEditor) Save(ctx context.Context) Result[struct{}] {
	e.mu.Lock()
	form := e.form
	open := e.formOpen
	e.mu.Unlock()

	if !open {
		return Err[struct{}]("Chưa có form nào đang mở")
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		e.notify("Tên loại outlet không được để trống")
		return Err[struct{}]("Tên loại outlet không được để trống")
	}
	if form.CategoryID == "" {
		e.notify("Vui lòng chọn danh mục")
		return Err[struct{}]("Vui lòng chọn danh mục")
	}

	if !e.beginOp() {
		return Err[struct{}]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	displayOrder := form.DisplayOrder
	if displayOrder < 1 {
		displayOrder = 1
	}
	active := form.Active
	payload := OutletTypePayload{
		CategoryID:   form.CategoryID,
		Name:         name,
		Description:  form.Description,
		DisplayOrder: displayOrder,
		Active:       &active,
	}

	var message string
	if form.ID == "" {
		if result := e.service.Create(ctx, payload); !result.IsOk() {
			message = result.Message()
		}
	} else {
		if result := e.service.Update(ctx, form.ID, payload); !result.IsOk() {
			message = result.Message()
		}
	}
	if message != "" {
		e.notify(message)
		return Err[struct{}](message)
	}

	e.CloseForm()
	return e.Load(ctx)
}

// Delete xóa một loại outlet sau bước xác nhận.
// Từ chối xác nhận: không có lời gọi mạng — Ok(false).
func (e *OutletTypeEditor) Delete(ctx context.Context, id string) Result[bool] {
	name := id
	for _, item := range e.Items() {
		if item.ID == id {
			name = item.Name
			break
		}
	}
	if !e.confirm(fmt.Sprintf("Xóa loại outlet %q?", name)) {
		return Ok(false)
	}

	if !e.beginOp() {
		return Err[bool]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	if result := e.service.Delete(ctx, id); !result.IsOk() {
		e.notify(result.Message())
		return Err[bool](result.Message())
	}

	if loadResult := e.Load(ctx); !loadResult.IsOk() {
		return Err[bool](loadResult.Message())
	}
	return Ok(true)
}

func (e *OutletTypeEditor) beginOp() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		e.notify("Thao tác trước chưa hoàn tất, vui lòng chờ")
		return false
	}
	e.inFlight = true
	return true
}

func (e *OutletTypeEditor) endOp() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}
