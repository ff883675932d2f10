package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// TreeNode là một danh mục trong cây kèm danh mục con và trạng thái mở/đóng
type TreeNode struct {
	Category      Category
	SubCategories []SubCategory
	Expanded      bool
}

// focusKind phân loại form đang mở trong cây
type focusKind int

const (
	focusNone focusKind = iota
	focusAddCategory
	focusEditCategory
	focusAddSubCategory
	focusEditSubCategory
)

// treeFocus xác định form duy nhất đang mở trên toàn cây.
// Gom về một struct nên bất biến "tối đa một form mở" đúng theo cấu trúc:
// mở form mới là ghi đè focus, tự đóng mọi form khác.
type treeFocus struct {
	kind          focusKind
	categoryID    string
	subCategoryID string
}

// TreeEditor là state machine của màn hình quản lý cây Danh mục → Danh mục con.
// Mọi mutation thành công đều nạp lại toàn bộ cây từ server thay vì vá cục bộ.
type TreeEditor struct {
	mu            sync.Mutex
	categories    *CategoryService
	subCategories *SubCategoryService

	nodes    []TreeNode
	focus    treeFocus
	inFlight bool

	notify  func(message string)      // thông báo chặn (validation, lỗi)
	confirm func(message string) bool // hỏi xác nhận trước thao tác xóa
}

// NewTreeEditor tạo editor. notify có thể nil (bỏ qua thông báo);
// confirm nil thì mọi thao tác xóa bị từ chối (an toàn mặc định).
func NewTreeEditor(categories *CategoryService, subCategories *SubCategoryService, notify func(string), confirm func(string) bool) *TreeEditor {
	if notify == nil {
		notify = func(string) {}
	}
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &TreeEditor{
		categories:    categories,
		subCategories: subCategories,
		notify:        notify,
		confirm:       confirm,
	}
}

// Load nạp toàn bộ cây: tất cả danh mục rồi danh mục con của từng cái.
// Lỗi nạp con của MỘT danh mục không làm hỏng cả cây: nhánh đó để rỗng
// và lỗi chỉ được ghi log. Mọi node về trạng thái đóng sau khi nạp.
func (e *TreeEditor) Load(ctx context.Context) Result[struct{}] {
	listResult := e.categories.List(ctx)
	if !listResult.IsOk() {
		return Err[struct{}](listResult.Message())
	}

	nodes := make([]TreeNode, 0, len(listResult.Data()))
	for _, category := range listResult.Data() {
		node := TreeNode{Category: category, SubCategories: []SubCategory{}}

		childResult := e.subCategories.ListByCategory(ctx, category.ID)
		if childResult.IsOk() {
			if items := childResult.Data(); items != nil {
				node.SubCategories = items
			}
		} else {
			logrus.WithFields(logrus.Fields{
				"category_id": category.ID,
				"error":       childResult.Message(),
			}).Warn("Không nạp được danh mục con, để nhánh rỗng")
		}
		nodes = append(nodes, node)
	}

	e.mu.Lock()
	e.nodes = nodes
	e.focus = treeFocus{}
	e.mu.Unlock()
	return Ok(struct{}{})
}

// Nodes trả về snapshot của cây hiện tại
func (e *TreeEditor) Nodes() []TreeNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]TreeNode, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// ToggleExpand đảo trạng thái mở/đóng của một danh mục. Không gọi mạng.
func (e *TreeEditor) ToggleExpand(categoryID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.nodes {
		if e.nodes[i].Category.ID == categoryID {
			e.nodes[i].Expanded = !e.nodes[i].Expanded
			return
		}
	}
}

// OpenAddCategory mở form thêm danh mục, đóng mọi form khác
func (e *TreeEditor) OpenAddCategory() {
	e.setFocus(treeFocus{kind: focusAddCategory})
}

// OpenEditCategory mở form sửa một danh mục, đóng mọi form khác
func (e *TreeEditor) OpenEditCategory(categoryID string) {
	e.setFocus(treeFocus{kind: focusEditCategory, categoryID: categoryID})
}

// OpenAddSubCategory mở form thêm danh mục con dưới một danh mục
func (e *TreeEditor) OpenAddSubCategory(categoryID string) {
	e.setFocus(treeFocus{kind: focusAddSubCategory, categoryID: categoryID})
}

// OpenEditSubCategory mở form sửa một danh mục con
func (e *TreeEditor) OpenEditSubCategory(categoryID, subCategoryID string) {
	e.setFocus(treeFocus{kind: focusEditSubCategory, categoryID: categoryID, subCategoryID: subCategoryID})
}

// CloseEditor đóng form đang mở (nếu có)
func (e *TreeEditor) CloseEditor() {
	e.setFocus(treeFocus{})
}

func (e *TreeEditor) setFocus(focus treeFocus) {
	e.mu.Lock()
	e.focus = focus
	e.mu.Unlock()
}

// OpenEditorCount đếm số form đang mở trên toàn cây (luôn là 0 hoặc 1)
func (e *TreeEditor) OpenEditorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.focus.kind == focusNone {
		return 0
	}
	return 1
}

// IsAddingCategory cho biết form thêm danh mục có đang mở không
func (e *TreeEditor) IsAddingCategory() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus.kind == focusAddCategory
}

// IsEditingCategory cho biết danh mục có đang ở chế độ sửa không
func (e *TreeEditor) IsEditingCategory(categoryID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus.kind == focusEditCategory && e.focus.categoryID == categoryID
}

// IsAddingSubCategory cho biết form thêm danh mục con của một danh mục có đang mở không
func (e *TreeEditor) IsAddingSubCategory(categoryID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus.kind == focusAddSubCategory && e.focus.categoryID == categoryID
}

// IsEditingSubCategory cho biết danh mục con có đang ở chế độ sửa không
func (e *TreeEditor) IsEditingSubCategory(subCategoryID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus.kind == focusEditSubCategory && e.focus.subCategoryID == subCategoryID
}

// validateName kiểm tra tên sau khi trim không rỗng.
// Không hợp lệ thì hiện thông báo chặn và KHÔNG có lời gọi mạng nào.
func (e *TreeEditor) validateName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		e.notify("Tên không được để trống")
		return "", false
	}
	return trimmed, true
}

// beginOp đánh dấu một mutation đang chạy; từ chối gọi lồng (chống double-submit)
func (e *TreeEditor) beginOp() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		e.notify("Thao tác trước chưa hoàn tất, vui lòng chờ")
		return false
	}
	e.inFlight = true
	return true
}

func (e *TreeEditor) endOp() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

// AddCategory tạo danh mục mới. Thành công: đóng form + nạp lại cây.
func (e *TreeEditor) AddCategory(ctx context.Context, name string) Result[struct{}] {
	trimmed, ok := e.validateName(name)
	if !ok {
		return Err[struct{}]("Tên không được để trống")
	}
	if !e.beginOp() {
		return Err[struct{}]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	createResult := e.categories.Create(ctx, CategoryPayload{Name: trimmed})
	if !createResult.IsOk() {
		e.notify(createResult.Message())
		return Err[struct{}](createResult.Message())
	}

	e.CloseEditor()
	return e.Load(ctx)
}

// SaveCategory lưu tên mới của một danh mục. Thành công: thoát chế độ sửa + nạp lại cây.
func (e *TreeEditor) SaveCategory(ctx context.Context, categoryID, name string) Result[struct{}] {
	trimmed, ok := e.validateName(name)
	if !ok {
		return Err[struct{}]("Tên không được để trống")
	}
	if !e.beginOp() {
		return Err[struct{}]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	updateResult := e.categories.Update(ctx, categoryID, CategoryPayload{Name: trimmed})
	if !updateResult.IsOk() {
		e.notify(updateResult.Message())
		return Err[struct{}](updateResult.Message())
	}

	e.CloseEditor()
	return e.Load(ctx)
}

// DeleteCategory xóa một danh mục sau bước xác nhận nêu rõ tên danh mục
// và cảnh báo các danh mục con cũng bị xóa theo. Từ chối xác nhận thì
// không có lời gọi mạng và không thay đổi trạng thái — Ok(false).
func (e *TreeEditor) DeleteCategory(ctx context.Context, categoryID string) Result[bool] {
	name := e.categoryName(categoryID)
	message := fmt.Sprintf("Xóa danh mục %q? Tất cả danh mục con của nó cũng sẽ bị xóa.", name)
	if !e.confirm(message) {
		return Ok(false)
	}

	if !e.beginOp() {
		return Err[bool]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	deleteResult := e.categories.Delete(ctx, categoryID)
	if !deleteResult.IsOk() {
		e.notify(deleteResult.Message())
		return Err[bool](deleteResult.Message())
	}

	if loadResult := e.Load(ctx); !loadResult.IsOk() {
		return Err[bool](loadResult.Message())
	}
	return Ok(true)
}

// AddSubCategory tạo danh mục con dưới một danh mục cha
func (e *TreeEditor) AddSubCategory(ctx context.Context, categoryID, name string) Result[struct{}] {
	trimmed, ok := e.validateName(name)
	if !ok {
		return Err[struct{}]("Tên không được để trống")
	}
	if !e.beginOp() {
		return Err[struct{}]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	createResult := e.subCategories.Create(ctx, SubCategoryPayload{CategoryID: categoryID, Name: trimmed})
	if !createResult.IsOk() {
		e.notify(createResult.Message())
		return Err[struct{}](createResult.Message())
	}

	e.CloseEditor()
	return e.Load(ctx)
}

// SaveSubCategory lưu tên mới của một danh mục con
func (e *TreeEditor) SaveSubCategory(ctx context.Context, subCategoryID, name string) Result[struct{}] {
	trimmed, ok := e.validateName(name)
	if !ok {
		return Err[struct{}]("Tên không được để trống")
	}
	if !e.beginOp() {
		return Err[struct{}]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	updateResult := e.subCategories.Update(ctx, subCategoryID, SubCategoryPayload{Name: trimmed})
	if !updateResult.IsOk() {
		e.notify(updateResult.Message())
		return Err[struct{}](updateResult.Message())
	}

	e.CloseEditor()
	return e.Load(ctx)
}

// DeleteSubCategory xóa một danh mục con sau bước xác nhận
func (e *TreeEditor) DeleteSubCategory(ctx context.Context, categoryID, subCategoryID string) Result[bool] {
	name := e.subCategoryName(categoryID, subCategoryID)
	message := fmt.Sprintf("Xóa danh mục con %q?", name)
	if !e.confirm(message) {
		return Ok(false)
	}

	if !e.beginOp() {
		return Err[bool]("Thao tác trước chưa hoàn tất")
	}
	defer e.endOp()

	deleteResult := e.subCategories.Delete(ctx, subCategoryID)
	if !deleteResult.IsOk() {
		e.notify(deleteResult.Message())
		return Err[bool](deleteResult.Message())
	}

	if loadResult := e.Load(ctx); !loadResult.IsOk() {
		return Err[bool](loadResult.Message())
	}
	return Ok(true)
}

func (e *TreeEditor) categoryName(categoryID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, node := range e.nodes {
		if node.Category.ID == categoryID {
			return node.Category.Name
		}
	}
	return categoryID
}

func (e *TreeEditor) subCategoryName(categoryID, subCategoryID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, node := range e.nodes {
		if node.Category.ID != categoryID {
			continue
		}
		for _, sub := range node.SubCategories {
			if sub.ID == subCategoryID {
				return sub.Name
			}
		}
	}
	return subCategoryID
}
