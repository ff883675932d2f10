package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend là backend in-memory cho danh mục/danh mục con,
// trả về đúng envelope {success, data, message}.
type fakeBackend struct {
	mu            sync.Mutex
	categories    []Category
	subCategories []SubCategory
	failSubsFor   map[string]bool // categoryId -> trả 500 khi list danh mục con
	requests      []string        // "METHOD /path" theo thứ tự
	nextID        int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failSubsFor: map[string]bool{}}
}

func (b *fakeBackend) newID() string {
	b.nextID++
	return fmt.Sprintf("id-%d", b.nextID)
}

func (b *fakeBackend) requestCount(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, r := range b.requests {
		if strings.HasPrefix(r, prefix) {
			count++
		}
	}
	return count
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{"success": success}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	json.NewEncoder(w).Encode(body)
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			b.mu.Lock()
			items := append([]Category{}, b.categories...)
			b.mu.Unlock()
			writeEnvelope(w, http.StatusOK, true, items, "")
		case http.MethodPost:
			var payload CategoryPayload
			json.NewDecoder(r.Body).Decode(&payload)
			b.mu.Lock()
			item := Category{ID: b.newID(), Name: payload.Name, Active: true}
			b.categories = append(b.categories, item)
			b.mu.Unlock()
			writeEnvelope(w, http.StatusOK, true, item, "")
		}
	})

	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/categories/")
		b.mu.Lock()
		defer b.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			var payload CategoryPayload
			json.NewDecoder(r.Body).Decode(&payload)
			for i := range b.categories {
				if b.categories[i].ID == id {
					b.categories[i].Name = payload.Name
					writeEnvelope(w, http.StatusOK, true, b.categories[i], "")
					return
				}
			}
			writeEnvelope(w, http.StatusNotFound, false, nil, "Không tìm thấy danh mục")
		case http.MethodDelete:
			kept := b.categories[:0]
			for _, c := range b.categories {
				if c.ID != id {
					kept = append(kept, c)
				}
			}
			b.categories = kept
			keptSubs := b.subCategories[:0]
			for _, s := range b.subCategories {
				if s.CategoryID != id {
					keptSubs = append(keptSubs, s)
				}
			}
			b.subCategories = keptSubs
			writeEnvelope(w, http.StatusOK, true, nil, "")
		}
	})

	mux.HandleFunc("/subcategories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var payload SubCategoryPayload
		json.NewDecoder(r.Body).Decode(&payload)
		b.mu.Lock()
		item := SubCategory{ID: b.newID(), CategoryID: payload.CategoryID, Name: payload.Name, Active: true}
		b.subCategories = append(b.subCategories, item)
		b.mu.Unlock()
		writeEnvelope(w, http.StatusOK, true, item, "")
	})

	mux.HandleFunc("/subcategories/category/", func(w http.ResponseWriter, r *http.Request) {
		categoryID := strings.TrimPrefix(r.URL.Path, "/subcategories/category/")
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failSubsFor[categoryID] {
			writeEnvelope(w, http.StatusInternalServerError, false, nil, "Lỗi hệ thống")
			return
		}
		items := []SubCategory{}
		for _, s := range b.subCategories {
			if s.CategoryID == categoryID {
				items = append(items, s)
			}
		}
		writeEnvelope(w, http.StatusOK, true, items, "")
	})

	mux.HandleFunc("/subcategories/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/subcategories/")
		b.mu.Lock()
		defer b.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			var payload SubCategoryPayload
			json.NewDecoder(r.Body).Decode(&payload)
			for i := range b.subCategories {
				if b.subCategories[i].ID == id {
					b.subCategories[i].Name = payload.Name
					writeEnvelope(w, http.StatusOK, true, b.subCategories[i], "")
					return
				}
			}
			writeEnvelope(w, http.StatusNotFound, false, nil, "Không tìm thấy danh mục con")
		case http.MethodDelete:
			kept := b.subCategories[:0]
			for _, s := range b.subCategories {
				if s.ID != id {
					kept = append(kept, s)
				}
			}
			b.subCategories = kept
			writeEnvelope(w, http.StatusOK, true, nil, "")
		}
	})

	// Ghi lại mọi request để test đếm được số lời gọi mạng
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

// newTestTreeEditor dựng editor trỏ vào fake backend.
// Trả về editor, backend và con trỏ tới danh sách thông báo đã hiện.
func newTestTreeEditor(t *testing.T, confirmAnswer bool) (*TreeEditor, *fakeBackend, *[]string, *[]string) {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	session := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, session.Load())
	transport := NewTransport(server.URL, session, nil)

	notices := []string{}
	confirms := []string{}
	editor := NewTreeEditor(
		NewCategoryService(transport),
		NewSubCategoryService(transport),
		func(message string) { notices = append(notices, message) },
		func(message string) bool {
			confirms = append(confirms, message)
			return confirmAnswer
		},
	)
	return editor, backend, &notices, &confirms
}

func TestTreeEditorValidationGate(t *testing.T) {
	editor, backend, notices, _ := newTestTreeEditor(t, true)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t\n"} {
		result := editor.AddCategory(ctx, name)
		assert.False(t, result.IsOk(), "tên rỗng phải bị chặn: %q", name)
	}
	result := editor.SaveCategory(ctx, "id-1", "   ")
	assert.False(t, result.IsOk())
	subResult := editor.AddSubCategory(ctx, "id-1", "")
	assert.False(t, subResult.IsOk())

	// Không một lời gọi mạng nào được phép xảy ra
	backend.mu.Lock()
	assert.Empty(t, backend.requests)
	backend.mu.Unlock()
	assert.NotEmpty(t, *notices)
}

func TestTreeEditorSingleFocus(t *testing.T) {
	editor, _, _, _ := newTestTreeEditor(t, true)

	steps := []func(){
		func() { editor.OpenAddCategory() },
		func() { editor.OpenEditCategory("c1") },
		func() { editor.OpenAddSubCategory("c1") },
		func() { editor.OpenEditSubCategory("c1", "s1") },
		func() { editor.OpenAddCategory() },
		func() { editor.OpenEditSubCategory("c2", "s9") },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, 1, editor.OpenEditorCount(), "bước %d: chỉ được mở tối đa một form", i)
	}

	assert.True(t, editor.IsEditingSubCategory("s9"))
	assert.False(t, editor.IsAddingCategory(), "mở form khác phải đóng form thêm danh mục")

	editor.CloseEditor()
	assert.Equal(t, 0, editor.OpenEditorCount())
}

func TestTreeEditorCascadeConfirmDeclined(t *testing.T) {
	editor, backend, _, confirms := newTestTreeEditor(t, false)
	ctx := context.Background()

	createResult := editor.categories.Create(ctx, CategoryPayload{Name: "Ăn uống"})
	require.True(t, createResult.IsOk())
	require.True(t, editor.Load(ctx).IsOk())
	categoryID := createResult.Data().ID

	deleteRequestsBefore := backend.requestCount("DELETE")
	result := editor.DeleteCategory(ctx, categoryID)

	require.True(t, result.IsOk())
	assert.False(t, result.Data(), "từ chối xác nhận thì không xóa")
	assert.Equal(t, deleteRequestsBefore, backend.requestCount("DELETE"), "không được gọi DELETE khi từ chối")
	require.Len(t, *confirms, 1)
	assert.Contains(t, (*confirms)[0], "Ăn uống", "thông điệp xác nhận phải nêu tên danh mục")
	assert.Contains(t, (*confirms)[0], "danh mục con", "phải cảnh báo danh mục con bị xóa theo")
	assert.Len(t, editor.Nodes(), 1, "trạng thái cây không đổi")
}

func TestTreeEditorPartialLoadTolerance(t *testing.T) {
	editor, backend, _, _ := newTestTreeEditor(t, true)
	ctx := context.Background()

	backend.mu.Lock()
	backend.categories = []Category{
		{ID: "c1", Name: "A", Active: true},
		{ID: "c2", Name: "B", Active: true},
		{ID: "c3", Name: "C", Active: true},
	}
	backend.subCategories = []SubCategory{
		{ID: "s1", CategoryID: "c1", Name: "A1", Active: true},
		{ID: "s2", CategoryID: "c2", Name: "B1", Active: true},
	}
	backend.failSubsFor["c2"] = true
	backend.mu.Unlock()

	result := editor.Load(ctx)
	require.True(t, result.IsOk(), "một nhánh hỏng không được làm hỏng cả trang")

	nodes := editor.Nodes()
	require.Len(t, nodes, 3, "đủ cả 3 danh mục")
	for _, node := range nodes {
		assert.False(t, node.Expanded, "mọi node phải đóng sau khi nạp")
		switch node.Category.ID {
		case "c1":
			assert.Len(t, node.SubCategories, 1)
		case "c2":
			assert.Empty(t, node.SubCategories, "nhánh hỏng phải rỗng thay vì lỗi")
		}
	}
}

func TestTreeEditorRefetchAfterMutation(t *testing.T) {
	editor, backend, _, _ := newTestTreeEditor(t, true)
	ctx := context.Background()

	require.True(t, editor.Load(ctx).IsOk())
	listCallsBefore := backend.requestCount("GET /categories")

	result := editor.AddCategory(ctx, "Bán lẻ")
	require.True(t, result.IsOk())

	assert.Greater(t, backend.requestCount("GET /categories"), listCallsBefore,
		"sau mutation phải nạp lại từ server, không vá cục bộ")
	nodes := editor.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "Bán lẻ", nodes[0].Category.Name)
	assert.Equal(t, 0, editor.OpenEditorCount(), "form phải đóng sau khi lưu thành công")
}

func TestTreeEditorExpandResetOnLoad(t *testing.T) {
	editor, backend, _, _ := newTestTreeEditor(t, true)
	ctx := context.Background()

	backend.mu.Lock()
	backend.categories = []Category{{ID: "c1", Name: "A", Active: true}}
	backend.mu.Unlock()

	require.True(t, editor.Load(ctx).IsOk())
	editor.ToggleExpand("c1")
	require.True(t, editor.Nodes()[0].Expanded)

	require.True(t, editor.Load(ctx).IsOk())
	assert.False(t, editor.Nodes()[0].Expanded, "nạp lại phải reset trạng thái mở")
}

func TestTreeEditorRoundTrip(t *testing.T) {
	editor, _, _, _ := newTestTreeEditor(t, true)
	ctx := context.Background()

	require.True(t, editor.AddCategory(ctx, "Beverages").IsOk())

	nodes := editor.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "Beverages", nodes[0].Category.Name)
	assert.True(t, nodes[0].Category.Active)

	require.True(t, editor.AddSubCategory(ctx, nodes[0].Category.ID, "Soft Drinks").IsOk())

	nodes = editor.Nodes()
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].SubCategories, 1)
	assert.Equal(t, "Soft Drinks", nodes[0].SubCategories[0].Name)
	assert.Equal(t, nodes[0].Category.ID, nodes[0].SubCategories[0].CategoryID)
}

func TestTreeEditorDoubleSubmitGuard(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			close(started)
			<-release
			writeEnvelope(w, http.StatusOK, true, Category{ID: "c1", Name: "A", Active: true}, "")
			return
		}
		writeEnvelope(w, http.StatusOK, true, []Category{{ID: "c1", Name: "A", Active: true}}, "")
	}))
	defer server.Close()

	transport := NewTransport(server.URL, newTestSession(t), nil)
	notices := []string{}
	var noticesMu sync.Mutex
	editor := NewTreeEditor(
		NewCategoryService(transport),
		NewSubCategoryService(transport),
		func(message string) {
			noticesMu.Lock()
			notices = append(notices, message)
			noticesMu.Unlock()
		},
		nil,
	)
	ctx := context.Background()

	done := make(chan Result[struct{}], 1)
	go func() { done <- editor.AddCategory(ctx, "A") }()
	<-started

	// Submit thứ hai trong lúc cái đầu còn đang chạy phải bị từ chối ngay
	second := editor.AddCategory(ctx, "B")
	assert.False(t, second.IsOk())
	assert.Contains(t, second.Message(), "chưa hoàn tất")
	noticesMu.Lock()
	assert.NotEmpty(t, notices)
	noticesMu.Unlock()

	close(release)
	first := <-done
	assert.True(t, first.IsOk(), "submit đầu vẫn hoàn tất bình thường")
}

func TestTreeEditorDeleteCascadesOnConfirm(t *testing.T) {
	editor, _, _, _ := newTestTreeEditor(t, true)
	ctx := context.Background()

	require.True(t, editor.AddCategory(ctx, "Ăn uống").IsOk())
	categoryID := editor.Nodes()[0].Category.ID
	require.True(t, editor.AddSubCategory(ctx, categoryID, "Đồ uống").IsOk())

	result := editor.DeleteCategory(ctx, categoryID)
	require.True(t, result.IsOk())
	assert.True(t, result.Data())
	assert.Empty(t, editor.Nodes(), "danh mục và con của nó phải biến mất sau khi nạp lại")
}
