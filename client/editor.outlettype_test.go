package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOutletTypeBackend là store in-memory cho /outlet-types
type fakeOutletTypeBackend struct {
	mu       sync.Mutex
	items    []OutletType
	requests []string
	nextID   int
}

func (b *fakeOutletTypeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/outlet-types":
			categoryID := r.URL.Query().Get("categoryId")
			b.mu.Lock()
			items := []OutletType{}
			for _, item := range b.items {
				if categoryID == "" || item.CategoryID == categoryID {
					items = append(items, item)
				}
			}
			b.mu.Unlock()
			writeEnvelope(w, http.StatusOK, true, items, "")

		case r.Method == http.MethodPost && r.URL.Path == "/outlet-types":
			var payload OutletTypePayload
			json.NewDecoder(r.Body).Decode(&payload)
			b.mu.Lock()
			b.nextID++
			item := OutletType{
				ID:           fmt.Sprintf("ot-%d", b.nextID),
				CategoryID:   payload.CategoryID,
				Name:         payload.Name,
				Description:  payload.Description,
				DisplayOrder: payload.DisplayOrder,
				Active:       payload.Active == nil || *payload.Active,
			}
			b.items = append(b.items, item)
			b.mu.Unlock()
			writeEnvelope(w, http.StatusOK, true, item, "")

		case r.Method == http.MethodPut:
			id := r.URL.Path[len("/outlet-types/"):]
			var payload OutletTypePayload
			json.NewDecoder(r.Body).Decode(&payload)
			b.mu.Lock()
			defer b.mu.Unlock()
			for i := range b.items {
				if b.items[i].ID == id {
					b.items[i].Name = payload.Name
					b.items[i].CategoryID = payload.CategoryID
					b.items[i].DisplayOrder = payload.DisplayOrder
					if payload.Active != nil {
						b.items[i].Active = *payload.Active
					}
					writeEnvelope(w, http.StatusOK, true, b.items[i], "")
					return
				}
			}
			writeEnvelope(w, http.StatusNotFound, false, nil, "Không tìm thấy loại outlet")

		case r.Method == http.MethodDelete:
			id := r.URL.Path[len("/outlet-types/"):]
			b.mu.Lock()
			kept := b.items[:0]
			for _, item := range b.items {
				if item.ID != id {
					kept = append(kept, item)
				}
			}
			b.items = kept
			b.mu.Unlock()
			writeEnvelope(w, http.StatusOK, true, nil, "")
		}
	})
}

func newTestOutletTypeEditor(t *testing.T, confirmAnswer bool) (*OutletTypeEditor, *fakeOutletTypeBackend, *[]string) {
	t.Helper()

	backend := &fakeOutletTypeBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	service := NewOutletTypeService(NewTransport(server.URL, newTestSession(t), nil))
	notices := []string{}
	editor := NewOutletTypeEditor(service,
		func(message string) { notices = append(notices, message) },
		func(message string) bool { return confirmAnswer },
	)
	return editor, backend, &notices
}

func TestOutletTypeEditorSaveValidation(t *testing.T) {
	editor, backend, notices := newTestOutletTypeEditor(t, true)
	ctx := context.Background()

	editor.OpenAdd()
	editor.SetForm(OutletTypeForm{Name: "   ", CategoryID: "c1"})
	assert.False(t, editor.Save(ctx).IsOk(), "tên rỗng phải bị chặn")

	editor.SetForm(OutletTypeForm{Name: "Quán cà phê", CategoryID: ""})
	assert.False(t, editor.Save(ctx).IsOk(), "thiếu danh mục phải bị chặn")

	backend.mu.Lock()
	assert.Empty(t, backend.requests, "validate thất bại thì không có lời gọi mạng")
	backend.mu.Unlock()
	assert.Len(t, *notices, 2)
	assert.True(t, editor.FormOpen(), "form vẫn mở để người dùng sửa lại")
}

func TestOutletTypeEditorFilterAndDefaults(t *testing.T) {
	editor, backend, _ := newTestOutletTypeEditor(t, true)
	ctx := context.Background()

	backend.mu.Lock()
	backend.items = []OutletType{
		{ID: "ot-1", CategoryID: "c1", Name: "Quán cà phê", DisplayOrder: 1, Active: true},
		{ID: "ot-2", CategoryID: "c2", Name: "Tạp hóa", DisplayOrder: 1, Active: true},
	}
	backend.mu.Unlock()

	require.True(t, editor.Load(ctx).IsOk())
	assert.Len(t, editor.Items(), 2, "bộ lọc mặc định là tất cả danh mục")

	require.True(t, editor.SetFilter(ctx, "c1").IsOk())
	items := editor.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "ot-1", items[0].ID)

	// OpenAdd khi đang lọc cụ thể: danh mục của form lấy theo bộ lọc
	editor.OpenAdd()
	form := editor.Form()
	assert.Equal(t, "c1", form.CategoryID)
	assert.Equal(t, int64(1), form.DisplayOrder)
	assert.True(t, form.Active)

	// Về lại "tất cả" thì form mới không có danh mục mặc định
	require.True(t, editor.SetFilter(ctx, "").IsOk())
	assert.Equal(t, FilterAll, editor.Filter())
	editor.OpenAdd()
	assert.Empty(t, editor.Form().CategoryID)
}

func TestOutletTypeEditorSaveCreatesAndRefetches(t *testing.T) {
	editor, backend, _ := newTestOutletTypeEditor(t, true)
	ctx := context.Background()

	require.True(t, editor.Load(ctx).IsOk())
	editor.OpenAdd()
	editor.SetForm(OutletTypeForm{Name: "  Nhà hàng  ", CategoryID: "c1", DisplayOrder: 0, Active: true})

	require.True(t, editor.Save(ctx).IsOk())
	assert.False(t, editor.FormOpen(), "form đóng sau khi lưu thành công")

	items := editor.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Nhà hàng", items[0].Name, "tên được trim trước khi gửi")
	assert.Equal(t, int64(1), items[0].DisplayOrder, "thứ tự hiển thị tối thiểu là 1")

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.GreaterOrEqual(t, len(backend.requests), 3, "load + create + load lại")
}

func TestOutletTypeEditorEditPrePopulates(t *testing.T) {
	editor, backend, _ := newTestOutletTypeEditor(t, true)
	ctx := context.Background()

	backend.mu.Lock()
	backend.items = []OutletType{{ID: "ot-1", CategoryID: "c1", Name: "Quán cà phê", Description: "đồ uống", DisplayOrder: 2, Active: true}}
	backend.mu.Unlock()
	require.True(t, editor.Load(ctx).IsOk())

	editor.OpenEdit(editor.Items()[0])
	form := editor.Form()
	assert.Equal(t, "ot-1", form.ID)
	assert.Equal(t, "Quán cà phê", form.Name)
	assert.Equal(t, int64(2), form.DisplayOrder)

	// SetForm không được làm mất ID đang sửa
	form.Name = "Quán trà"
	form.ID = ""
	editor.SetForm(form)
	assert.Equal(t, "ot-1", editor.Form().ID)

	require.True(t, editor.Save(ctx).IsOk())
	assert.Equal(t, "Quán trà", editor.Items()[0].Name)
}

func TestOutletTypeEditorDeleteDeclined(t *testing.T) {
	editor, backend, _ := newTestOutletTypeEditor(t, false)
	ctx := context.Background()

	backend.mu.Lock()
	backend.items = []OutletType{{ID: "ot-1", CategoryID: "c1", Name: "Quán cà phê", DisplayOrder: 1, Active: true}}
	backend.mu.Unlock()
	require.True(t, editor.Load(ctx).IsOk())

	requestsBefore := len(backend.requests)
	result := editor.Delete(ctx, "ot-1")

	require.True(t, result.IsOk())
	assert.False(t, result.Data())
	backend.mu.Lock()
	assert.Len(t, backend.requests, requestsBefore, "từ chối xác nhận thì không gọi mạng")
	backend.mu.Unlock()
	assert.Len(t, editor.Items(), 1)
}
