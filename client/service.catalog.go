package client

import (
	"context"
	"net/http"
	"sync"
)

// Category là danh mục gốc nhìn từ phía client
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// SubCategory là danh mục con nhìn từ phía client
type SubCategory struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// CategoryPayload là body gửi lên khi tạo/cập nhật danh mục
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryService gọi các endpoint /categories.
// Mutation được tuần tự hóa theo collection qua mutex (hai mutation
// song song trên cùng collection xếp hàng thay vì đua nhau).
type CategoryService struct {
	transport *Transport
	mutation  sync.Mutex
}

// NewCategoryService tạo service danh mục
func NewCategoryService(transport *Transport) *CategoryService {
	return &CategoryService{transport: transport}
}

// List lấy toàn bộ danh mục
func (s *CategoryService) List(ctx context.Context) Result[[]Category] {
	env, err := s.transport.do(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return Err[[]Category](err.Error())
	}
	items, err := decodeData[[]Category](env)
	if err != nil {
		return Err[[]Category](err.Error())
	}
	return Ok(items)
}

// Create tạo danh mục mới
func (s *CategoryService) Create(ctx context.Context, payload CategoryPayload) Result[Category] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPost, "/categories", nil, payload)
	if err != nil {
		return Err[Category](err.Error())
	}
	item, err := decodeData[Category](env)
	if err != nil {
		return Err[Category](err.Error())
	}
	return Ok(item)
}

// Update cập nhật một danh mục
func (s *CategoryService) Update(ctx context.Context, id string, payload CategoryPayload) Result[Category] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPut, "/categories/"+id, nil, payload)
	if err != nil {
		return Err[Category](err.Error())
	}
	item, err := decodeData[Category](env)
	if err != nil {
		return Err[Category](err.Error())
	}
	return Ok(item)
}

// Delete xóa một danh mục (server xóa theo các danh mục con)
func (s *CategoryService) Delete(ctx context.Context, id string) Result[struct{}] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	if _, err := s.transport.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil); err != nil {
		return Err[struct{}](err.Error())
	}
	return Ok(struct{}{})
}

// SubCategoryPayload là body gửi lên khi tạo/cập nhật danh mục con
type SubCategoryPayload struct {
	CategoryID string `json:"categoryId,omitempty"`
	Name       string `json:"name"`
}

// SubCategoryService gọi các endpoint /subcategories
type SubCategoryService struct {
	transport *Transport
	mutation  sync.Mutex
}

// NewSubCategoryService tạo service danh mục con
func NewSubCategoryService(transport *Transport) *SubCategoryService {
	return &SubCategoryService{transport: transport}
}

// ListByCategory lấy danh mục con của một danh mục cha
func (s *SubCategoryService) ListByCategory(ctx context.Context, categoryID string) Result[[]SubCategory] {
	env, err := s.transport.do(ctx, http.MethodGet, "/subcategories/category/"+categoryID, nil, nil)
	if err != nil {
		return Err[[]SubCategory](err.Error())
	}
	items, err := decodeData[[]SubCategory](env)
	if err != nil {
		return Err[[]SubCategory](err.Error())
	}
	return Ok(items)
}

// Create tạo danh mục con thuộc một danh mục cha
func (s *SubCategoryService) Create(ctx context.Context, payload SubCategoryPayload) Result[SubCategory] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPost, "/subcategories", nil, payload)
	if err != nil {
		return Err[SubCategory](err.Error())
	}
	item, err := decodeData[SubCategory](env)
	if err != nil {
		return Err[SubCategory](err.Error())
	}
	return Ok(item)
}

// Update cập nhật một danh mục con
func (s *SubCategoryService) Update(ctx context.Context, id string, payload SubCategoryPayload) Result[SubCategory] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPut, "/subcategories/"+id, nil, payload)
	if err != nil {
		return Err[SubCategory](err.Error())
	}
	item, err := decodeData[SubCategory](env)
	if err != nil {
		return Err[SubCategory](err.Error())
	}
	return Ok(item)
}

// Delete xóa một danh mục con
func (s *SubCategoryService) Delete(ctx context.Context, id string) Result[struct{}] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	if _, err := s.transport.do(ctx, http.MethodDelete, "/subcategories/"+id, nil, nil); err != nil {
		return Err[struct{}](err.Error())
	}
	return Ok(struct{}{})
}
