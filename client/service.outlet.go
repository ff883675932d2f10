package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// FilterAll là giá trị sentinel của bộ lọc category: không lọc gì cả
const FilterAll = "all"

// OutletType là loại outlet nhìn từ phía client
type OutletType struct {
	ID           string `json:"id"`
	CategoryID   string `json:"categoryId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int64  `json:"displayOrder"`
	Active       bool   `json:"active"`
}

// OutletTypePayload là body gửi lên khi tạo/cập nhật loại outlet
type OutletTypePayload struct {
	CategoryID   string `json:"categoryId,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int64  `json:"displayOrder,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// OutletTypeService gọi các endpoint /outlet-types
type OutletTypeService struct {
	transport *Transport
	mutation  sync.Mutex
}

// NewOutletTypeService tạo service loại outlet
func NewOutletTypeService(transport *Transport) *OutletTypeService {
	return &OutletTypeService{transport: transport}
}

// List lấy danh sách loại outlet. categoryID rỗng hoặc FilterAll
// thì bỏ tham số lọc (trả về toàn bộ).
func (s *OutletTypeService) List(ctx context.Context, categoryID string) Result[[]OutletType] {
	var query url.Values
	if categoryID != "" && categoryID != FilterAll {
		query = url.Values{"categoryId": []string{categoryID}}
	}

	env, err := s.transport.do(ctx, http.MethodGet, "/outlet-types", query, nil)
	if err != nil {
		return Err[[]OutletType](err.Error())
	}
	items, err := decodeData[[]OutletType](env)
	if err != nil {
		return Err[[]OutletType](err.Error())
	}
	return Ok(items)
}

// Create tạo loại outlet mới
func (s *OutletTypeService) Create(ctx context.Context, payload OutletTypePayload) Result[OutletType] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPost, "/outlet-types", nil, payload)
	if err != nil {
		return Err[OutletType](err.Error())
	}
	item, err := decodeData[OutletType](env)
	if err != nil {
		return Err[OutletType](err.Error())
	}
	return Ok(item)
}

// Update cập nhật một loại outlet
func (s *OutletTypeService) Update(ctx context.Context, id string, payload OutletTypePayload) Result[OutletType] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPut, "/outlet-types/"+id, nil, payload)
	if err != nil {
		return Err[OutletType](err.Error())
	}
	item, err := decodeData[OutletType](env)
	if err != nil {
		return Err[OutletType](err.Error())
	}
	return Ok(item)
}

// Delete xóa một loại outlet
func (s *OutletTypeService) Delete(ctx context.Context, id string) Result[struct{}] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	if _, err := s.transport.do(ctx, http.MethodDelete, "/outlet-types/"+id, nil, nil); err != nil {
		return Err[struct{}](err.Error())
	}
	return Ok(struct{}{})
}

// Outlet là điểm bán nhìn từ phía client
type Outlet struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerName    string `json:"ownerName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	OutletTypeID string `json:"outletTypeId,omitempty"`
	Active       bool   `json:"active"`
}

// OutletPage là một trang kết quả outlet kèm tổng số
type OutletPage struct {
	Items []Outlet
	Total int64
	Pages int64
}

// OutletPayload là body cập nhật outlet (dashboard không tạo outlet)
type OutletPayload struct {
	Name         string `json:"name,omitempty"`
	OwnerName    string `json:"ownerName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	OutletTypeID string `json:"outletTypeId,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// OutletService gọi các endpoint /outlets. Không có Create.
type OutletService struct {
	transport *Transport
	mutation  sync.Mutex
}

// NewOutletService tạo service outlet
func NewOutletService(transport *Transport) *OutletService {
	return &OutletService{transport: transport}
}

// List lấy một trang outlet, search khớp tên hoặc số điện thoại
func (s *OutletService) List(ctx context.Context, page, limit int64, search string) Result[OutletPage] {
	query := url.Values{
		"page":  []string{strconv.FormatInt(page, 10)},
		"limit": []string{strconv.FormatInt(limit, 10)},
	}
	if search != "" {
		query.Set("search", search)
	}

	env, err := s.transport.do(ctx, http.MethodGet, "/outlets", query, nil)
	if err != nil {
		return Err[OutletPage](err.Error())
	}
	items, err := decodeData[[]Outlet](env)
	if err != nil {
		return Err[OutletPage](err.Error())
	}

	result := OutletPage{Items: items}
	if env.Total != nil {
		result.Total = *env.Total
	}
	if env.Pages != nil {
		result.Pages = *env.Pages
	}
	return Ok(result)
}

// Update cập nhật một outlet
func (s *OutletService) Update(ctx context.Context, id string, payload OutletPayload) Result[Outlet] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	env, err := s.transport.do(ctx, http.MethodPut, "/outlets/"+id, nil, payload)
	if err != nil {
		return Err[Outlet](err.Error())
	}
	item, err := decodeData[Outlet](env)
	if err != nil {
		return Err[Outlet](err.Error())
	}
	return Ok(item)
}

// Delete xóa một outlet
func (s *OutletService) Delete(ctx context.Context, id string) Result[struct{}] {
	s.mutation.Lock()
	defer s.mutation.Unlock()

	if _, err := s.transport.do(ctx, http.MethodDelete, "/outlets/"+id, nil, nil); err != nil {
		return Err[struct{}](err.Error())
	}
	return Ok(struct{}{})
}
