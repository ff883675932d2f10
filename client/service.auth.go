package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// LoginData là dữ liệu trả về khi đăng nhập thành công
type LoginData struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         SessionUser `json:"user"`
}

// AuthService gọi các endpoint /auth và cập nhật SessionStore
type AuthService struct {
	transport *Transport
	session   *SessionStore
}

// NewAuthService tạo service auth
func NewAuthService(transport *Transport, session *SessionStore) *AuthService {
	return &AuthService{transport: transport, session: session}
}

// Login đăng nhập bằng email + mật khẩu. Thành công thì lưu cả user
// và cặp token vào session store.
func (s *AuthService) Login(ctx context.Context, email, password string) Result[LoginData] {
	body := map[string]string{"email": email, "password": password}
	env, err := s.transport.do(ctx, http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return Err[LoginData](err.Error())
	}
	data, err := decodeData[LoginData](env)
	if err != nil {
		return Err[LoginData](err.Error())
	}
	if err := s.session.Set(&data.User, data.AccessToken, data.RefreshToken); err != nil {
		return Err[LoginData](err.Error())
	}
	return Ok(data)
}

// VerifyAdmin kiểm tra user hiện tại có role admin không.
// Server trả 403 khi không phải admin; 401 đi qua hook toàn cục như mọi call khác.
func (s *AuthService) VerifyAdmin(ctx context.Context) Result[bool] {
	if _, err := s.transport.do(ctx, http.MethodGet, "/auth/verify-admin", nil, nil); err != nil {
		return Err[bool](err.Error())
	}
	return Ok(true)
}

// Logout thu hồi token phía server rồi xóa phiên cục bộ.
// Phiên cục bộ được xóa kể cả khi lời gọi server thất bại.
func (s *AuthService) Logout(ctx context.Context) Result[struct{}] {
	_, err := s.transport.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	s.session.Clear()
	if err != nil {
		return Err[struct{}](err.Error())
	}
	return Ok(struct{}{})
}

// UserPage là một trang người dùng kèm tổng số
type UserPage struct {
	Items []SessionUser
	Total int64
	Pages int64
}

// UserService gọi các endpoint /users (quản trị người dùng)
type UserService struct {
	transport *Transport
}

// NewUserService tạo service người dùng
func NewUserService(transport *Transport) *UserService {
	return &UserService{transport: transport}
}

// List lấy một trang người dùng, search khớp tên hoặc email
func (s *UserService) List(ctx context.Context, page, limit int64, search string) Result[UserPage] {
	query := url.Values{
		"page":  []string{strconv.FormatInt(page, 10)},
		"limit": []string{strconv.FormatInt(limit, 10)},
	}
	if search != "" {
		query.Set("search", search)
	}

	env, err := s.transport.do(ctx, http.MethodGet, "/users", query, nil)
	if err != nil {
		return Err[UserPage](err.Error())
	}
	items, err := decodeData[[]SessionUser](env)
	if err != nil {
		return Err[UserPage](err.Error())
	}

	result := UserPage{Items: items}
	if env.Total != nil {
		result.Total = *env.Total
	}
	if env.Pages != nil {
		result.Pages = *env.Pages
	}
	return Ok(result)
}

// DashboardStats là số liệu tổng quan của màn hình dashboard
type DashboardStats struct {
	TotalUsers         int64    `json:"totalUsers"`
	TotalCategories    int64    `json:"totalCategories"`
	TotalSubCategories int64    `json:"totalSubCategories"`
	TotalOutletTypes   int64    `json:"totalOutletTypes"`
	TotalOutlets       int64    `json:"totalOutlets"`
	ActiveOutlets      int64    `json:"activeOutlets"`
	RecentOutlets      []Outlet `json:"recentOutlets"`
}

// DashboardService gọi endpoint thống kê dashboard
type DashboardService struct {
	transport *Transport
}

// NewDashboardService tạo service dashboard
func NewDashboardService(transport *Transport) *DashboardService {
	return &DashboardService{transport: transport}
}

// Stats lấy số liệu tổng quan
func (s *DashboardService) Stats(ctx context.Context) Result[DashboardStats] {
	env, err := s.transport.do(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil)
	if err != nil {
		return Err[DashboardStats](err.Error())
	}
	stats, err := decodeData[DashboardStats](env)
	if err != nil {
		return Err[DashboardStats](err.Error())
	}
	return Ok(stats)
}
