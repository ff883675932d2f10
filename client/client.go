package client

// Client gom tất cả service theo collection quanh một transport
// và một session store chia sẻ.
type Client struct {
	Session       *SessionStore
	Transport     *Transport
	Auth          *AuthService
	Categories    *CategoryService
	SubCategories *SubCategoryService
	OutletTypes   *OutletTypeService
	Outlets       *OutletService
	Users         *UserService
	Dashboard     *DashboardService
}

// New tạo client trỏ tới baseURL (ví dụ "http://localhost:8080/api/v1").
// sessionPath là file JSON lưu phiên; onUnauthorized chạy khi bất kỳ
// response nào trả về 401 (sau khi phiên đã bị xóa).
func New(baseURL, sessionPath string, onUnauthorized func()) (*Client, error) {
	session := NewSessionStore(sessionPath)
	if err := session.Load(); err != nil {
		return nil, err
	}

	transport := NewTransport(baseURL, session, onUnauthorized)
	return &Client{
		Session:       session,
		Transport:     transport,
		Auth:          NewAuthService(transport, session),
		Categories:    NewCategoryService(transport),
		SubCategories: NewSubCategoryService(transport),
		OutletTypes:   NewOutletTypeService(transport),
		Outlets:       NewOutletService(transport),
		Users:         NewUserService(transport),
		Dashboard:     NewDashboardService(transport),
	}, nil
}
