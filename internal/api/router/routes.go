package router

import (
	"github.com/gofiber/fiber/v3"

	"outlet_admin/internal/api/middleware"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có bug với cách đăng ký middleware trực tiếp trong route:
// middleware sẽ KHÔNG được gọi nếu truyền thẳng vào router.Get/Post/Put/Delete.
//
// ❌ CÁCH SAI:  router.Get("/path", middleware.AuthMiddleware(), handler)
// ✅ CÁCH ĐÚNG: RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path",
//               []fiber.Handler{authMiddleware}, handler)
//               → middleware được gắn qua .Use() trên group
//
// Mọi route mới PHẢI đăng ký qua RegisterRouteWithMiddleware.
// ============================================================================

// CRUDHandler định nghĩa interface cho các handler CRUD mà base handler cung cấp
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
	CascadeInfo(c fiber.Ctx) error

	// Update / Delete
	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection
type CRUDConfig struct {
	Create      bool // POST ""
	List        bool // GET "" trả về toàn bộ danh sách
	ListPaged   bool // GET "" trả về trang (?page=&limit=) — loại trừ với List
	GetById     bool // GET "/:id"
	Update      bool // PUT "/:id"
	Delete      bool // DELETE "/:id"
	Count       bool // GET "/count"
	CascadeInfo bool // GET "/:id/cascade" — số bản ghi con sẽ bị xóa theo
}

// Config cho từng collection. Các domain dùng chung các config dưới đây.
var (
	// ReadWriteConfig cho phép đầy đủ CRUD, danh sách không phân trang (catalog nhỏ).
	ReadWriteConfig = CRUDConfig{
		Create: true, List: true, GetById: true,
		Update: true, Delete: true, Count: true,
	}

	// ReadWriteCascadeConfig như ReadWriteConfig, thêm endpoint đếm con cascade
	// (màn hình xác nhận xóa phía client).
	ReadWriteCascadeConfig = CRUDConfig{
		Create: true, List: true, GetById: true,
		Update: true, Delete: true, Count: true, CascadeInfo: true,
	}

	// PagedNoCreateConfig cho các collection chỉ sửa/xóa qua admin, tạo qua kênh khác
	// (outlet đăng ký từ app riêng, user tạo qua auth). Danh sách phân trang.
	PagedNoCreateConfig = CRUDConfig{
		ListPaged: true, GetById: true,
		Update: true, Delete: true, Count: true,
	}
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{app: app}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() trên group
// (cách đúng theo Fiber v3 — xem comment ở đầu file). Dùng từ domain router.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes đăng ký các route CRUD RESTful cho một collection.
// Mọi route yêu cầu đăng nhập; các route mutation thêm RequireAdmin.
// Route tĩnh của domain (vd /stats) phải được domain router đăng ký TRƯỚC
// khi gọi hàm này để không bị "/:id" nuốt.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.RequireAdmin()

	readChain := []fiber.Handler{authMiddleware}
	writeChain := []fiber.Handler{authMiddleware, adminMiddleware}

	// Read
	if config.List {
		RegisterRouteWithMiddleware(router, prefix, "GET", "", readChain, h.Find)
	}
	if config.ListPaged {
		RegisterRouteWithMiddleware(router, prefix, "GET", "", readChain, h.FindWithPagination)
	}
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", readChain, h.CountDocuments)
	}
	if config.CascadeInfo {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/:id/cascade", readChain, h.CascadeInfo)
	}
	if config.GetById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/:id", readChain, h.FindOneById)
	}

	// Create / Update / Delete — chỉ admin
	if config.Create {
		RegisterRouteWithMiddleware(router, prefix, "POST", "", writeChain, h.InsertOne)
	}
	if config.Update {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/:id", writeChain, h.UpdateById)
	}
	if config.Delete {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/:id", writeChain, h.DeleteById)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
