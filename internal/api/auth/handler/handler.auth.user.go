// Package authhdl - handler cho domain auth: đăng nhập, refresh, logout,
// thông tin phiên hiện tại và quản trị người dùng.
package authhdl

import (
	"fmt"

	authdto "outlet_admin/internal/api/auth/dto"
	models "outlet_admin/internal/api/auth/models"
	authsvc "outlet_admin/internal/api/auth/service"
	basehdl "outlet_admin/internal/api/base/handler"
	"outlet_admin/internal/common"
	"outlet_admin/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler xử lý các route xác thực phiên (/auth/...)
type AuthHandler struct {
	*basehdl.BaseHandler[models.User, authdto.RegisterInput, authdto.UserUpdateInput]
	userService *authsvc.UserService
}

// NewAuthHandler tạo mới AuthHandler
func NewAuthHandler() (*AuthHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &AuthHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.RegisterInput, authdto.UserUpdateInput](userService),
		userService: userService,
	}, nil
}

// Login xử lý POST /auth/login: xác thực email + mật khẩu,
// trả về {accessToken, refreshToken, user}.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.userService.Login(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Register xử lý POST /auth/register: tạo người dùng mới
// (người dùng đầu tiên trở thành admin).
func (h *AuthHandler) Register(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.Register(c.Context(), &input)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// Refresh xử lý POST /auth/refresh: cấp access token mới từ refresh token
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RefreshInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.userService.RefreshAccessToken(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Logout xử lý POST /auth/logout: thu hồi toàn bộ token của user hiện tại
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		err := h.userService.Logout(c.Context(), user.ID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// Me xử lý GET /auth/me: trả về thông tin user của phiên hiện tại
func (h *AuthHandler) Me(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// VerifyAdmin xử lý GET /auth/verify-admin: 200 khi user hiện tại có role admin,
// 403 khi không. Client dùng để gác màn hình quản trị.
func (h *AuthHandler) VerifyAdmin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		if user.Role != models.RoleAdmin {
			h.HandleResponse(c, nil, common.ErrNotAdmin)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"isAdmin": true}, nil)
		return nil
	})
}

// FindWithPagination xử lý GET /users?page=&limit=&search=: danh sách người dùng
// phân trang, search khớp name hoặc email (regex, không phân biệt hoa thường).
func (h *AuthHandler) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter := utility.BuildSearchFilter(c.Query("search", ""), "name", "email")

		page, limit := h.ParsePagination(c)
		result, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, nil)
		return basehdl.HandlePaginatedResponse(c, result, err)
	})
}

// Block xử lý PUT /users/:id/block: khóa người dùng kèm ghi chú
func (h *AuthHandler) Block(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input authdto.BlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.BlockUser(c.Context(), id, input.Note)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// UnBlock xử lý PUT /users/:id/unblock: mở khóa người dùng
func (h *AuthHandler) UnBlock(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.UnBlockUser(c.Context(), id)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// DeleteById xử lý DELETE /users/:id: không cho user tự xóa chính mình
func (h *AuthHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if current, ok := c.Locals("user").(models.User); ok && current.ID == id {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeBusinessOperation,
				"Không thể tự xóa tài khoản đang đăng nhập",
				common.StatusConflict,
				nil,
			))
			return nil
		}

		err = h.BaseService.DeleteById(c.Context(), id)
		h.HandleResponse(c, nil, err)
		return nil
	})
}
