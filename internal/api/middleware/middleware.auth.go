package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	authmodels "outlet_admin/internal/api/auth/models"
	authsvc "outlet_admin/internal/api/auth/service"
	"outlet_admin/internal/api/events"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"
	"outlet_admin/internal/logger"
	"outlet_admin/internal/utility"
)

// AuthManager quản lý xác thực người dùng cho middleware
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	manager := &AuthManager{
		UserCRUD: userService,
		// Cache user theo token với thời gian sống 5 phút, dọn dẹp mỗi 10 phút
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}

	// User bị sửa/khóa/xóa thì bản cache theo token phải chết ngay,
	// không chờ hết TTL — block và đổi role có hiệu lực tức thì.
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		manager.onUserDataChanged(e)
	})

	return manager, nil
}

// onUserDataChanged vô hiệu hóa cache token khi collection users thay đổi.
// Document của event là bản ghi SAU khi thay đổi: token vừa bị thu hồi (logout,
// block) không còn trên đó nữa, nên không thể xóa nhắm từng key theo token —
// xóa cả cache. Collection users nhỏ nên chi phí nạp lại không đáng kể.
func (am *AuthManager) onUserDataChanged(e events.DataChangeEvent) {
	if e.CollectionName != global.MongoDB_ColNames.Users {
		return
	}
	am.Cache.Flush()
}

// findUserByAccessToken tìm user đang giữ access token này (cache trước, database sau).
// Token đã bị revoke (logout) sẽ không còn trong document user → trả về lỗi.
func (am *AuthManager) findUserByAccessToken(ctx context.Context, token string) (authmodels.User, error) {
	cacheKey := "auth_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		if user, ok := cached.(authmodels.User); ok {
			return user, nil
		}
	}

	user, err := am.UserCRUD.FindOne(ctx, bson.M{"token": token}, nil)
	if err != nil {
		// Token cũ có thể còn trong mảng tokens (đăng nhập từ nhiều thiết bị)
		user, err = am.UserCRUD.FindOne(ctx, bson.M{"tokens.jwtToken": token}, nil)
		if err != nil {
			return authmodels.User{}, err
		}
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// InvalidateToken xóa token khỏi cache (gọi khi logout)
func (am *AuthManager) InvalidateToken(token string) {
	am.Cache.Delete("auth_token:" + token)
}

// AuthMiddleware middleware xác thực bearer token cho Fiber.
// Token thiếu/sai định dạng/hết hạn/đã revoke đều trả về 401 với mã lỗi AUTH_xxx.
// Khi hợp lệ: lưu userID và user vào Locals cho handler phía sau.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authManager := GetAuthManager()

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		token := parts[1]

		// Xác thực chữ ký và hạn token trước khi chạm database
		userID, tokenType, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}
		if tokenType != utility.TokenTypeAccess {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Token phải còn được user giữ (chưa logout)
		user, err := authManager.findUserByAccessToken(c.Context(), token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		if user.ID.Hex() != userID {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		c.Locals("userID", user.ID.Hex())
		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin middleware chặn các route mutation: chỉ user role admin được đi tiếp.
// Phải đứng sau AuthMiddleware (đọc user từ Locals).
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		user, ok := c.Locals("user").(authmodels.User)
		if !ok {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}
		if user.Role != authmodels.RoleAdmin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":    user.ID.Hex(),
				"user_email": user.Email,
				"path":       c.Path(),
			}).Warn("❌ [AUTH] User is not admin, denying access")
			HandleErrorResponse(c, common.ErrNotAdmin)
			return nil
		}
		return c.Next()
	}
}
