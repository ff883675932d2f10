// Package authsvc - service người dùng quản trị (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"

	authdto "outlet_admin/internal/api/auth/dto"
	models "outlet_admin/internal/api/auth/models"
	basesvc "outlet_admin/internal/api/base/service"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"
	"outlet_admin/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginResult là kết quả đăng nhập trả về cho client
type LoginResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Register đăng ký người dùng mới. Người dùng đầu tiên của hệ thống được gán role admin,
// các người dùng sau mặc định role staff.
func (s *UserService) Register(ctx context.Context, input *authdto.RegisterInput) (models.User, error) {
	var zero models.User

	count, err := s.CountDocuments(ctx, nil)
	if err != nil {
		return zero, err
	}

	hash, err := utility.HashPassword(input.Password)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}

	role := models.RoleStaff
	if count == 0 {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		PasswordHash: hash,
	}
	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return zero, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID.Hex(),
		"email":   created.Email,
		"role":    created.Role,
	}).Info("✅ [AUTH] Đã đăng ký người dùng mới")
	return created, nil
}

// Login xác thực email + mật khẩu và phát hành cặp access/refresh token.
// Access token mới được lưu vào user (field token + mảng tokens) để middleware
// kiểm tra revocation; refresh token được lưu riêng.
func (s *UserService) Login(ctx context.Context, input *authdto.LoginInput) (*LoginResult, error) {
	user, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utility.ComparePassword(user.PasswordHash, input.Password); err != nil {
		logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("❌ [AUTH] Sai mật khẩu")
		return nil, common.ErrInvalidCredentials
	}

	if user.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+user.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	cfg := global.MongoDB_ServerConfig
	accessToken, err := utility.CreateToken(cfg.JwtSecret, user.ID.Hex(), utility.TokenTypeAccess, cfg.AccessTokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể phát hành token", common.StatusInternalServerError, err)
	}
	refreshToken, err := utility.CreateToken(cfg.JwtSecret, user.ID.Hex(), utility.TokenTypeRefresh, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể phát hành token", common.StatusInternalServerError, err)
	}

	tokens := append(user.Tokens, models.Token{JwtToken: accessToken, IssuedAt: utility.CurrentTimeInMilli()})
	// Chỉ giữ tối đa 5 token gần nhất cho mỗi user
	if len(tokens) > 5 {
		tokens = tokens[len(tokens)-5:]
	}

	updated, err := s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":        accessToken,
			"refreshToken": refreshToken,
			"tokens":       tokens,
		},
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
	}).Info("✅ [AUTH] Đăng nhập thành công")

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         updated,
	}, nil
}

// RefreshAccessToken cấp access token mới từ refresh token còn hiệu lực.
// Refresh token phải đúng chữ ký, đúng loại và còn được user giữ.
func (s *UserService) RefreshAccessToken(ctx context.Context, input *authdto.RefreshInput) (*LoginResult, error) {
	cfg := global.MongoDB_ServerConfig

	userID, tokenType, err := utility.ParseToken(cfg.JwtSecret, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if tokenType != utility.TokenTypeRefresh {
		return nil, common.ErrTokenInvalid
	}

	user, err := s.FindOne(ctx, bson.M{
		"_id":          utility.String2ObjectID(userID),
		"refreshToken": input.RefreshToken,
	}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrTokenInvalid
		}
		return nil, err
	}

	accessToken, err := utility.CreateToken(cfg.JwtSecret, user.ID.Hex(), utility.TokenTypeAccess, cfg.AccessTokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể phát hành token", common.StatusInternalServerError, err)
	}

	tokens := append(user.Tokens, models.Token{JwtToken: accessToken, IssuedAt: utility.CurrentTimeInMilli()})
	if len(tokens) > 5 {
		tokens = tokens[len(tokens)-5:]
	}

	updated, err := s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  accessToken,
			"tokens": tokens,
		},
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: input.RefreshToken,
		User:         updated,
	}, nil
}

// Logout thu hồi toàn bộ token của user (access + refresh)
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"tokens": []models.Token{},
		},
		Unset: map[string]interface{}{
			"token":        "",
			"refreshToken": "",
		},
	})
	return err
}

// BlockUser khóa người dùng kèm ghi chú; các token hiện có bị thu hồi luôn
func (s *UserService) BlockUser(ctx context.Context, userID primitive.ObjectID, note string) (models.User, error) {
	return s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   true,
			"blockNote": note,
			"tokens":    []models.Token{},
		},
		Unset: map[string]interface{}{
			"token":        "",
			"refreshToken": "",
		},
	})
}

// UnBlockUser mở khóa người dùng
func (s *UserService) UnBlockUser(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	return s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock": false,
		},
		Unset: map[string]interface{}{
			"blockNote": "",
		},
	})
}
