package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	authrouter "outlet_admin/internal/api/auth/router"
	basehdl "outlet_admin/internal/api/base/handler"
	catalogrouter "outlet_admin/internal/api/catalog/router"
	dashboardrouter "outlet_admin/internal/api/dashboard/router"
	outletrouter "outlet_admin/internal/api/outlet/router"
	apirouter "outlet_admin/internal/api/router"
	templaterouter "outlet_admin/internal/api/template/router"
	"outlet_admin/internal/common"
	"outlet_admin/internal/global"
	"outlet_admin/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:       "Outlet Admin API",
		ServerHeader:  "Outlet Admin API",
		StrictRouting: true, // /foo và /foo/ là khác nhau
		CaseSensitive: true, // /Foo và /foo là khác nhau
		UnescapePath:  true,

		BodyLimit:       10 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusUnauthorized:
					errorCode = common.ErrCodeAuthToken.Code
				case fiber.StatusForbidden:
					errorCode = common.ErrCodeAuthRole.Code
				case fiber.StatusNotFound, fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
				"code":    errorCode,
			})
		},
	})

	// 1. Request ID - trace từng request
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS - phải đặt trước các middleware khác để xử lý preflight
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limiting
	if global.MongoDB_ServerConfig.RateLimit_Enabled && global.MongoDB_ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.MongoDB_ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.MongoDB_ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success": false,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"code":    common.ErrCodeBusinessOperation.Code,
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua health check và preflight requests
				return c.Path() == "/api/v1/system/health" || c.Method() == "OPTIONS"
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", rateLimitMax, global.MongoDB_ServerConfig.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Internal Server Error",
				"code":    common.ErrCodeInternalServer.Code,
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/system/health"
		},
	}))

	// Đăng ký routes của từng domain
	if err := apirouter.SetupRoutes(app,
		registerSystemRoutes,
		authrouter.Register,
		catalogrouter.Register,
		outletrouter.Register,
		dashboardrouter.Register,
		templaterouter.Register,
	); err != nil {
		return nil, err
	}

	return app, nil
}

// registerSystemRoutes đăng ký route hệ thống (health check, không cần token)
func registerSystemRoutes(v1 fiber.Router, r *apirouter.Router) error {
	systemHandler := basehdl.NewSystemHandler()
	apirouter.RegisterRouteWithMiddleware(v1, "/system", "GET", "/health", nil, systemHandler.HandleHealth)
	return nil
}
