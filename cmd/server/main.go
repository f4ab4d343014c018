package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"foodhub/internal/api"
	"foodhub/internal/config"
	"foodhub/internal/entity/db"
	"foodhub/internal/mail"
	"foodhub/internal/model"
	"foodhub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.EnsureDefaultAdmin(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed default admin")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	mailer, err := mail.NewMailer(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise mailer")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store, mailer)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 仅信任显式配置的代理，未配置时关闭代理头解析
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logrus.WithError(err).Error("invalid trusted proxies")
			return
		}
	} else {
		_ = r.SetTrustedProxies(nil)
	}

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/logout", httpHandler.Logout)
	authGroup.POST("/verify-email", httpHandler.VerifyEmail)
	authGroup.POST("/resend-verification", httpHandler.ResendVerification)
	authGroup.POST("/forgot-password", httpHandler.ForgotPassword)
	authGroup.POST("/reset-password", httpHandler.ResetPassword)
	authGroup.GET("/profile", httpHandler.Authenticator(), httpHandler.Profile)
	authGroup.PUT("/profile", httpHandler.Authenticator(), httpHandler.UpdateProfile)

	// 商品目录公开可读
	apiGroup.GET("/products", httpHandler.ListProducts)
	apiGroup.GET("/products/:id", httpHandler.GetProduct)
	apiGroup.GET("/foodproducts", httpHandler.ListFoodProducts)
	apiGroup.GET("/foodproducts/:id", httpHandler.GetFoodProduct)
	apiGroup.GET("/manufacturers", httpHandler.ListManufacturers)
	apiGroup.GET("/manufacturers/:id", httpHandler.GetManufacturer)
	apiGroup.GET("/suppliers", httpHandler.ListSuppliers)
	apiGroup.GET("/suppliers/:id", httpHandler.GetSupplier)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.Authenticator())

	// 创建产品仅限生产商账户，管理员穿透角色限制
	protected.POST("/products", httpHandler.RequireRole(db.UserRoleManufacturer), httpHandler.CreateProduct)
	protected.PUT("/products/:id", httpHandler.UpdateProduct)
	protected.DELETE("/products/:id", httpHandler.DeleteProduct)

	protected.POST("/foodproducts", httpHandler.RequireRole(db.UserRoleManufacturer), httpHandler.CreateFoodProduct)
	protected.PUT("/foodproducts/:id", httpHandler.UpdateFoodProduct)
	protected.DELETE("/foodproducts/:id", httpHandler.DeleteProduct)

	protected.POST("/manufacturers", httpHandler.CreateManufacturer)
	protected.PUT("/manufacturers/:id", httpHandler.UpdateManufacturer)
	protected.DELETE("/manufacturers/:id", httpHandler.DeleteManufacturer)

	protected.POST("/suppliers", httpHandler.CreateSupplier)
	protected.PUT("/suppliers/:id", httpHandler.UpdateSupplier)
	protected.DELETE("/suppliers/:id", httpHandler.DeleteSupplier)

	protected.GET("/projects", httpHandler.ListProjects)
	protected.GET("/projects/:id", httpHandler.GetProject)
	protected.POST("/projects", httpHandler.CreateProject)
	protected.PUT("/projects/:id", httpHandler.UpdateProject)
	protected.DELETE("/projects/:id", httpHandler.DeleteProject)

	protected.POST("/files", httpHandler.UploadFile)
	protected.GET("/files/url", httpHandler.GetFileURL)
	protected.DELETE("/files", httpHandler.DeleteFile)

	userAdmin := protected.Group("/users")
	userAdmin.Use(httpHandler.RequireAdmin())
	userAdmin.GET("", httpHandler.ListUsers)
	userAdmin.GET("/:id", httpHandler.GetUser)
	userAdmin.POST("", httpHandler.CreateUser)
	userAdmin.PATCH("/:id", httpHandler.UpdateUser)
	userAdmin.DELETE("/:id", httpHandler.DeleteUser)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("服务器启动失败")
	}
}

// CORSMiddleware CORS跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Admin-Authorization, X-Admin-Role, X-Admin-Email")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
