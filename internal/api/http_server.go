package api

import (
	"strings"
	"time"

	"foodhub/internal/auth"
	"foodhub/internal/config"
	"foodhub/internal/mail"
	"foodhub/internal/model"
	"foodhub/internal/storage"
	"foodhub/internal/validate"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager
	sessionManager    *auth.SessionManager
	mailer            mail.Mailer
	validator         *validate.Validator
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, mailer mail.Mailer) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	sessionManager, err := auth.NewSessionManager(cfg.SessionSecret, repo)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		sessionManager:    sessionManager,
		mailer:            mailer,
		validator:         validate.New(),
	}, nil
}

func (h *HTTPHandler) sessionCookieName() string {
	return auth.SessionCookieName
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
