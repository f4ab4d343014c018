package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"foodhub/internal/entity/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	currentUserContextKey = "current-user"

	adminAuthHeader  = "X-Admin-Authorization"
	adminRoleHeader  = "X-Admin-Role"
	adminEmailHeader = "X-Admin-Email"
)

// RequestUser 存储请求上下文中的认证用户信息
type RequestUser struct {
	ID          uint
	Email       string
	DisplayName string
	Role        string
}

// IsAdmin 判断用户是否具有管理员权限
func (u *RequestUser) IsAdmin() bool {
	return u != nil && u.Role == db.UserRoleAdmin
}

// Authenticator 按固定顺序尝试三种凭证：Bearer JWT、管理员头部组合、
// 会话 Cookie。第一个适用的方案定案，失败不会回落到下一种。
func (h *HTTPHandler) Authenticator() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if authHeader := strings.TrimSpace(c.GetHeader("Authorization")); authHeader != "" {
			h.authenticateBearer(c, ctx, authHeader)
			return
		}

		if hasAdminHeaders(c) {
			h.authenticateAdminHeaders(c, ctx)
			return
		}

		if cookieValue, err := c.Cookie(h.sessionCookieName()); err == nil && strings.TrimSpace(cookieValue) != "" {
			h.authenticateSession(c, ctx, cookieValue)
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeUnauthorized,
			Message: "authentication required",
		})
	}
}

func (h *HTTPHandler) authenticateBearer(c *gin.Context, ctx context.Context, authHeader string) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeUnauthorized,
			Message: "invalid authorization header format",
		})
		return
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeUnauthorized,
			Message: "missing bearer token",
		})
		return
	}

	claims, err := h.authManager.ParseToken(tokenString)
	if err != nil {
		logrus.WithError(err).Warn("failed to parse jwt token")
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeSessionExpired,
			Message: "token invalid or expired",
		})
		return
	}

	h.finishAuthentication(c, ctx, claims.UserID)
}

// hasAdminHeaders 报告请求是否带了任意一个管理员头部。
func hasAdminHeaders(c *gin.Context) bool {
	return strings.TrimSpace(c.GetHeader(adminAuthHeader)) != "" ||
		strings.TrimSpace(c.GetHeader(adminRoleHeader)) != "" ||
		strings.TrimSpace(c.GetHeader(adminEmailHeader)) != ""
}

// authenticateAdminHeaders 校验管理员头部组合：三个头必须同时出现，
// 角色头必须声明 admin（大小写不敏感），任何缺失或不符都按 401 拒绝。
// 头部的真实性由部署边界（内网网关）保证。
func (h *HTTPHandler) authenticateAdminHeaders(c *gin.Context, ctx context.Context) {
	token := strings.TrimSpace(c.GetHeader(adminAuthHeader))
	role := strings.TrimSpace(c.GetHeader(adminRoleHeader))
	email := strings.ToLower(strings.TrimSpace(c.GetHeader(adminEmailHeader)))

	if token == "" || role == "" || email == "" || !strings.EqualFold(role, db.UserRoleAdmin) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeUnauthorized,
			Message: "incomplete admin credentials",
		})
		return
	}

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "unknown admin account",
			})
			return
		}
		logrus.WithError(err).WithField("email", email).Error("failed to load admin user")
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
			Code:    ErrCodeInternalError,
			Message: "failed to verify user",
		})
		return
	}

	if user.Role != db.UserRoleAdmin {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeUnauthorized,
			Message: "account is not an administrator",
		})
		return
	}

	h.setRequestUser(c, user)
}

func (h *HTTPHandler) authenticateSession(c *gin.Context, ctx context.Context, cookieValue string) {
	session, err := h.sessionManager.Resolve(ctx, cookieValue)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
			Code:    ErrCodeSessionExpired,
			Message: "session invalid or expired",
		})
		return
	}
	h.finishAuthentication(c, ctx, session.UserID)
}

// finishAuthentication 加载账户、检查状态并写入请求上下文。
func (h *HTTPHandler) finishAuthentication(c *gin.Context, ctx context.Context, userID uint) {
	user, err := h.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUserNotFound,
				Message: "user not found",
			})
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("failed to load user")
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
			Code:    ErrCodeInternalError,
			Message: "failed to verify user",
		})
		return
	}

	h.setRequestUser(c, user)
}

func (h *HTTPHandler) setRequestUser(c *gin.Context, user *db.User) {
	if !user.IsActive() {
		c.AbortWithStatusJSON(http.StatusForbidden, APIError{
			Code:    ErrCodeUserDisabled,
			Message: "account is disabled",
		})
		return
	}

	c.Set(currentUserContextKey, &RequestUser{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
	c.Next()
}

// RequireRole 角色守卫中间件：管理员放行所有角色限制。
func (h *HTTPHandler) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "authentication required",
			})
			return
		}
		if user.IsAdmin() {
			c.Next()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, APIError{
			Code:    ErrCodeForbidden,
			Message: "insufficient permissions",
		})
	}
}

// RequireAdmin 管理员权限守卫中间件
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "administrator access required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文获取当前认证用户
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}
