package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"foodhub/internal/auth"
	"foodhub/internal/entity/converter"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListUsers 管理端用户列表。
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query dto.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		InternalError(c, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users: converter.UsersToSummaries(users),
		Meta:  meta,
	})
}

// GetUser 管理端查看单个用户。
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user")
		InternalError(c, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, converter.UserToSummary(user))
}

// CreateUser 管理端直接创建账户，默认激活、无需邮箱验证。
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&req); report != nil {
		ValidationFailed(c, report)
		return
	}

	hash, err := auth.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to create user")
		return
	}

	status := req.Status
	if status == "" {
		status = db.UserStatusActive
	}

	user := &db.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         req.Role,
		Status:       status,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, converter.UserToSummary(user))
}

// UpdateUser 管理端更新账户，缺省字段保持不变。
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&req); report != nil {
		ValidationFailed(c, report)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user")
		InternalError(c, "failed to update user")
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Password != nil {
		// 已经是 bcrypt 哈希的值不再二次哈希
		hash := strings.TrimSpace(*req.Password)
		if !auth.IsHashed(hash) {
			var err error
			hash, err = auth.HashPassword(hash)
			if err != nil {
				logrus.WithError(err).Error("failed to hash password")
				InternalError(c, "failed to update user")
				return
			}
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
			logrus.WithError(err).WithField("user_id", id).Error("failed to update user")
			InternalError(c, "failed to update user")
			return
		}
	}

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to reload user")
		InternalError(c, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, converter.UserToSummary(user))
}

// DeleteUser 管理端删除账户，不允许删除自己。
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	current := CurrentUser(c)
	if current == nil {
		Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if id == current.ID {
		BadRequest(c, ErrCodeCannotDeleteSelf, "cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user")
		InternalError(c, "failed to delete user")
		return
	}

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to delete user")
		InternalError(c, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
