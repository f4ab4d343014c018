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

// Register 创建待验证账户并下发邮箱验证码。
// 验证码发送失败只记日志，注册本身照常成功。
func (h *HTTPHandler) Register(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req dto.AuthRegisterRequest
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

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	hash, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to register user")
		return
	}

	user := &db.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Role:         req.Role,
		Status:       db.UserStatusPending,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "failed to register user")
		return
	}

	h.issueVerificationCode(ctx, email)

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration accepted, check your email for the verification code",
		"user":    converter.UserToSummary(user),
	})
}

// issueVerificationCode 生成并下发验证码。发送失败不阻断调用方流程。
func (h *HTTPHandler) issueVerificationCode(ctx context.Context, email string) {
	code, expiresAt, err := auth.GenerateVerificationCode()
	if err != nil {
		logrus.WithError(err).Error("failed to generate verification code")
		return
	}
	verification := &db.EmailVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	if err := h.repo.UpsertEmailVerification(ctx, verification); err != nil {
		logrus.WithError(err).WithField("email", email).Error("failed to store verification code")
		return
	}
	if err := h.mailer.SendVerificationEmail(ctx, email, code); err != nil {
		logrus.WithError(err).WithField("email", email).Warn("failed to send verification email")
	}
}

// VerifyEmail 用邮件里的验证码激活待验证账户。
func (h *HTTPHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
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

	email := strings.ToLower(strings.TrimSpace(req.Email))

	verification, err := h.repo.GetEmailVerification(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, ErrCodeInvalidRequest, "no verification pending for this email")
			return
		}
		logrus.WithError(err).WithField("email", email).Error("failed to load verification code")
		InternalError(c, "failed to verify email")
		return
	}

	if verification.Expired(time.Now().UTC()) {
		_ = h.repo.DeleteEmailVerification(ctx, email)
		BadRequest(c, ErrCodeCodeExpired, "verification code expired, request a new one")
		return
	}

	if verification.Code != req.Code {
		BadRequest(c, ErrCodeInvalidRequest, "incorrect verification code")
		return
	}

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("failed to load user for verification")
		InternalError(c, "failed to verify email")
		return
	}

	if user.Status == db.UserStatusPending {
		if err := h.repo.UpdateUser(ctx, user.ID, map[string]interface{}{"status": db.UserStatusActive}); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to activate user")
			InternalError(c, "failed to verify email")
			return
		}
	}
	_ = h.repo.DeleteEmailVerification(ctx, email)

	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ResendVerification 重新下发验证码，窗口重新计时。
func (h *HTTPHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
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

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// 不暴露账户是否存在
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a new code has been sent"})
		return
	}
	if user.Status != db.UserStatusPending {
		BadRequest(c, ErrCodeInvalidRequest, "account does not need verification")
		return
	}

	h.issueVerificationCode(ctx, email)

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a new code has been sent"})
}

// Login 校验凭证，同时签发 JWT 和服务端会话 Cookie。
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req dto.AuthLoginRequest
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

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("login attempt for unknown email")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		logrus.WithField("email", email).Warn("password verification failed")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if user.Status == db.UserStatusPending {
		ErrorResponse(c, http.StatusForbidden, ErrCodeUserDisabled, "email not verified")
		return
	}
	if !user.IsActive() {
		ErrorResponse(c, http.StatusForbidden, ErrCodeUserDisabled, "account is disabled")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	cookieValue, session, err := h.sessionManager.Create(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to create session")
		InternalError(c, "failed to create session")
		return
	}

	maxAge := int(time.Until(session.ExpiresAt) / time.Second)
	c.SetCookie(h.sessionCookieName(), cookieValue, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      converter.UserToSummary(user),
	})
}

// Logout 销毁服务端会话并清除 Cookie。没有会话也返回成功。
func (h *HTTPHandler) Logout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if cookieValue, err := c.Cookie(h.sessionCookieName()); err == nil && cookieValue != "" {
		if err := h.sessionManager.Destroy(ctx, cookieValue); err != nil && !errors.Is(err, auth.ErrSessionInvalid) {
			logrus.WithError(err).Warn("failed to destroy session")
		}
	}

	c.SetCookie(h.sessionCookieName(), "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ForgotPassword 开始重置流程。无论账户是否存在都返回同样的 200，
// 避免邮箱枚举；但对存在的账户，邮件发送失败要如实报错。
func (h *HTTPHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
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

	email := strings.ToLower(strings.TrimSpace(req.Email))
	genericMessage := gin.H{"message": "if the account exists, a reset link has been sent"}

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		c.JSON(http.StatusOK, genericMessage)
		return
	}

	resetToken, err := auth.GenerateResetToken()
	if err != nil {
		logrus.WithError(err).Error("failed to generate reset token")
		InternalError(c, "failed to start password reset")
		return
	}

	record := &db.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: resetToken.Hash,
		ExpiresAt: resetToken.ExpiresAt,
	}
	if err := h.repo.CreatePasswordResetToken(ctx, record); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to store reset token")
		InternalError(c, "failed to start password reset")
		return
	}

	resetURL := auth.BuildResetURL(h.cfg.FrontendBaseURL, resetToken.Plain)
	if err := h.mailer.SendPasswordResetEmail(ctx, email, resetURL); err != nil {
		logrus.WithError(err).WithField("email", email).Error("failed to send reset email")
		InternalError(c, "failed to send reset email")
		return
	}

	c.JSON(http.StatusOK, genericMessage)
}

// ResetPassword 用邮件里的令牌设置新密码，成功后作废该用户的所有重置令牌。
func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
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

	record, err := h.repo.GetPasswordResetTokenByHash(ctx, auth.HashToken(strings.TrimSpace(req.Token)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, ErrCodeInvalidRequest, "invalid or used reset token")
			return
		}
		logrus.WithError(err).Error("failed to load reset token")
		InternalError(c, "failed to reset password")
		return
	}

	if record.Expired(time.Now().UTC()) {
		_ = h.repo.DeletePasswordResetTokensForUser(ctx, record.UserID)
		BadRequest(c, ErrCodeTokenExpired, "reset token expired, request a new one")
		return
	}

	hash, err := auth.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to reset password")
		return
	}

	if err := h.repo.UpdateUser(ctx, record.UserID, map[string]interface{}{"password_hash": hash}); err != nil {
		logrus.WithError(err).WithField("user_id", record.UserID).Error("failed to update password")
		InternalError(c, "failed to reset password")
		return
	}

	_ = h.repo.DeletePasswordResetTokensForUser(ctx, record.UserID)

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// Profile 返回当前登录用户的资料。
func (h *HTTPHandler) Profile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, converter.UserToSummary(dbUser))
}

// UpdateProfile 更新当前登录用户的资料，缺省字段保持不变。
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&req); report != nil {
		ValidationFailed(c, report)
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.CompanyName != nil {
		updates["company_name"] = strings.TrimSpace(*req.CompanyName)
	}
	if req.Password != nil {
		// 已经是 bcrypt 哈希的值不再二次哈希
		hash := strings.TrimSpace(*req.Password)
		if !auth.IsHashed(hash) {
			var err error
			hash, err = auth.HashPassword(hash)
			if err != nil {
				logrus.WithError(err).Error("failed to hash password")
				InternalError(c, "failed to update profile")
				return
			}
		}
		updates["password_hash"] = hash
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if len(updates) > 0 {
		if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to update profile")
			InternalError(c, "failed to update profile")
			return
		}
	}

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to reload profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, converter.UserToSummary(dbUser))
}
