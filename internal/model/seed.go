package model

import (
	"context"
	"errors"
	"strings"

	"foodhub/internal/auth"
	"foodhub/internal/config"
	"foodhub/internal/entity/db"

	"gorm.io/gorm"
)

// EnsureDefaultAdmin 在启动阶段显式执行一次，保证配置的管理员账户存在。
// 幂等：已存在的账户不会被改动，未配置凭证时直接跳过。
func EnsureDefaultAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 继续创建
	default:
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &db.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Administrator",
		Role:         db.UserRoleAdmin,
		Status:       db.UserStatusActive,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		// 并发启动时另一实例可能先插入，视为已存在
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}
