package db

import "time"

// PasswordResetToken 保存重置令牌的单向摘要，明文只经邮件链接下发一次。
type PasswordResetToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	TokenHash string    `gorm:"column:token_hash;type:varchar(128);index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

// TableName 指定表名。
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Expired 报告令牌在给定时刻是否已过期。
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// EmailVerification 保存注册邮箱验证码，窗口很短。
type EmailVerification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Code      string    `gorm:"column:code;type:varchar(16);not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

// TableName 指定表名。
func (EmailVerification) TableName() string {
	return "email_verifications"
}

// Expired 报告验证码在给定时刻是否已失效。
func (v *EmailVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// Session 是服务端会话记录，7 天滑动过期，24 小时内最多刷新一次。
type Session struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index;not null" json:"expires_at"`
	RefreshedAt time.Time `gorm:"column:refreshed_at;not null" json:"refreshed_at"`
}

// TableName 指定表名。
func (Session) TableName() string {
	return "sessions"
}

// Expired 报告会话在给定时刻是否已过期。过期在读取时判定，没有后台清理。
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
