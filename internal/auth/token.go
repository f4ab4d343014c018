package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	// ResetTokenTTL 是重置令牌的绝对有效期。
	ResetTokenTTL = 10 * time.Minute
	// VerificationCodeTTL 是邮箱验证码的有效窗口。
	VerificationCodeTTL = time.Minute

	resetTokenBytes = 32
)

// ResetToken 携带一次性下发的明文和仅用于持久化的摘要。
// 调用方只能保存 Hash 和 ExpiresAt，Plain 通过邮件链接发给用户后即丢弃。
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// GenerateResetToken 生成 256 位随机重置令牌及其 SHA-256 摘要。
func GenerateResetToken() (*ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, ErrCredential
	}
	plain := hex.EncodeToString(buf)
	return &ResetToken{
		Plain:     plain,
		Hash:      HashToken(plain),
		ExpiresAt: time.Now().UTC().Add(ResetTokenTTL),
	}, nil
}

// HashToken 计算明文令牌的 SHA-256 摘要。校验时重新计算并对比摘要，
// 从不用明文和明文比较。
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// BuildResetURL 拼接发给用户的重置链接，无副作用。
func BuildResetURL(baseURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(baseURL, "/"), token)
}

// GenerateVerificationCode 生成六位数字验证码。
func GenerateVerificationCode() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", time.Time{}, ErrCredential
	}
	code := fmt.Sprintf("%06d", n.Int64())
	return code, time.Now().UTC().Add(VerificationCodeTTL), nil
}
