package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = bcrypt.DefaultCost

// bcryptPrefix 是 bcrypt 哈希的版本前缀，用于识别已哈希的值。
const bcryptPrefix = "$2"

// ErrCredential 对外统一的凭证错误，不透露失败的具体环节。
var ErrCredential = errors.New("credential operation failed")

// HashPassword 对明文密码进行哈希处理
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrCredential
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), defaultBcryptCost)
	if err != nil {
		return "", ErrCredential
	}
	return string(hashed), nil
}

// VerifyPassword 验证密码是否与存储的哈希值匹配。
// 哈希损坏和密码不符返回同一个错误，调用方无从区分。
func VerifyPassword(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return ErrCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)); err != nil {
		return ErrCredential
	}
	return nil
}

// IsHashed 报告一个值是否已经是 bcrypt 哈希，避免二次哈希。
func IsHashed(value string) bool {
	return strings.HasPrefix(value, bcryptPrefix)
}
