package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"foodhub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 上传文件大小上限
const maxUploadBytes = 10 << 20

func (h *HTTPHandler) publicURL(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	base := h.storagePublicBase
	if base == "" {
		base = "/files"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(trimmed, "/"))
}

// UploadFile 接收 multipart 文件并写入对象存储，返回 key 和访问 URL。
func (h *HTTPHandler) UploadFile(c *gin.Context) {
	if h.storage == nil {
		ServiceUnavailable(c, "storage not available")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "missing file field")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		BadRequest(c, ErrCodeInvalidRequest, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		BadRequest(c, ErrCodeInvalidRequest, "file too large")
		return
	}

	category := strings.TrimSpace(c.PostForm("category"))
	if category == "" {
		category = "uploads"
	}

	ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	baseName := strings.TrimSuffix(filepath.Base(fileHeader.Filename), filepath.Ext(fileHeader.Filename))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  category,
		BaseName:  baseName,
		Extension: ext,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to store uploaded file")
		InternalError(c, "failed to store file")
		return
	}

	signed, err := h.storage.SignedURL(ctx, key, 0)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to sign file url")
		signed = h.publicURL(key)
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": signed,
	})
}

// GetFileURL 为已有对象签发限时下载链接。
func (h *HTTPHandler) GetFileURL(c *gin.Context) {
	if h.storage == nil {
		ServiceUnavailable(c, "storage not available")
		return
	}

	key := strings.TrimLeft(strings.TrimSpace(c.Query("key")), "/")
	if key == "" {
		// 也接受完整 URL，反解出 key
		if raw := strings.TrimSpace(c.Query("url")); raw != "" {
			key = h.storage.ExtractKey(raw)
		}
	}
	if key == "" {
		MissingField(c, "key")
		return
	}

	expires := storage.DefaultSignedURLTTL
	if raw := strings.TrimSpace(c.Query("expires_in")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			expires = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	signed, err := h.storage.SignedURL(ctx, key, expires)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to sign file url")
		InternalError(c, "failed to sign file url")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":        key,
		"url":        signed,
		"expires_in": int64(expires / time.Second),
	})
}

// DeleteFile 删除已上传的对象。
func (h *HTTPHandler) DeleteFile(c *gin.Context) {
	if h.storage == nil {
		ServiceUnavailable(c, "storage not available")
		return
	}

	key := strings.TrimLeft(strings.TrimSpace(c.Query("key")), "/")
	if key == "" {
		MissingField(c, "key")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.storage.Delete(ctx, key); err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to delete file")
		InternalError(c, "failed to delete file")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
