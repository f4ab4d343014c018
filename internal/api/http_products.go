package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodhub/internal/entity/converter"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// parseIDParam 解析路径中的数字 ID。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ListProducts 列出共享信封上的产品，支持分类/类型/生产商/关键词过滤。
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	var query dto.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, meta, err := h.repo.ListProducts(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list products")
		InternalError(c, "failed to list products")
		return
	}

	summaries := converter.ProductsToSummaries(products)
	h.attachImageURLs(ctx, summaries)

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: summaries,
		Meta:     meta,
	})
}

// attachImageURLs 为带存储 key 的图片生成限时访问 URL。
// 签名失败只记日志，不影响列表本身。
func (h *HTTPHandler) attachImageURLs(ctx context.Context, summaries []dto.ProductSummary) {
	if h.storage == nil {
		return
	}
	for i := range summaries {
		if summaries[i].Image == "" {
			continue
		}
		signed, err := h.storage.SignedURL(ctx, summaries[i].Image, 0)
		if err != nil {
			logrus.WithError(err).WithField("key", summaries[i].Image).Warn("failed to sign image url")
			continue
		}
		summaries[i].ImageURL = signed
	}
}

// GetProduct 返回单个产品的信封视图。
func (h *HTTPHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProductNotFound, "product not found")
			return
		}
		logrus.WithError(err).WithField("product_id", id).Error("failed to load product")
		InternalError(c, "failed to load product")
		return
	}

	summary := converter.ProductToSummary(product)
	summaries := []dto.ProductSummary{summary}
	h.attachImageURLs(ctx, summaries)

	c.JSON(http.StatusOK, summaries[0])
}

// CreateProduct 在共享信封上创建产品，归属当前登录用户。
func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req dto.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&req); report != nil {
		ValidationFailed(c, report)
		return
	}

	product := &db.Product{
		UserID:      user.ID,
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       strings.TrimSpace(req.Image),
		ProductType: req.ProductType,
	}
	if req.SKU != nil {
		if sku := strings.TrimSpace(*req.SKU); sku != "" {
			product.SKU = &sku
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeConflict, "sku already in use")
			return
		}
		logrus.WithError(err).Error("failed to create product")
		InternalError(c, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, converter.ProductToSummary(product))
}

// canMutateProduct 只有所有者和管理员可以修改产品。
func canMutateProduct(user *RequestUser, product *db.Product) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || product.UserID == user.ID
}

// UpdateProduct 更新信封字段，SKU 创建后不可变更。
func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProductUpdateRequest
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

	product, err := h.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProductNotFound, "product not found")
			return
		}
		logrus.WithError(err).WithField("product_id", id).Error("failed to load product")
		InternalError(c, "failed to update product")
		return
	}

	if !canMutateProduct(user, product) {
		Forbidden(c, "only the owner can modify this product")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		updates["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Image != nil {
		updates["image"] = strings.TrimSpace(*req.Image)
	}

	if len(updates) > 0 {
		if err := h.repo.UpdateProduct(ctx, id, updates); err != nil {
			logrus.WithError(err).WithField("product_id", id).Error("failed to update product")
			InternalError(c, "failed to update product")
			return
		}
	}

	product, err = h.repo.GetProductByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("product_id", id).Error("failed to reload product")
		InternalError(c, "failed to load product")
		return
	}

	c.JSON(http.StatusOK, converter.ProductToSummary(product))
}

// DeleteProduct 删除产品，仅限所有者和管理员。
func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProductNotFound, "product not found")
			return
		}
		logrus.WithError(err).WithField("product_id", id).Error("failed to load product")
		InternalError(c, "failed to delete product")
		return
	}

	if !canMutateProduct(user, product) {
		Forbidden(c, "only the owner can delete this product")
		return
	}

	if err := h.repo.DeleteProduct(ctx, id); err != nil {
		logrus.WithError(err).WithField("product_id", id).Error("failed to delete product")
		InternalError(c, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
