package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foodhub/internal/entity/converter"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListFoodProducts 列出食品类产品，查询参数同基础产品列表。
func (h *HTTPHandler) ListFoodProducts(c *gin.Context) {
	var query dto.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}
	query.ProductType = db.ProductTypeFood

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, meta, err := h.repo.ListProducts(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list food products")
		InternalError(c, "failed to list food products")
		return
	}

	summaries := converter.ProductsToSummaries(products)
	h.attachImageURLs(ctx, summaries)

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: summaries,
		Meta:     meta,
	})
}

// GetFoodProduct 返回信封和食品变体负载合并后的详情视图。
func (h *HTTPHandler) GetFoodProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProductNotFound, "food product not found")
			return
		}
		logrus.WithError(err).WithField("product_id", id).Error("failed to load food product")
		InternalError(c, "failed to load food product")
		return
	}

	if product.ProductType != db.ProductTypeFood {
		NotFound(c, ErrCodeProductNotFound, "food product not found")
		return
	}

	detail := converter.ProductToFoodDetail(product)
	if h.storage != nil && detail.Image != "" {
		if signed, err := h.storage.SignedURL(ctx, detail.Image, 0); err == nil {
			detail.ImageURL = signed
		}
	}

	c.JSON(http.StatusOK, detail)
}

// CreateFoodProduct 校验表单后投影到共享信封并持久化。
// 缺失 SKU 由持久化钩子自动生成。
func (h *HTTPHandler) CreateFoodProduct(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var form dto.FoodProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&form); report != nil {
		ValidationFailed(c, report)
		return
	}

	product := converter.FoodProductFromForm(user.ID, &form)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateProduct(ctx, product); err != nil {
		switch {
		case errors.Is(err, db.ErrShelfLifeWindow):
			BadRequest(c, ErrCodeShelfLifeWindow, err.Error())
		case errors.Is(err, gorm.ErrDuplicatedKey):
			Conflict(c, ErrCodeConflict, "sku already in use")
		default:
			logrus.WithError(err).Error("failed to create food product")
			InternalError(c, "failed to create food product")
		}
		return
	}

	c.JSON(http.StatusCreated, converter.ProductToFoodDetail(product))
}

// UpdateFoodProduct 整体重放表单到已有产品，保留身份、评分和已分配的 SKU。
func (h *HTTPHandler) UpdateFoodProduct(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form dto.FoodProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&form); report != nil {
		ValidationFailed(c, report)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProductNotFound, "food product not found")
			return
		}
		logrus.WithError(err).WithField("product_id", id).Error("failed to load food product")
		InternalError(c, "failed to update food product")
		return
	}

	if product.ProductType != db.ProductTypeFood {
		NotFound(c, ErrCodeProductNotFound, "food product not found")
		return
	}
	if !canMutateProduct(user, product) {
		Forbidden(c, "only the owner can modify this product")
		return
	}

	converter.ApplyFoodFormUpdate(product, &form)

	if err := h.repo.SaveProduct(ctx, product); err != nil {
		switch {
		case errors.Is(err, db.ErrShelfLifeWindow):
			BadRequest(c, ErrCodeShelfLifeWindow, err.Error())
		case errors.Is(err, gorm.ErrDuplicatedKey):
			Conflict(c, ErrCodeConflict, "sku already in use")
		default:
			logrus.WithError(err).WithField("product_id", id).Error("failed to save food product")
			InternalError(c, "failed to update food product")
		}
		return
	}

	c.JSON(http.StatusOK, converter.ProductToFoodDetail(product))
}
