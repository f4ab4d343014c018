package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"foodhub/internal/entity/converter"
	"foodhub/internal/entity/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListManufacturers 列出生产商档案。
func (h *HTTPHandler) ListManufacturers(c *gin.Context) {
	var query dto.ManufacturerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	manufacturers, meta, err := h.repo.ListManufacturers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list manufacturers")
		InternalError(c, "failed to list manufacturers")
		return
	}

	c.JSON(http.StatusOK, dto.ManufacturerListResponse{
		Manufacturers: converter.ManufacturersToItems(manufacturers),
		Meta:          meta,
	})
}

// GetManufacturer 返回单个生产商档案。
func (h *HTTPHandler) GetManufacturer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	manufacturer, err := h.repo.GetManufacturerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeManufacturerNotFound, "manufacturer not found")
			return
		}
		logrus.WithError(err).WithField("manufacturer_id", id).Error("failed to load manufacturer")
		InternalError(c, "failed to load manufacturer")
		return
	}

	c.JSON(http.StatusOK, converter.ManufacturerToItem(manufacturer))
}

// CreateManufacturer 创建生产商档案。
func (h *HTTPHandler) CreateManufacturer(c *gin.Context) {
	var req dto.ManufacturerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&req); report != nil {
		ValidationFailed(c, report)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	req.Industry = strings.TrimSpace(req.Industry)
	req.Certification = strings.TrimSpace(req.Certification)
	req.Description = strings.TrimSpace(req.Description)
	req.Contact = trimManufacturerContact(req.Contact)

	manufacturer := converter.ManufacturerFromCreate(&req)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateManufacturer(ctx, manufacturer); err != nil {
		logrus.WithError(err).Error("failed to create manufacturer")
		InternalError(c, "failed to create manufacturer")
		return
	}

	c.JSON(http.StatusCreated, converter.ManufacturerToItem(manufacturer))
}

// UpdateManufacturer 更新生产商档案，缺省字段保持不变。
func (h *HTTPHandler) UpdateManufacturer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ManufacturerUpdateRequest
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

	if _, err := h.repo.GetManufacturerByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeManufacturerNotFound, "manufacturer not found")
			return
		}
		logrus.WithError(err).WithField("manufacturer_id", id).Error("failed to load manufacturer")
		InternalError(c, "failed to update manufacturer")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.EstablishedYear != nil {
		updates["established_year"] = *req.EstablishedYear
	}
	if req.Industry != nil {
		updates["industry"] = strings.TrimSpace(*req.Industry)
	}
	if req.Certification != nil {
		updates["certification"] = strings.TrimSpace(*req.Certification)
	}
	if req.Contact != nil {
		updates["contact"] = converter.ManufacturerContactToMap(trimManufacturerContact(*req.Contact))
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if len(updates) > 0 {
		if err := h.repo.UpdateManufacturer(ctx, id, updates); err != nil {
			logrus.WithError(err).WithField("manufacturer_id", id).Error("failed to update manufacturer")
			InternalError(c, "failed to update manufacturer")
			return
		}
	}

	manufacturer, err := h.repo.GetManufacturerByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("manufacturer_id", id).Error("failed to reload manufacturer")
		InternalError(c, "failed to load manufacturer")
		return
	}

	c.JSON(http.StatusOK, converter.ManufacturerToItem(manufacturer))
}

// DeleteManufacturer 删除生产商档案。
func (h *HTTPHandler) DeleteManufacturer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetManufacturerByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeManufacturerNotFound, "manufacturer not found")
			return
		}
		logrus.WithError(err).WithField("manufacturer_id", id).Error("failed to load manufacturer")
		InternalError(c, "failed to delete manufacturer")
		return
	}

	if err := h.repo.DeleteManufacturer(ctx, id); err != nil {
		logrus.WithError(err).WithField("manufacturer_id", id).Error("failed to delete manufacturer")
		InternalError(c, "failed to delete manufacturer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "manufacturer deleted"})
}

func trimManufacturerContact(contact dto.ManufacturerContact) dto.ManufacturerContact {
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Website = strings.TrimSpace(contact.Website)
	return contact
}
