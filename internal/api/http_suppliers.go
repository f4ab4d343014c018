package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"foodhub/internal/entity/common"
	"foodhub/internal/entity/converter"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListSuppliers 列出供应商档案。
func (h *HTTPHandler) ListSuppliers(c *gin.Context) {
	var query dto.SupplierQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	suppliers, meta, err := h.repo.ListSuppliers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list suppliers")
		InternalError(c, "failed to list suppliers")
		return
	}

	c.JSON(http.StatusOK, dto.SupplierListResponse{
		Suppliers: converter.SuppliersToItems(suppliers),
		Meta:      meta,
	})
}

// GetSupplier 返回单个供应商档案。
func (h *HTTPHandler) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	supplier, err := h.repo.GetSupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeSupplierNotFound, "supplier not found")
			return
		}
		logrus.WithError(err).WithField("supplier_id", id).Error("failed to load supplier")
		InternalError(c, "failed to load supplier")
		return
	}

	c.JSON(http.StatusOK, converter.SupplierToItem(supplier))
}

// CreateSupplier 创建供应商档案，归属当前登录用户。
func (h *HTTPHandler) CreateSupplier(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req dto.SupplierCreateRequest
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
	req.Contact = trimSupplierContact(req.Contact)

	supplier := converter.SupplierFromCreate(user.ID, &req)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateSupplier(ctx, supplier); err != nil {
		logrus.WithError(err).Error("failed to create supplier")
		InternalError(c, "failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, converter.SupplierToItem(supplier))
}

// UpdateSupplier 更新供应商档案，仅限所有者和管理员。
func (h *HTTPHandler) UpdateSupplier(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SupplierUpdateRequest
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

	supplier, err := h.repo.GetSupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeSupplierNotFound, "supplier not found")
			return
		}
		logrus.WithError(err).WithField("supplier_id", id).Error("failed to load supplier")
		InternalError(c, "failed to update supplier")
		return
	}

	if !user.IsAdmin() && supplier.UserID != user.ID {
		Forbidden(c, "only the owner can modify this supplier")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Categories != nil {
		updates["categories"] = common.StringArray(req.Categories)
	}
	if req.Contact != nil {
		updates["contact"] = converter.SupplierContactToMap(trimSupplierContact(*req.Contact))
	}

	if len(updates) > 0 {
		if err := h.repo.UpdateSupplier(ctx, id, updates); err != nil {
			logrus.WithError(err).WithField("supplier_id", id).Error("failed to update supplier")
			InternalError(c, "failed to update supplier")
			return
		}
	}

	supplier, err = h.repo.GetSupplierByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("supplier_id", id).Error("failed to reload supplier")
		InternalError(c, "failed to load supplier")
		return
	}

	c.JSON(http.StatusOK, converter.SupplierToItem(supplier))
}

// DeleteSupplier 删除供应商档案，仅限所有者和管理员。
func (h *HTTPHandler) DeleteSupplier(c *gin.Context) {
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

	supplier, err := h.repo.GetSupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeSupplierNotFound, "supplier not found")
			return
		}
		logrus.WithError(err).WithField("supplier_id", id).Error("failed to load supplier")
		InternalError(c, "failed to delete supplier")
		return
	}

	if !user.IsAdmin() && supplier.UserID != user.ID {
		Forbidden(c, "only the owner can delete this supplier")
		return
	}

	if err := h.repo.DeleteSupplier(ctx, id); err != nil {
		logrus.WithError(err).WithField("supplier_id", id).Error("failed to delete supplier")
		InternalError(c, "failed to delete supplier")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "supplier deleted"})
}

// ListProjects 列出当前用户的项目，管理员可看到全部。
func (h *HTTPHandler) ListProjects(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var query dto.ProjectQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}
	if !user.IsAdmin() {
		query.UserID = user.ID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	projects, meta, err := h.repo.ListProjects(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list projects")
		InternalError(c, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects: converter.ProjectsToItems(projects),
		Meta:     meta,
	})
}

// GetProject 返回单个项目，仅限所有者和管理员。
func (h *HTTPHandler) GetProject(c *gin.Context) {
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

	project, err := h.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProjectNotFound, "project not found")
			return
		}
		logrus.WithError(err).WithField("project_id", id).Error("failed to load project")
		InternalError(c, "failed to load project")
		return
	}

	if !user.IsAdmin() && project.UserID != user.ID {
		Forbidden(c, "only the owner can view this project")
		return
	}

	c.JSON(http.StatusOK, converter.ProjectToItem(project))
}

// CreateProject 创建项目，初始状态 open。
func (h *HTTPHandler) CreateProject(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req dto.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if report := h.validator.Check(&req); report != nil {
		ValidationFailed(c, report)
		return
	}

	project := &db.Project{
		UserID:      user.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Status:      "open",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateProject(ctx, project); err != nil {
		logrus.WithError(err).Error("failed to create project")
		InternalError(c, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, converter.ProjectToItem(project))
}

// UpdateProject 更新项目，仅限所有者和管理员。
func (h *HTTPHandler) UpdateProject(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProjectUpdateRequest
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

	project, err := h.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProjectNotFound, "project not found")
			return
		}
		logrus.WithError(err).WithField("project_id", id).Error("failed to load project")
		InternalError(c, "failed to update project")
		return
	}

	if !user.IsAdmin() && project.UserID != user.ID {
		Forbidden(c, "only the owner can modify this project")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := h.repo.UpdateProject(ctx, id, updates); err != nil {
			logrus.WithError(err).WithField("project_id", id).Error("failed to update project")
			InternalError(c, "failed to update project")
			return
		}
	}

	project, err = h.repo.GetProjectByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("project_id", id).Error("failed to reload project")
		InternalError(c, "failed to load project")
		return
	}

	c.JSON(http.StatusOK, converter.ProjectToItem(project))
}

// DeleteProject 删除项目，仅限所有者和管理员。
func (h *HTTPHandler) DeleteProject(c *gin.Context) {
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

	project, err := h.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeProjectNotFound, "project not found")
			return
		}
		logrus.WithError(err).WithField("project_id", id).Error("failed to load project")
		InternalError(c, "failed to delete project")
		return
	}

	if !user.IsAdmin() && project.UserID != user.ID {
		Forbidden(c, "only the owner can delete this project")
		return
	}

	if err := h.repo.DeleteProject(ctx, id); err != nil {
		logrus.WithError(err).WithField("project_id", id).Error("failed to delete project")
		InternalError(c, "failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func trimSupplierContact(contact dto.SupplierContact) dto.SupplierContact {
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)
	return contact
}
