package model

import (
	"context"
	"time"

	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"

	"foodhub/internal/entity/common"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *db.User) error
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, id uint) (*db.User, error)
	ListUsers(ctx context.Context, params *dto.UserQuery) ([]db.User, *common.Meta, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// 产品（共享信封 + 判别器）
	CreateProduct(ctx context.Context, product *db.Product) error
	SaveProduct(ctx context.Context, product *db.Product) error
	UpdateProduct(ctx context.Context, id uint, updates map[string]interface{}) error
	GetProductByID(ctx context.Context, id uint) (*db.Product, error)
	ListProducts(ctx context.Context, params *dto.ProductQuery) ([]db.Product, *common.Meta, error)
	DeleteProduct(ctx context.Context, id uint) error

	// 生产商
	CreateManufacturer(ctx context.Context, manufacturer *db.Manufacturer) error
	UpdateManufacturer(ctx context.Context, id uint, updates map[string]interface{}) error
	GetManufacturerByID(ctx context.Context, id uint) (*db.Manufacturer, error)
	ListManufacturers(ctx context.Context, params *dto.ManufacturerQuery) ([]db.Manufacturer, *common.Meta, error)
	DeleteManufacturer(ctx context.Context, id uint) error

	// 供应商
	CreateSupplier(ctx context.Context, supplier *db.Supplier) error
	UpdateSupplier(ctx context.Context, id uint, updates map[string]interface{}) error
	GetSupplierByID(ctx context.Context, id uint) (*db.Supplier, error)
	ListSuppliers(ctx context.Context, params *dto.SupplierQuery) ([]db.Supplier, *common.Meta, error)
	DeleteSupplier(ctx context.Context, id uint) error

	// 项目
	CreateProject(ctx context.Context, project *db.Project) error
	UpdateProject(ctx context.Context, id uint, updates map[string]interface{}) error
	GetProjectByID(ctx context.Context, id uint) (*db.Project, error)
	ListProjects(ctx context.Context, params *dto.ProjectQuery) ([]db.Project, *common.Meta, error)
	DeleteProject(ctx context.Context, id uint) error

	// 重置令牌与验证码
	CreatePasswordResetToken(ctx context.Context, token *db.PasswordResetToken) error
	GetPasswordResetTokenByHash(ctx context.Context, hash string) (*db.PasswordResetToken, error)
	DeletePasswordResetTokensForUser(ctx context.Context, userID uint) error
	UpsertEmailVerification(ctx context.Context, verification *db.EmailVerification) error
	GetEmailVerification(ctx context.Context, email string) (*db.EmailVerification, error)
	DeleteEmailVerification(ctx context.Context, email string) error

	// 会话
	CreateSession(ctx context.Context, session *db.Session) error
	GetSession(ctx context.Context, id string) (*db.Session, error)
	TouchSession(ctx context.Context, id string, expiresAt, refreshedAt time.Time) error
	DeleteSession(ctx context.Context, id string) error
}
