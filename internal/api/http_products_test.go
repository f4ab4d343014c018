package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodhub/internal/entity/db"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// productStubRepo 在用户桩之上补齐产品操作。
type productStubRepo struct {
	*stubRepo
	products map[uint]*db.Product
	updates  map[uint]map[string]interface{}
}

func newProductStubRepo(users []*db.User, products ...*db.Product) *productStubRepo {
	repo := &productStubRepo{
		stubRepo: newStubRepo(users...),
		products: make(map[uint]*db.Product),
		updates:  make(map[uint]map[string]interface{}),
	}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (s *productStubRepo) CreateProduct(_ context.Context, product *db.Product) error {
	product.ID = uint(len(s.products) + 100)
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *productStubRepo) GetProductByID(_ context.Context, id uint) (*db.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *productStubRepo) UpdateProduct(_ context.Context, id uint, updates map[string]interface{}) error {
	if _, ok := s.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates[id] = updates
	if name, ok := updates["name"].(string); ok {
		s.products[id].Name = name
	}
	return nil
}

func (s *productStubRepo) DeleteProduct(_ context.Context, id uint) error {
	delete(s.products, id)
	return nil
}

func productRouter(h *HTTPHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/products", h.Authenticator(), h.RequireRole(db.UserRoleManufacturer), h.CreateProduct)
	r.PUT("/products/:id", h.Authenticator(), h.UpdateProduct)
	r.DELETE("/products/:id", h.Authenticator(), h.DeleteProduct)
	return r
}

func TestCreateProductRequiresManufacturerRole(t *testing.T) {
	retailer := activeUser(1, "shop@example.com", db.UserRoleRetailer)
	brand := activeUser(2, "brand@example.com", db.UserRoleBrand)
	maker := activeUser(3, "maker@example.com", db.UserRoleManufacturer)
	admin := activeUser(4, "admin@example.com", db.UserRoleAdmin)

	repo := newProductStubRepo([]*db.User{retailer, brand, maker, admin})
	h := newTestHandler(t, repo)
	r := productRouter(h)

	send := func(user *db.User) *httptest.ResponseRecorder {
		token, _, err := h.authManager.GenerateToken(user)
		if err != nil {
			t.Fatalf("unexpected error generating token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"Loaf","product_type":"other"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(retailer); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for retailer, got %d: %s", w.Code, w.Body.String())
	}
	if w := send(brand); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for brand, got %d: %s", w.Code, w.Body.String())
	}
	if w := send(maker); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for manufacturer, got %d: %s", w.Code, w.Body.String())
	}
	// 管理员穿透角色限制
	if w := send(admin); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	owner := activeUser(1, "owner@example.com", db.UserRoleManufacturer)
	other := activeUser(2, "other@example.com", db.UserRoleManufacturer)
	admin := activeUser(3, "admin@example.com", db.UserRoleAdmin)

	repo := newProductStubRepo(
		[]*db.User{owner, other, admin},
		&db.Product{ID: 10, UserID: owner.ID, Name: "Loaf", ProductType: db.ProductTypeFood},
	)
	h := newTestHandler(t, repo)
	r := productRouter(h)

	send := func(user *db.User, body string) *httptest.ResponseRecorder {
		token, _, err := h.authManager.GenerateToken(user)
		if err != nil {
			t.Fatalf("unexpected error generating token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/products/10", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(other, `{"name":"Hijacked"}`); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d: %s", w.Code, w.Body.String())
	}

	w := send(owner, `{"name":"Renamed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", w.Code, w.Body.String())
	}
	var summary map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if summary["name"] != "Renamed" {
		t.Fatalf("expected renamed product, got %v", summary["name"])
	}

	// 管理员可以修改任何人的产品
	if w := send(admin, `{"name":"Moderated"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteProductOwnership(t *testing.T) {
	owner := activeUser(1, "owner@example.com", db.UserRoleManufacturer)
	other := activeUser(2, "other@example.com", db.UserRoleRetailer)

	repo := newProductStubRepo(
		[]*db.User{owner, other},
		&db.Product{ID: 20, UserID: owner.ID, Name: "Loaf"},
	)
	h := newTestHandler(t, repo)
	r := productRouter(h)

	send := func(user *db.User) *httptest.ResponseRecorder {
		token, _, err := h.authManager.GenerateToken(user)
		if err != nil {
			t.Fatalf("unexpected error generating token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/products/20", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(other); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}
	if w := send(owner); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", w.Code)
	}
	if _, ok := repo.products[20]; ok {
		t.Fatal("expected product to be deleted")
	}

	// 已删除的产品返回 404
	if w := send(owner); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}
