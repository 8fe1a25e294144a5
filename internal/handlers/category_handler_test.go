package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/services"
)

type mockCategoryService struct {
	listCategoriesFn func() ([]models.Category, error)
	createCategoryFn func(name string) (*models.Category, error)
	deleteCategoryFn func(id uint) error
	seedDefaultsFn   func() error
}

func (m *mockCategoryService) ListCategories() ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) CreateCategory(name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(id uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

func (m *mockCategoryService) SeedDefaults() error {
	if m.seedDefaultsFn != nil {
		return m.seedDefaultsFn()
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/categories", handler.ListCategories)
	r.POST("/categories", handler.CreateCategory)
	r.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("returns categories without auth", func(t *testing.T) {
		catSvc := &mockCategoryService{
			listCategoriesFn: func() ([]models.Category, error) {
				return []models.Category{{Base: models.Base{ID: 1}, Name: "Groceries"}}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		categories := parseJSONArray(t, rec)
		if len(categories) != 1 || categories[0]["name"] != "Groceries" || categories[0]["id"] != float64(1) {
			t.Errorf("unexpected categories %v", categories)
		}
	})

	t.Run("hides internal errors", func(t *testing.T) {
		catSvc := &mockCategoryService{
			listCategoriesFn: func() ([]models.Category, error) { return nil, errors.New("no such table") },
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INTERNAL_ERROR")
		if result["detail"] == "no such table" {
			t.Error("internal error leaked")
		}
	})
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("creates from query", func(t *testing.T) {
		audit := &mockAuditService{}
		catSvc := &mockCategoryService{
			createCategoryFn: func(name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: 9}, Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc, audit))

		rec := doRequest(r, "POST", "/categories?name=Travel", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["name"] != "Travel" {
			t.Error("expected Travel")
		}
		if len(audit.entries) != 1 || audit.entries[0].userID != 0 {
			t.Errorf("expected anonymous audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on duplicate", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(string) (*models.Category, error) { return nil, apperrors.ErrDuplicateCategory },
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories?name=Travel", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "DUPLICATE_CATEGORY")
		if result["detail"] != "Category already exists" {
			t.Errorf("unexpected detail %v", result["detail"])
		}
	})

	t.Run("returns 400 on blank name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories?name=%20%20", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns message", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/categories/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["message"] != "Category deleted successfully" {
			t.Error("unexpected message")
		}
	})

	t.Run("returns 404", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(uint) error { return apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/categories/3", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}
