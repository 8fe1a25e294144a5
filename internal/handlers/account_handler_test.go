package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/pagination"
	"ledger/internal/services"
)

// --- mock account service ---

type mockAccountService struct {
	listAccountsFn   func(userID uint, page pagination.PageRequest) ([]models.Account, int64, error)
	createAccountFn  func(userID uint, name, accountType string) (*models.Account, error)
	getAccountByIDFn func(userID, accountID uint) (*models.Account, error)
	deleteAccountFn  func(userID, accountID uint) error
}

func (m *mockAccountService) ListAccounts(userID uint, page pagination.PageRequest) ([]models.Account, int64, error) {
	if m.listAccountsFn != nil {
		return m.listAccountsFn(userID, page)
	}
	return []models.Account{}, 0, nil
}

func (m *mockAccountService) CreateAccount(userID uint, name, accountType string) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(userID, name, accountType)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) GetAccountByID(userID, accountID uint) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(userID, accountID)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) DeleteAccount(userID, accountID uint) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(userID, accountID)
	}
	return nil
}

// verify interface compliance
var _ services.AccountServicer = (*mockAccountService)(nil)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUser(testUser))
	auth.GET("/accounts", handler.ListAccounts)
	auth.POST("/accounts", handler.CreateAccount)
	auth.DELETE("/accounts/:id", handler.DeleteAccount)
	return r
}

func TestAccountHandler_ListAccounts(t *testing.T) {
	t.Run("returns plain array with total header", func(t *testing.T) {
		acctSvc := &mockAccountService{
			listAccountsFn: func(userID uint, page pagination.PageRequest) ([]models.Account, int64, error) {
				if userID != testUser.ID {
					t.Errorf("expected caller id, got %d", userID)
				}
				if page.Enabled() {
					t.Error("expected no pagination without query params")
				}
				return []models.Account{
					{Base: models.Base{ID: 1}, UserID: userID, Name: "Checking", Type: "checking"},
					{Base: models.Base{ID: 2}, UserID: userID, Name: "Savings", Type: "savings"},
				}, 2, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(acctSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/accounts", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get(pagination.TotalCountHeader) != "2" {
			t.Errorf("expected X-Total-Count 2, got %q", rec.Header().Get(pagination.TotalCountHeader))
		}
		accounts := parseJSONArray(t, rec)
		if len(accounts) != 2 || accounts[0]["name"] != "Checking" || accounts[1]["type"] != "savings" {
			t.Errorf("unexpected accounts %v", accounts)
		}
	})

	t.Run("passes pagination", func(t *testing.T) {
		var got pagination.PageRequest
		acctSvc := &mockAccountService{
			listAccountsFn: func(_ uint, page pagination.PageRequest) ([]models.Account, int64, error) {
				got = page
				return []models.Account{}, 0, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(acctSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/accounts?page=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 2 || got.PageSize != 20 {
			t.Errorf("expected page 2 size 20, got %+v", got)
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/accounts?page_size=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("reads query parameters", func(t *testing.T) {
		acctSvc := &mockAccountService{
			createAccountFn: func(userID uint, name, accountType string) (*models.Account, error) {
				return &models.Account{Base: models.Base{ID: 3}, UserID: userID, Name: name, Type: accountType}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAccountRouter(NewAccountHandler(acctSvc, audit))

		rec := doRequest(r, "POST", "/accounts?name=Checking&account_type=checking", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != float64(3) || result["name"] != "Checking" || result["type"] != "checking" {
			t.Errorf("unexpected body %v", result)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditCreateAccount {
			t.Errorf("expected CREATE_ACCOUNT audit entry, got %+v", audit.entries)
		}
	})

	t.Run("reads form body", func(t *testing.T) {
		acctSvc := &mockAccountService{
			createAccountFn: func(userID uint, name, accountType string) (*models.Account, error) {
				return &models.Account{Base: models.Base{ID: 4}, UserID: userID, Name: name, Type: accountType}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(acctSvc, &mockAuditService{}))

		rec := doFormRequest(r, "POST", "/accounts", "name=Savings&account_type=savings")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["name"] != "Savings" {
			t.Error("expected Savings")
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/accounts?account_type=checking", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/accounts", handler.CreateAccount)

		rec := doRequest(r, "POST", "/accounts?name=X&account_type=y", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_DeleteAccount(t *testing.T) {
	t.Run("returns message", func(t *testing.T) {
		var deleted uint
		acctSvc := &mockAccountService{
			deleteAccountFn: func(_, accountID uint) error {
				deleted = accountID
				return nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(acctSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/accounts/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != 5 {
			t.Errorf("expected account 5 deleted, got %d", deleted)
		}
		if parseJSON(t, rec)["message"] != "Account deleted successfully" {
			t.Error("unexpected message")
		}
	})

	t.Run("returns 404 when not owned", func(t *testing.T) {
		acctSvc := &mockAccountService{
			deleteAccountFn: func(_, _ uint) error { return apperrors.ErrAccountNotFound },
		}
		r := setupAccountRouter(NewAccountHandler(acctSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/accounts/5", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/accounts/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
