package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/pagination"
	"ledger/internal/services"
)

// AccountHandler handles account-related requests
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest is read from the query string or a urlencoded form.
type CreateAccountRequest struct {
	Name        string `form:"name" binding:"required,notblank,max=100"`
	AccountType string `form:"account_type" binding:"required,notblank,max=100"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

func newAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{ID: a.ID, UserID: a.UserID, Name: a.Name, Type: a.Type}
}

// ListAccounts returns the caller's accounts
// @Summary     List accounts
// @Description List the authenticated user's accounts ordered by id
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (enables pagination)"
// @Param       page_size query int false "Items per page (max 100)"
// @Success     200 {array}  AccountResponse
// @Header      200 {integer} X-Total-Count "Total number of accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	accounts, total, err := h.accountService.ListAccounts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, newAccountResponse(&accounts[i]))
	}
	pagination.SetTotal(c, total)
	c.JSON(http.StatusOK, resp)
}

// CreateAccount creates an account
// @Summary     Create account
// @Description Create an account for the authenticated user
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       name         query string true "Account name"
// @Param       account_type query string true "Free-form account type, e.g. checking"
// @Success     200 {object} AccountResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(userID, req.Name, req.AccountType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateAccount, "account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": account.Name, "type": account.Type})

	c.JSON(http.StatusOK, newAccountResponse(account))
}

// DeleteAccount deletes an account and its transactions
// @Summary     Delete account
// @Description Delete one of the caller's accounts together with its transactions
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteAccount, "account", accountID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
