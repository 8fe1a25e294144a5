package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/money"
	"ledger/internal/pagination"
	"ledger/internal/services"
	"ledger/internal/validator"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the create transaction payload.
type CreateTransactionRequest struct {
	Amount      *float64 `json:"amount" binding:"required" example:"12.5"`
	Date        string   `json:"date" binding:"required,calendar_date" example:"2024-01-15"`
	Description string   `json:"description" binding:"max=500"`
	Type        string   `json:"type" binding:"required,transaction_type" enums:"income,expense"`
	Category    string   `json:"category" binding:"required,notblank,max=100"`
}

// UpdateTransactionRequest lists the fields an update may set. Any other
// key is rejected.
type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Date        *string  `json:"date,omitempty" binding:"omitempty,calendar_date"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=500"`
	Type        *string  `json:"type,omitempty" binding:"omitempty,transaction_type" enums:"income,expense"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,max=100"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          uint    `json:"id"`
	AccountID   uint    `json:"account_id"`
	Amount      float64 `json:"amount" example:"12.5"`
	Date        string  `json:"date" example:"2024-01-15"`
	Description string  `json:"description"`
	Type        string  `json:"type" example:"expense"`
	Category    string  `json:"category" example:"Groceries"`
}

// SummaryResponse is the aggregate over an account's transactions.
type SummaryResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
	Count   int64   `json:"count"`
}

// CategoryTotalResponse is one row of the per-category breakdown.
type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Amount:      money.FromCents(t.Amount),
		Date:        t.Date.UTC().Format(dateLayout),
		Description: t.Description,
		Type:        string(t.Type),
		Category:    t.Category,
	}
}

// accountQuery reads the required account_id query parameter.
func accountQuery(c *gin.Context) (uint, error) {
	raw := c.Query("account_id")
	if raw == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "account_id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid account_id")
	}
	return uint(id), nil
}

// filterQuery reads the optional start_date/end_date query parameters.
func filterQuery(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	var err error
	if filter.StartDate, err = parseOptionalDate(c, "start_date"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseOptionalDate(c, "end_date"); err != nil {
		return filter, err
	}
	return filter, nil
}

func toCents(amount float64) (int64, error) {
	cents, err := money.ToCents(amount)
	if err != nil {
		return 0, apperrors.ErrInvalidAmount
	}
	return cents, nil
}

// ListTransactions lists an account's transactions
// @Summary     List transactions
// @Description List one of the caller's account transactions, newest first. Date bounds are inclusive.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       account_id query int    true  "Account ID"
// @Param       start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param       page       query int    false "Page number (enables pagination)"
// @Param       page_size  query int    false "Items per page (max 100)"
// @Success     200 {array}  TransactionResponse
// @Header      200 {integer} X-Total-Count "Total number of matching transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := accountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := filterQuery(c)
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

	transactions, total, err := h.transactionService.ListTransactions(userID, accountID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		resp = append(resp, newTransactionResponse(&transactions[i]))
	}
	pagination.SetTotal(c, total)
	c.JSON(http.StatusOK, resp)
}

// Summary aggregates an account's transactions
// @Summary     Account summary
// @Description Income, expense, net and count over an inclusive date range
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       account_id query int    true  "Account ID"
// @Param       start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {object} SummaryResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := accountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := filterQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.Summarize(userID, accountID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Income:  money.FromCents(summary.Income),
		Expense: money.FromCents(summary.Expense),
		Net:     money.FromCents(summary.Net),
		Count:   summary.Count,
	})
}

// CategoryBreakdown totals an account's transactions per category
// @Summary     Per-category totals
// @Description Totals per category and type, largest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       account_id query int    true  "Account ID"
// @Param       start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param       type       query string false "income or expense"
// @Success     200 {array}  CategoryTotalResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions/summary/categories [get]
func (h *TransactionHandler) CategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := accountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := filterQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var txType *models.TransactionType
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		txType = &t
	}

	totals, err := h.transactionService.CategoryBreakdown(userID, accountID, filter, txType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]CategoryTotalResponse, 0, len(totals))
	for _, row := range totals {
		resp = append(resp, CategoryTotalResponse{
			Category: row.Category,
			Type:     string(row.Type),
			Total:    money.FromCents(row.Total),
			Count:    row.Count,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTransaction records a transaction
// @Summary     Create transaction
// @Description Amount is a positive value with at most two decimals; the type gives the direction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       account_id query int                      true "Account ID"
// @Param       request    body  CreateTransactionRequest true "Transaction"
// @Success     200 {object} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := accountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cents, err := toCents(*req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	date, err := validator.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date: expected YYYY-MM-DD"))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, accountID, services.TransactionInput{
		Amount:      cents,
		Date:        date,
		Description: req.Description,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"account_id": accountID, "amount": transaction.Amount, "type": transaction.Type})

	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// GetTransaction returns one transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// UpdateTransaction patches a transaction
// @Summary     Update transaction
// @Description Only amount, date, description, type and category may be set; other keys are rejected
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	patch := services.TransactionPatch{
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Amount != nil {
		cents, err := toCents(*req.Amount)
		if err != nil {
			respondWithError(c, err)
			return
		}
		patch.Amount = &cents
	}
	if req.Date != nil {
		date, err := validator.ParseDate(*req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date: expected YYYY-MM-DD"))
			return
		}
		patch.Date = &date
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		patch.Type = &t
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateTransaction, "transaction", transaction.ID, c.ClientIP(), changedFields(req))

	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// DeleteTransaction removes a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} DetailResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteTransaction, "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, DetailResponse{Detail: "Transaction deleted successfully"})
}

// changedFields lists the keys present in an update for the audit trail.
func changedFields(req UpdateTransactionRequest) map[string]interface{} {
	changes := map[string]interface{}{}
	if req.Amount != nil {
		changes["amount"] = *req.Amount
	}
	if req.Date != nil {
		changes["date"] = *req.Date
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Type != nil {
		changes["type"] = *req.Type
	}
	if req.Category != nil {
		changes["category"] = *req.Category
	}
	return changes
}
