package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/pagination"
)

// typeTotal is one row of the per-type aggregate behind Summarize.
type typeTotal struct {
	Type  models.TransactionType
	Total int64
	Count int64
}

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// ListTransactions returns the account's transactions, newest first, and
// the total number matching the filter.
func (s *transactionService) ListTransactions(userID, accountID uint, filter TransactionFilter, page pagination.PageRequest) ([]models.Transaction, int64, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, 0, err
	}

	query := applyFilter(s.db.Model(&models.Transaction{}).Where("account_id = ?", accountID), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions := []models.Transaction{}
	if err := query.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transactions, total, nil
}

// Summarize totals income and expense for the account in cents.
func (s *transactionService) Summarize(userID, accountID uint, filter TransactionFilter) (*Summary, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}

	var rows []typeTotal
	err := applyFilter(s.db.Model(&models.Transaction{}).Where("account_id = ?", accountID), filter).
		Select("type, COALESCE(CAST(SUM(amount_cents) AS BIGINT), 0) AS total, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &Summary{}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			summary.Income += row.Total
		case models.TransactionTypeExpense:
			summary.Expense += row.Total
		}
		summary.Count += row.Count
	}
	summary.Net = summary.Income - summary.Expense
	return summary, nil
}

// CategoryBreakdown totals the account's transactions per category and
// type, largest total first. txType optionally restricts the breakdown.
func (s *transactionService) CategoryBreakdown(userID, accountID uint, filter TransactionFilter, txType *models.TransactionType) ([]CategoryTotal, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if txType != nil && !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}

	query := applyFilter(s.db.Model(&models.Transaction{}).Where("account_id = ?", accountID), filter)
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}

	totals := []CategoryTotal{}
	err := query.
		Select("category, type, COALESCE(CAST(SUM(amount_cents) AS BIGINT), 0) AS total, COUNT(*) AS count").
		Group("category, type").
		Order("total DESC, category ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// CreateTransaction records a transaction on one of the user's accounts.
func (s *transactionService) CreateTransaction(userID, accountID uint, input TransactionInput) (*models.Transaction, error) {
	input.Category = strings.TrimSpace(input.Category)
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		AccountID:   account.ID,
		Amount:      input.Amount,
		Date:        dateOnly(input.Date),
		Description: input.Description,
		Type:        input.Type,
		Category:    input.Category,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction whose account belongs to userID.
func (s *transactionService) GetTransaction(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.ownedBy(s.db, userID).Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the non-nil fields of patch. Every field is
// validated as on creation; the account and id never change.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *patch.Amount
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		transaction.Type = *patch.Type
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
		}
		transaction.Category = category
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
		}
		transaction.Date = dateOnly(*patch.Date)
	}
	if patch.Description != nil {
		transaction.Description = *patch.Description
	}

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction whose account belongs to userID.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ownedBy scopes a transaction query to accounts owned by userID.
func (s *transactionService) ownedBy(db *gorm.DB, userID uint) *gorm.DB {
	owned := s.db.Model(&models.Account{}).Select("id").Where("user_id = ?", userID)
	return db.Where("account_id IN (?)", owned)
}

func validateAmount(cents int64) error {
	if cents <= 0 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

func validateFilter(filter TransactionFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && dateOnly(*filter.StartDate).After(dateOnly(*filter.EndDate)) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

// applyFilter adds inclusive date bounds. The upper bound is expressed as
// "before the following day" so stored values with a time part still match.
func applyFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("date >= ?", dateOnly(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", dateOnly(*filter.EndDate).AddDate(0, 0, 1))
	}
	return query
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
