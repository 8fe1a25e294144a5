package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/pagination"
)

const maxAccountFieldLen = 100

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// ListAccounts returns the user's accounts ordered by id together with the
// total number of accounts.
func (s *accountService) ListAccounts(userID uint, page pagination.PageRequest) ([]models.Account, int64, error) {
	query := s.db.Model(&models.Account{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	accounts := []models.Account{}
	if err := query.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&accounts).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return accounts, total, nil
}

// CreateAccount creates a new account for a user
func (s *accountService) CreateAccount(userID uint, name, accountType string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	accountType = strings.TrimSpace(accountType)

	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if accountType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type is required")
	}
	if utf8.RuneCountInString(name) > maxAccountFieldLen || utf8.RuneCountInString(accountType) > maxAccountFieldLen {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name and type must be at most 100 characters")
	}

	account := &models.Account{
		UserID: userID,
		Name:   name,
		Type:   accountType,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetAccountByID retrieves an account owned by userID. Accounts of other
// users are reported as not found.
func (s *accountService) GetAccountByID(userID, accountID uint) (*models.Account, error) {
	return findOwnedAccount(s.db, userID, accountID)
}

// DeleteAccount removes an account and all of its transactions.
func (s *accountService) DeleteAccount(userID, accountID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := findOwnedAccount(tx, userID, accountID)
		if err != nil {
			return err
		}

		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func findOwnedAccount(db *gorm.DB, userID, accountID uint) (*models.Account, error) {
	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}
