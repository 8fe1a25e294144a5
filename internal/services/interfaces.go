package services

import (
	"time"

	"ledger/internal/models"
	"ledger/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(email, username, password string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	ListAccounts(userID uint, page pagination.PageRequest) ([]models.Account, int64, error)
	CreateAccount(userID uint, name, accountType string) (*models.Account, error)
	GetAccountByID(userID, accountID uint) (*models.Account, error)
	DeleteAccount(userID, accountID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	CreateCategory(name string) (*models.Category, error)
	DeleteCategory(id uint) error
	SeedDefaults() error
}

// TransactionFilter holds the optional inclusive date bounds for listing
// and aggregating an account's transactions.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionInput is a validated request to create a transaction. Amount
// is in cents.
type TransactionInput struct {
	Amount      int64
	Date        time.Time
	Description string
	Type        models.TransactionType
	Category    string
}

// TransactionPatch lists the fields an update may change. Nil fields are
// left untouched.
type TransactionPatch struct {
	Amount      *int64
	Date        *time.Time
	Description *string
	Type        *models.TransactionType
	Category    *string
}

// Summary aggregates an account's transactions. Amounts are in cents.
type Summary struct {
	Income  int64
	Expense int64
	Net     int64
	Count   int64
}

// CategoryTotal is one row of a per-category breakdown. Total is in cents.
type CategoryTotal struct {
	Category string
	Type     models.TransactionType
	Total    int64
	Count    int64
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(userID, accountID uint, filter TransactionFilter, page pagination.PageRequest) ([]models.Transaction, int64, error)
	Summarize(userID, accountID uint, filter TransactionFilter) (*Summary, error)
	CategoryBreakdown(userID, accountID uint, filter TransactionFilter, txType *models.TransactionType) ([]CategoryTotal, error)
	CreateTransaction(userID, accountID uint, input TransactionInput) (*models.Transaction, error)
	GetTransaction(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
