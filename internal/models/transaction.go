package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense entry on an account. Amount is
// a positive magnitude in cents; Type carries the sign. Ownership is derived
// through the account.
type Transaction struct {
	Base
	AccountID   uint            `gorm:"not null;index" json:"account_id"`
	Amount      int64           `gorm:"column:amount_cents;not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description string          `gorm:"not null;default:''" json:"description"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    string          `gorm:"not null" json:"category"`
}
