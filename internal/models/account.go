package models

// Account is a named bucket of transactions owned by exactly one user.
// Type is a free-form label such as "checking", "savings" or "credit".
type Account struct {
	Base
	UserID       uint          `gorm:"not null;index" json:"user_id"`
	Name         string        `gorm:"not null" json:"name"`
	Type         string        `gorm:"not null" json:"type"`
	Transactions []Transaction `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
}
