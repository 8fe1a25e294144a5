package models

// DefaultCategoryNames are seeded into an empty categories table at startup.
var DefaultCategoryNames = []string{"Groceries", "Entertainment", "Bills", "Salary", "General"}

// Category is a global transaction label shared by all users. Transactions
// reference categories by name only; no foreign key ties them together.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
