package models

// User represents a registered user. The password hash never leaves the
// service layer.
type User struct {
	Base
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:hashed_password;not null" json:"-"`
	Accounts     []Account `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
