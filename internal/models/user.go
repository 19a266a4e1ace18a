package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User.PasswordHash is empty for accounts created by an external identity
// provider; credentials can be attached to them on registration.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;default:''" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null;default:''" json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (user User) HasPassword() bool {
	return user.PasswordHash != ""
}
