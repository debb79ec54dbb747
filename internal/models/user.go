package models

import "time"

// User represents a registered customer of the store.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Address      string    `json:"address" gorm:"type:varchar(500);not null"`
	Phone        string    `json:"phone,omitempty" gorm:"type:varchar(32)"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}
