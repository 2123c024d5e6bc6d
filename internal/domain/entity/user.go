// Package entity defines the domain entities shared by the auth and onboarding features.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that can sign in.
// Standalone accounts created through self-registration have no company.
type User struct {
	// ID is an opaque unique identifier (UUID string).
	ID string `gorm:"primaryKey;size:36"`

	// Email is unique across all tenants and compared exactly as stored.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. It never holds plaintext.
	Password string `gorm:"size:255;not null"`

	FirstName string  `gorm:"size:100;not null"`
	LastName  *string `gorm:"size:100"`

	// IsActive may be toggled by an admin flow. Login refuses inactive accounts.
	IsActive bool `gorm:"not null;default:true"`

	CompanyID *string  `gorm:"size:36;index"`
	Company   *Company `gorm:"foreignKey:CompanyID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
