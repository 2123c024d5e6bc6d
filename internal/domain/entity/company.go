package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCountry is stored when the onboarding form leaves the country empty.
const DefaultCountry = "India"

// companyCodeLength is the maximum number of runes kept in a company code.
const companyCodeLength = 10

// Company is a tenant. It is always created together with its first User.
type Company struct {
	ID   string `gorm:"primaryKey;size:36"`
	Name string `gorm:"size:255;not null"`

	// Code is derived from Name by CompanyCode. It is not guaranteed to be unique.
	Code string `gorm:"size:10;not null;index"`

	Address *string `gorm:"size:500"`
	City    *string `gorm:"size:100"`
	State   *string `gorm:"size:100"`
	Country string  `gorm:"size:100;not null;default:'India'"`
	Pincode *string `gorm:"size:20"`
	Email   *string `gorm:"size:255"`
	Phone   *string `gorm:"size:30"`
	GSTIN   *string `gorm:"column:gstin;size:20"`
	PAN     *string `gorm:"column:pan;size:20"`

	Users []User `gorm:"foreignKey:CompanyID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (c *Company) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CompanyCode uppercases the organization name, strips every whitespace
// character and keeps at most the first 10 runes.
func CompanyCode(organizationName string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(organizationName))

	runes := []rune(stripped)
	if len(runes) > companyCodeLength {
		runes = runes[:companyCodeLength]
	}
	return string(runes)
}
