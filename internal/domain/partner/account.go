package partner

import (
	"strings"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType distinguishes business customers from consumers
type AccountType string

const (
	AccountTypeB2B AccountType = "B2B"
	AccountTypeB2C AccountType = "B2C"
)

// Account represents a customer account of a store. B2C accounts are
// identified by a person's name, B2B accounts by a company name and
// optional tax ID. Credit fields support selling on account.
type Account struct {
	shared.StoreAggregateRoot
	Type           AccountType     `gorm:"type:varchar(3);not null;index"`
	FullName       string          `gorm:"type:varchar(200)"`
	CompanyName    string          `gorm:"type:varchar(200)"`
	TaxID          string          `gorm:"type:varchar(50)"`
	Email          string          `gorm:"type:varchar(200)"`
	Phone          string          `gorm:"type:varchar(50)"`
	Address        string          `gorm:"type:varchar(300)"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new customer account. The identifying name depends
// on the account type: full name for B2C, company name for B2B.
func NewAccount(storeID uuid.UUID, accountType AccountType, fullName, companyName string) (*Account, error) {
	fullName = strings.TrimSpace(fullName)
	companyName = strings.TrimSpace(companyName)

	switch accountType {
	case AccountTypeB2C:
		if fullName == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Full name is required for B2C accounts")
		}
	case AccountTypeB2B:
		if companyName == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Company name is required for B2B accounts")
		}
	default:
		return nil, shared.NewDomainError("INVALID_TYPE", "Account type must be B2B or B2C")
	}

	return &Account{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Type:               accountType,
		FullName:           fullName,
		CompanyName:        companyName,
		CreditLimit:        decimal.Zero,
		CurrentBalance:     decimal.Zero,
		IsActive:           true,
	}, nil
}

// DisplayName returns the customer-facing name for the account
func (a *Account) DisplayName() string {
	if a.Type == AccountTypeB2B {
		return a.CompanyName
	}
	return a.FullName
}

// Rename updates the identifying name, honoring the type rules
func (a *Account) Rename(fullName, companyName string) error {
	fullName = strings.TrimSpace(fullName)
	companyName = strings.TrimSpace(companyName)

	if a.Type == AccountTypeB2C && fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name is required for B2C accounts")
	}
	if a.Type == AccountTypeB2B && companyName == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name is required for B2B accounts")
	}

	a.FullName = fullName
	a.CompanyName = companyName
	a.Touch()
	a.IncrementVersion()

	return nil
}

// UpdateContact updates contact details
func (a *Account) UpdateContact(email, phone, address string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	a.Email = email
	a.Phone = strings.TrimSpace(phone)
	a.Address = strings.TrimSpace(address)
	a.Touch()
	a.IncrementVersion()

	return nil
}

// SetTaxID sets the tax identifier, meaningful for B2B accounts
func (a *Account) SetTaxID(taxID string) error {
	taxID = strings.TrimSpace(taxID)
	if len(taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	a.TaxID = taxID
	a.Touch()
	a.IncrementVersion()

	return nil
}

// SetCreditLimit sets the maximum balance the account may carry
func (a *Account) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	a.CreditLimit = limit
	a.Touch()
	a.IncrementVersion()

	return nil
}

// Deactivate disables the account
func (a *Account) Deactivate() {
	a.IsActive = false
	a.Touch()
	a.IncrementVersion()
}
