package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user within a store
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleSeller UserRole = "seller"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User represents a user that can log into a store
type User struct {
	shared.StoreAggregateRoot
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_store_email,priority:2"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	FullName     string     `gorm:"type:varchar(200);not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'seller'"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(storeID uuid.UUID, email, password, fullName string, role UserRole) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if role != UserRoleAdmin && role != UserRoleSeller {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or seller")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Email:              strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:       passwordHash,
		FullName:           strings.TrimSpace(fullName),
		Role:               role,
		IsActive:           true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	u.IncrementVersion()

	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// Deactivate disables the user account
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
	u.IncrementVersion()
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
