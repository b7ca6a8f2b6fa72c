package domain

import (
	"time" // Timestamps

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Account roles
const (
	RoleUser  = "user"  // Default role
	RoleAdmin = "admin" // Administrative role
)

// Account Model
type Account struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`          // UUID primary key
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`  // Unique identity
	FullName     string    `gorm:"size:100" json:"full_name,omitempty"`         // Optional display name
	PasswordHash string    `gorm:"size:255;not null" json:"-"`                  // bcrypt hash, never serialized
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`   // Role: user or admin
	CreatedAt    time.Time `json:"created_at"`                                  // Creation time
	UpdatedAt    time.Time `json:"updated_at"`                                  // Last update time
}

// SetPassword replaces the stored secret with its bcrypt hash
func (a *Account) SetPassword(plain string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost) // Salted one-way hash
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash
func (a *Account) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

// Ref returns the projection used when an account is expanded into an order
func (a *Account) Ref() *AccountRef {
	return &AccountRef{ID: a.ID, Email: a.Email}
}

// Identity returns the projection returned on sign-in
func (a *Account) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email, Role: a.Role}
}

// AccountRef is the read-only projection of an account referenced by an order
type AccountRef struct {
	ID    string `json:"id"`    // Account ID
	Email string `json:"email"` // Account identity
}

// TableName maps the projection onto the accounts table
func (AccountRef) TableName() string { return "accounts" }

// Identity is the minimal account view handed out after credential verification
type Identity struct {
	ID    string `json:"id"`    // Account ID
	Email string `json:"email"` // Account identity
	Role  string `json:"role"`  // Role tag
}
