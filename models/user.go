package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail trims surrounding whitespace and lowercases, so that
// "A@x.com " and "a@x.com" refer to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword replaces the stored hash with a bcrypt hash of plain. A fresh
// salt is generated per call, so hashing the same password twice yields
// different values.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash. The error is
// non-nil only when the stored hash itself is unreadable.
func (u *User) CheckPassword(plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
