package model

import (
	"time"

	"github.com/google/uuid"
)

// GuestUser is the identity recorded for a buyer checking out without an account.
// A new record is created for every guest order.
type GuestUser struct {
	ID             uuid.UUID `json:"id" db:"id"`
	FullName       string    `json:"fullName" db:"full_name"`
	Phone          string    `json:"phone" db:"phone"`
	AlternatePhone string    `json:"alternatePhone,omitempty" db:"alternate_phone"`
	FullAddress    string    `json:"fullAddress" db:"full_address"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
