package model

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the enumerated account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // Not exposed
	Role           string `json:"role"`

	// PasswordChangedAt drives the credential staleness check: tokens
	// issued before it are rejected even when unexpired.
	PasswordChangedAt *time.Time `json:"-"`

	// Reset fields are either both set or both nil.
	PasswordResetToken   *string    `json:"-"` // sha256 hex of the mailed token
	PasswordResetExpires *time.Time `json:"-"`

	Active    bool      `json:"-"` // soft-delete marker
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issue time. Timestamps are compared at second precision
// because JWT iat carries Unix seconds.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// Sanitize clears secret material before the record is returned to a client.
func (u *User) Sanitize() {
	u.HashedPassword = ""
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
}
