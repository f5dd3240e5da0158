package model

import "time"

// User represents an authenticated user in the system. Rows are created the
// first time the identity provider vouches for an email; the core never
// mutates them apart from refreshing LastLoginAt.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name        string     `json:"name" gorm:"size:255"`
	Avatar      string     `json:"avatar,omitempty" gorm:"size:512"`
	Provider    string     `json:"provider" gorm:"size:50;default:'google'"`
	ProviderID  string     `json:"-" gorm:"size:255"`
	Role        string     `json:"role" gorm:"size:50;default:'user';index"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsAdmin reports whether the user holds the operator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
