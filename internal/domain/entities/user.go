package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents dashboard user roles
type UserRole string

const (
	UserRoleOwner  UserRole = "OWNER"
	UserRoleMember UserRole = "MEMBER"
)

// User represents a dashboard user. NotesApproved is the lifetime count of
// approved notes and drives the style-learning threshold.
type User struct {
	ID            uuid.UUID `json:"id"`
	AccountID     uuid.UUID `json:"accountId"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	Role          UserRole  `json:"role"`
	NotesApproved int       `json:"notesApproved"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateUserInput is the registration payload
type CreateUserInput struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"companyName" binding:"required"`
}

// LoginInput is the login payload
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
