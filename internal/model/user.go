package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a back-office account (admin or super-admin). Shoppers are anonymous.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	FullName string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	RoleID   *uint  `gorm:"index" json:"role_id"`
	Role     *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) RoleCode() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// GetPrivilegeCodes returns the privilege codes granted through the user's role
func (u *User) GetPrivilegeCodes() []string {
	if u.Role == nil {
		return []string{}
	}
	codes := make([]string, len(u.Role.Privileges))
	for i, p := range u.Role.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	Privileges []string  `json:"privileges"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.RoleCode(),
		IsActive:   u.IsActive,
		Privileges: u.GetPrivilegeCodes(),
		CreatedAt:  u.CreatedAt,
	}
}
