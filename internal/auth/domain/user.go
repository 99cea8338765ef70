package domain

import (
	"errors"
	"time"
)

// UserRole 用户角色
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleContractor UserRole = "contractor"
	RoleVendor     UserRole = "vendor"
	RoleAdmin      UserRole = "admin"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User 用户实体
type User struct {
	ID           string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	LastName     string    `gorm:"column:last_name;type:varchar(100);not null" json:"lastName"`
	Role         UserRole  `gorm:"column:role;type:varchar(20);not null;default:'customer'" json:"role"`
	Phone        string    `gorm:"column:phone;type:varchar(40)" json:"phone,omitempty"`
	IsVerified   bool      `gorm:"column:is_verified;default:false" json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "app_users" }

// NewUser 创建普通顾客用户
func NewUser(id, email, passwordHash, firstName, lastName, phone string) *User {
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         RoleCustomer,
		Phone:        phone,
	}
}
