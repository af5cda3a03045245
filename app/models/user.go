package models

import "github.com/shashiranjanraj/bookstore/pkg/rbac"

// Role is the closed set of user roles.
type Role = rbac.Role

const (
	RoleUser  = rbac.RoleUser
	RoleAdmin = rbac.RoleAdmin
)

// User is a registered customer or administrator.
type User struct {
	Model
	Username       string `gorm:"size:50;uniqueIndex;not null"  json:"username"`
	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"size:255;not null"             json:"-"`
	Role           Role   `gorm:"size:20;not null;default:user" json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
