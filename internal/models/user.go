package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Tel       string             `json:"tel" bson:"tel"`
	Role      string             `json:"role" bson:"role"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest is the payload accepted by the register endpoint.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" example:"Jane Doe"`
	Email    string `json:"email" form:"email" example:"jane@example.com"`
	Tel      string `json:"tel" form:"tel" example:"0812345678"`
	Role     string `json:"role" form:"role" example:"user"`
	Password string `json:"password" form:"password" example:"secret123"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" form:"email" example:"jane@example.com"`
	Password string `json:"password" form:"password" example:"secret123"`
}
