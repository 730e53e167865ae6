package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the authentication record. The password hash and reset token fields
// never leave the server.
type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	PasswordHash     string             `json:"-" bson:"passwordHash"`
	Role             string             `json:"role" bson:"role"`
	PhoneNo          string             `json:"phoneNo,omitempty" bson:"phoneNo,omitempty"`
	IsActive         bool               `json:"isActive" bson:"isActive"`
	IsVerified       bool               `json:"isVerified" bson:"isVerified"`
	ResetTokenHash   string             `json:"-" bson:"resetTokenHash,omitempty"`
	ResetTokenExpiry *time.Time         `json:"-" bson:"resetTokenExpiry,omitempty"`
	LastLoginAt      *time.Time         `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
