package domain

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// User models an authenticated actor. Users with RoleEmployee are the pool
// eligible to receive returned equipment.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role,omitempty" bson:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
