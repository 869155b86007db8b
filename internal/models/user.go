package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Admin accounts are created through the seeder or
// directly in the database, never through registration.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Role      string             `bson:"role" json:"role" validate:"omitempty,oneof=user publisher admin"`
	Password  string             `bson:"password,omitempty" json:"-" validate:"required,min=6"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsAdmin reports whether the user may bypass ownership checks.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Owns reports whether the user owns the record identified by ownerID, or is
// an admin.
func (u *User) Owns(ownerID primitive.ObjectID) bool {
	return u.ID == ownerID || u.IsAdmin()
}
