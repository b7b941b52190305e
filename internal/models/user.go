package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAccount is one registered dashboard user, stored in MongoDB.
// Email is stored lower-cased and carries a unique index; Password always
// holds a bcrypt hash, never plaintext.
type UserAccount struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstname"`
	LastName  string             `bson:"lastname"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// SafeUser is the projection of a UserAccount that may leave the server.
// There is no password field to forget to blank out.
type SafeUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// Safe converts the account into its client-visible projection.
func (u *UserAccount) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
