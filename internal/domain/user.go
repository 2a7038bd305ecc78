package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProviderGoogle identifies accounts created through Google sign-in.
const ProviderGoogle = "google"

// User is an account created on first OAuth sign-in.
// (Provider, Subject) is unique; the session token carries ID.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Provider  string             `bson:"provider" json:"provider"`
	Subject   string             `bson:"subject" json:"-"` // Provider's account id, never exposed
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
